package dialect

import (
	"fmt"
	"strings"

	"autocorrect/internal/format"
	"autocorrect/internal/lexer"
)

// Syntax selects the tokenizer family of a dialect.
type Syntax uint8

const (
	SyntaxText Syntax = iota
	SyntaxMarkdown
	SyntaxHTML
	SyntaxChroma
)

func (s Syntax) String() string {
	switch s {
	case SyntaxText:
		return "text"
	case SyntaxMarkdown:
		return "markdown"
	case SyntaxHTML:
		return "html"
	case SyntaxChroma:
		return "chroma"
	default:
		return "unknown"
	}
}

func (s Syntax) GoString() string {
	return fmt.Sprintf("Syntax(%s)", s.String())
}

// Dialect describes one supported file type.
type Dialect struct {
	ID         string
	Syntax     Syntax
	Lexer      string   // chroma lexer name, SyntaxChroma only
	Extensions []string // without the dot
	Names      []string // exact base names, lower case
	Aliases    []string
}

// Tokenizer builds the tokenizer for d.
func (d Dialect) Tokenizer() (format.Tokenizer, error) {
	switch d.Syntax {
	case SyntaxMarkdown:
		return lexer.Markdown{}, nil
	case SyntaxHTML:
		return lexer.HTML{}, nil
	case SyntaxChroma:
		return lexer.NewChroma(d.Lexer)
	default:
		return lexer.Plain{}, nil
	}
}

// Text is the fallback dialect id.
const Text = "text"

var builtin = []Dialect{
	{ID: Text, Syntax: SyntaxText, Extensions: []string{"txt", "text"}, Aliases: []string{"plaintext", "plain"}},
	{ID: "markdown", Syntax: SyntaxMarkdown, Extensions: []string{"md", "markdown", "mdx", "mkd", "mdown"}},
	{ID: "html", Syntax: SyntaxHTML, Extensions: []string{"html", "htm", "xhtml", "vue", "svelte"}},
	{ID: "css", Syntax: SyntaxChroma, Lexer: "css", Extensions: []string{"css"}},
	{ID: "scss", Syntax: SyntaxChroma, Lexer: "scss", Extensions: []string{"scss", "sass"}},
	{ID: "less", Syntax: SyntaxChroma, Lexer: "less", Extensions: []string{"less"}},
	{ID: "javascript", Syntax: SyntaxChroma, Lexer: "javascript", Extensions: []string{"js", "mjs", "cjs", "jsx"}, Aliases: []string{"node"}},
	{ID: "typescript", Syntax: SyntaxChroma, Lexer: "typescript", Extensions: []string{"ts", "mts", "cts", "tsx"}},
	{ID: "json", Syntax: SyntaxChroma, Lexer: "json", Extensions: []string{"json", "json5", "jsonc"}},
	{ID: "yaml", Syntax: SyntaxChroma, Lexer: "yaml", Extensions: []string{"yaml", "yml"}},
	{ID: "toml", Syntax: SyntaxChroma, Lexer: "toml", Extensions: []string{"toml"}},
	{ID: "ini", Syntax: SyntaxChroma, Lexer: "ini", Extensions: []string{"ini", "cfg", "conf", "properties"}},
	{ID: "xml", Syntax: SyntaxChroma, Lexer: "xml", Extensions: []string{"xml", "svg", "plist"}},
	{ID: "go", Syntax: SyntaxChroma, Lexer: "go", Extensions: []string{"go"}, Aliases: []string{"golang"}},
	{ID: "python", Syntax: SyntaxChroma, Lexer: "python", Extensions: []string{"py", "pyi"}, Aliases: []string{"python3"}},
	{ID: "ruby", Syntax: SyntaxChroma, Lexer: "ruby", Extensions: []string{"rb", "rake", "gemspec"}, Names: []string{"gemfile", "rakefile"}},
	{ID: "rust", Syntax: SyntaxChroma, Lexer: "rust", Extensions: []string{"rs"}},
	{ID: "java", Syntax: SyntaxChroma, Lexer: "java", Extensions: []string{"java"}},
	{ID: "kotlin", Syntax: SyntaxChroma, Lexer: "kotlin", Extensions: []string{"kt", "kts"}},
	{ID: "scala", Syntax: SyntaxChroma, Lexer: "scala", Extensions: []string{"scala", "sc"}},
	{ID: "swift", Syntax: SyntaxChroma, Lexer: "swift", Extensions: []string{"swift"}},
	{ID: "c", Syntax: SyntaxChroma, Lexer: "c", Extensions: []string{"c", "h"}},
	{ID: "cpp", Syntax: SyntaxChroma, Lexer: "c++", Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}, Aliases: []string{"c++"}},
	{ID: "csharp", Syntax: SyntaxChroma, Lexer: "c#", Extensions: []string{"cs"}, Aliases: []string{"c#"}},
	{ID: "objectivec", Syntax: SyntaxChroma, Lexer: "objective-c", Extensions: []string{"m", "mm"}, Aliases: []string{"objective-c", "objc"}},
	{ID: "php", Syntax: SyntaxChroma, Lexer: "php", Extensions: []string{"php"}},
	{ID: "dart", Syntax: SyntaxChroma, Lexer: "dart", Extensions: []string{"dart"}},
	{ID: "elixir", Syntax: SyntaxChroma, Lexer: "elixir", Extensions: []string{"ex", "exs"}},
	{ID: "erlang", Syntax: SyntaxChroma, Lexer: "erlang", Extensions: []string{"erl", "hrl"}},
	{ID: "lua", Syntax: SyntaxChroma, Lexer: "lua", Extensions: []string{"lua"}},
	{ID: "perl", Syntax: SyntaxChroma, Lexer: "perl", Extensions: []string{"pl", "pm"}},
	{ID: "r", Syntax: SyntaxChroma, Lexer: "r", Extensions: []string{"r"}},
	{ID: "shell", Syntax: SyntaxChroma, Lexer: "bash", Extensions: []string{"sh", "bash", "zsh"}, Aliases: []string{"bash", "zsh", "console"}},
	{ID: "sql", Syntax: SyntaxChroma, Lexer: "sql", Extensions: []string{"sql"}},
	{ID: "protobuf", Syntax: SyntaxChroma, Lexer: "protobuf", Extensions: []string{"proto"}},
	{ID: "graphql", Syntax: SyntaxChroma, Lexer: "graphql", Extensions: []string{"graphql", "gql"}},
	{ID: "latex", Syntax: SyntaxChroma, Lexer: "tex", Extensions: []string{"tex", "latex"}},
	{ID: "dockerfile", Syntax: SyntaxChroma, Lexer: "docker", Names: []string{"dockerfile"}, Aliases: []string{"docker"}},
	{ID: "makefile", Syntax: SyntaxChroma, Lexer: "makefile", Extensions: []string{"mk", "mak"}, Names: []string{"makefile", "gnumakefile"}, Aliases: []string{"make"}},
}

var (
	byID    = map[string]Dialect{}
	byExt   = map[string]string{}
	byName  = map[string]string{}
	aliases = map[string]string{}
)

func init() {
	for _, d := range builtin {
		byID[d.ID] = d
		for _, e := range d.Extensions {
			byExt[e] = d.ID
		}
		for _, n := range d.Names {
			byName[n] = d.ID
		}
		for _, a := range d.Aliases {
			aliases[a] = d.ID
		}
	}
}

// Builtin returns the built-in dialect table.
func Builtin() []Dialect {
	out := make([]Dialect, len(builtin))
	copy(out, builtin)
	return out
}

// Canonical resolves an id, alias, extension or language name (as go-enry
// and chroma spell them) to a built-in dialect id.
func Canonical(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, ".")
	if key == "" {
		return "", false
	}
	if _, ok := byID[key]; ok {
		return key, true
	}
	if id, ok := aliases[key]; ok {
		return id, true
	}
	if id, ok := byExt[key]; ok {
		return id, true
	}
	if id, ok := byName[key]; ok {
		return id, true
	}
	switch key {
	case "shellsession", "shell script":
		return "shell", true
	case "text only":
		return Text, true
	}
	return "", false
}
