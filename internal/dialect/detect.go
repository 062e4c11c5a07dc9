package dialect

import (
	"path/filepath"
	"strings"

	"autocorrect/internal/config"

	"github.com/alecthomas/chroma/v2/lexers"
	enry "github.com/go-enry/go-enry/v2"
)

// Hint weights, strongest first.
const (
	scoreConfig     = 100
	scoreName       = 60
	scoreExtension  = 50
	scoreShebang    = 40
	scoreEnryName   = 30
	scoreChroma     = 20
	scoreClassifier = 5
)

// classifierCandidates keeps the bayesian classifier on languages we can
// tokenize; obscure ones share too many keywords with common ones.
var classifierCandidates = []string{
	"C", "C++", "C#", "CSS", "Dart", "Elixir", "Erlang",
	"Go", "HTML", "Java", "JavaScript", "Kotlin", "Lua", "Markdown",
	"Objective-C", "PHP", "Perl", "Python", "R", "Ruby",
	"Rust", "Scala", "Shell", "Swift", "TypeScript",
}

// Collect gathers detection evidence for path. content may be nil.
func Collect(path string, content []byte, cfg *config.Snapshot) *Evidence {
	e := NewEvidence()
	base := strings.ToLower(filepath.Base(path))
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	if cfg != nil {
		if id, ok := cfg.FileType(path); ok {
			if canon, known := Canonical(id); known {
				id = canon
			}
			e.Add(Hint{Dialect: id, Score: scoreConfig, Reason: "fileTypes"})
		}
	}
	if id, ok := byName[base]; ok {
		e.Add(Hint{Dialect: id, Score: scoreName, Reason: "file name"})
	}
	if id, ok := byExt[ext]; ok && ext != "" {
		e.Add(Hint{Dialect: id, Score: scoreExtension, Reason: "extension ." + ext})
	}
	if len(content) > 0 {
		if lang, safe := enry.GetLanguageByShebang(content); safe {
			addKnown(e, lang, scoreShebang, "shebang")
		}
		if lang, safe := enry.GetLanguageByModeline(content); safe {
			addKnown(e, lang, scoreShebang, "modeline")
		}
	}
	if lang, safe := enry.GetLanguageByFilename(base); safe {
		addKnown(e, lang, scoreEnryName, "enry file name")
	} else if lang, safe := enry.GetLanguageByExtension(base); safe {
		addKnown(e, lang, scoreEnryName, "enry extension")
	}
	if l := lexers.Match(base); l != nil {
		addKnown(e, l.Config().Name, scoreChroma, "chroma glob")
	}
	if e.Len() == 0 && len(content) > 0 && !enry.IsBinary(content) {
		if lang, _ := enry.GetLanguageByClassifier(content, classifierCandidates); lang != "" {
			addKnown(e, lang, scoreClassifier, "classifier")
		}
	}
	return e
}

func addKnown(e *Evidence, lang string, score int, reason string) {
	if id, ok := Canonical(lang); ok {
		e.Add(Hint{Dialect: id, Score: score, Reason: reason})
	}
}

// Detect returns the dialect id for path; "text" when nothing matches.
func Detect(path string, content []byte, cfg *config.Snapshot) Classification {
	return Classifier{}.Classify(Collect(path, content, cfg))
}

// IsBinary reports whether content looks like a binary file.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}
