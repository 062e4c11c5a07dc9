package fuzztests

import (
	"testing"
	"unicode/utf8"

	"autocorrect/internal/dialect"
)

// FuzzTextIdempotent checks that formatting plain text twice changes nothing
// the second time.
func FuzzTextIdempotent(f *testing.F) {
	addLanguageSeeds(f)
	eng := dialect.NewRegistry(nil).EngineFor(dialect.Text)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := clip(input)
		if !utf8.ValidString(src) {
			return
		}
		once := eng.Format(src)
		if once.Err != nil {
			t.Fatalf("format: %v", once.Err)
		}
		twice := eng.Format(once.Out)
		if twice.Out != once.Out {
			t.Fatalf("not idempotent:\n%q\n%q\n%q", src, once.Out, twice.Out)
		}
	})
}

// FuzzEmbedded runs every registered dialect on the same input; tokenizer
// failures are allowed but must leave the source untouched.
func FuzzEmbedded(f *testing.F) {
	addCorpusSeeds(f)
	reg := dialect.NewRegistry(nil)
	ids := []string{"markdown", "html", "go", "python", "css", "javascript", "yaml"}
	f.Fuzz(func(t *testing.T, input []byte) {
		src := clip(input)
		for _, id := range ids {
			res := reg.EngineFor(id).Format(src)
			if res.Err != nil && res.Out != src {
				t.Fatalf("%s: failed format changed the source", id)
			}
		}
	})
}
