package fuzztests

import (
	"testing"

	"stellar/internal/lexer"
	"stellar/internal/source"
	"stellar/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.sr", input))
		size := uint32(len(file.Content))

		lx := lexer.New(file, lexer.Options{NormalizeIdents: true})
		var prevEnd uint32
		// каждый токен съедает хотя бы один байт, так что шагов не больше size+1
		for steps := uint32(0); ; steps++ {
			if steps > size+1 {
				t.Fatalf("lexer made no progress after %d tokens", steps)
			}
			tok := lx.Next()
			if tok.Span.Start > tok.Span.End || tok.Span.End > size {
				t.Fatalf("token %s has bad span %v (size %d)", tok.Kind, tok.Span, size)
			}
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %s at %v overlaps previous end %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Empty() {
				t.Fatalf("non-EOF token %s has an empty span", tok.Kind)
			}
		}
	})
}
