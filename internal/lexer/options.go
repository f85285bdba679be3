package lexer

// Options tunes the lexer. The zero value is valid.
type Options struct {
	// NormalizeIdents rewrites identifier text to Unicode NFC so visually
	// identical names intern to the same symbol. Spans are not affected.
	NormalizeIdents bool
}
