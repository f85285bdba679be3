package token

var keywordSpelling = [...]string{
	KwAs - firstKeyword:         "as",
	KwDefer - firstKeyword:      "defer",
	KwElse - firstKeyword:       "else",
	KwEnum - firstKeyword:       "enum",
	KwFor - firstKeyword:        "for",
	KwFun - firstKeyword:        "fun",
	KwIf - firstKeyword:         "if",
	KwPub - firstKeyword:        "pub",
	KwReturn - firstKeyword:     "return",
	KwStruct - firstKeyword:     "struct",
	KwType - firstKeyword:       "type",
	KwLet - firstKeyword:        "let",
	KwWhere - firstKeyword:      "where",
	KwWhile - firstKeyword:      "while",
	KwMatch - firstKeyword:      "match",
	KwImport - firstKeyword:     "import",
	KwBreak - firstKeyword:      "break",
	KwContinue - firstKeyword:   "continue",
	KwDyn - firstKeyword:        "dyn",
	KwLoop - firstKeyword:       "loop",
	KwInterface - firstKeyword:  "interface",
	KwImplements - firstKeyword: "implements",
}

var punctSpelling = [...]string{
	FatArrow - firstPunct:      "=>",
	Amp - firstPunct:           "&",
	AmpAssign - firstPunct:     "&=",
	AndAnd - firstPunct:        "&&",
	Star - firstPunct:          "*",
	StarStar - firstPunct:      "**",
	StarAssign - firstPunct:    "*=",
	At - firstPunct:            "@",
	Bang - firstPunct:          "!",
	RBrace - firstPunct:        "}",
	RBracket - firstPunct:      "]",
	RParen - firstPunct:        ")",
	Colon - firstPunct:         ":",
	Comma - firstPunct:         ",",
	Dot - firstPunct:           ".",
	DotDot - firstPunct:        "..",
	Assign - firstPunct:        "=",
	EqEq - firstPunct:          "==",
	Gt - firstPunct:            ">",
	GtEq - firstPunct:          ">=",
	Shl - firstPunct:           "<<",
	Lt - firstPunct:            "<",
	LtEq - firstPunct:          "<=",
	Minus - firstPunct:         "-",
	MinusAssign - firstPunct:   "-=",
	MinusMinus - firstPunct:    "--",
	Tilde - firstPunct:         "~",
	BangEq - firstPunct:        "!=",
	LBrace - firstPunct:        "{",
	LBracket - firstPunct:      "[",
	LParen - firstPunct:        "(",
	Pipe - firstPunct:          "|",
	PipeAssign - firstPunct:    "|=",
	OrOr - firstPunct:          "||",
	Percent - firstPunct:       "%",
	PercentAssign - firstPunct: "%=",
	Plus - firstPunct:          "+",
	PlusAssign - firstPunct:    "+=",
	PlusPlus - firstPunct:      "++",
	Question - firstPunct:      "?",
	Shr - firstPunct:           ">>",
	Semicolon - firstPunct:     ";",
	Slash - firstPunct:         "/",
	SlashAssign - firstPunct:   "/=",
	Caret - firstPunct:         "^",
	CaretAssign - firstPunct:   "^=",
	Hash - firstPunct:          "#",
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordSpelling)+2)
	for i, s := range keywordSpelling {
		m[s] = firstKeyword + Kind(i)
	}
	m["true"] = TrueLit
	m["false"] = FalseLit
	return m
}()

// LookupKeyword returns the keyword (or boolean literal) kind for ident.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var puncts = func() map[string]Kind {
	m := make(map[string]Kind, len(punctSpelling))
	for i, s := range punctSpelling {
		m[s] = firstPunct + Kind(i)
	}
	return m
}()

// LookupPunct returns the punctuator spelled exactly s.
func LookupPunct(s string) (Kind, bool) {
	k, ok := puncts[s]
	return k, ok
}
