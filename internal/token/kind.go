package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never produces it.
	Invalid Kind = iota
	// EOF marks the end of the source input; repeated forever once reached.
	EOF
	// LexError marks a malformed lexeme; Token.Err holds the reason.
	LexError

	Comment          // //
	GlobalDocComment // //!
	LocalDocComment  // ///

	Ident
	IntLit
	FloatLit
	StringLit
	CharLit
	TrueLit  // true
	FalseLit // false

	KwAs         // as
	KwDefer      // defer
	KwElse       // else
	KwEnum       // enum
	KwFor        // for
	KwFun        // fun
	KwIf         // if
	KwPub        // pub
	KwReturn     // return
	KwStruct     // struct
	KwType       // type
	KwLet        // let
	KwWhere      // where
	KwWhile      // while
	KwMatch      // match
	KwImport     // import
	KwBreak      // break
	KwContinue   // continue
	KwDyn        // dyn
	KwLoop       // loop
	KwInterface  // interface
	KwImplements // implements

	FatArrow      // =>
	Amp           // &
	AmpAssign     // &=
	AndAnd        // &&
	Star          // *
	StarStar      // **
	StarAssign    // *=
	At            // @
	Bang          // !
	RBrace        // }
	RBracket      // ]
	RParen        // )
	Colon         // :
	Comma         // ,
	Dot           // .
	DotDot        // ..
	Assign        // =
	EqEq          // ==
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Lt            // <
	LtEq          // <=
	Minus         // -
	MinusAssign   // -=
	MinusMinus    // --
	Tilde         // ~
	BangEq        // !=
	LBrace        // {
	LBracket      // [
	LParen        // (
	Pipe          // |
	PipeAssign    // |=
	OrOr          // ||
	Percent       // %
	PercentAssign // %=
	Plus          // +
	PlusAssign    // +=
	PlusPlus      // ++
	Question      // ?
	Shr           // >>
	Semicolon     // ;
	Slash         // /
	SlashAssign   // /=
	Caret         // ^
	CaretAssign   // ^=
	Hash          // #

	kindCount
)

const (
	firstKeyword = KwAs
	lastKeyword  = KwImplements
	firstPunct   = FatArrow
	lastPunct    = Hash
)

var kindNames = [kindCount]string{
	Invalid:          "invalid token",
	EOF:              "end of file",
	LexError:         "lexical error",
	Comment:          "comment",
	GlobalDocComment: "global doc comment",
	LocalDocComment:  "local doc comment",
	Ident:            "identifier",
	IntLit:           "integer literal",
	FloatLit:         "float literal",
	StringLit:        "string literal",
	CharLit:          "character literal",
	TrueLit:          "`true`",
	FalseLit:         "`false`",
}

// Lexeme returns the fixed spelling of keywords and punctuators, or "".
func (k Kind) Lexeme() string {
	switch {
	case k.IsKeyword():
		return keywordSpelling[k-firstKeyword]
	case k.IsPunct():
		return punctSpelling[k-firstPunct]
	case k == TrueLit:
		return "true"
	case k == FalseLit:
		return "false"
	}
	return ""
}

// String renders the kind the way diagnostics mention it: fixed lexemes in
// backticks, everything else by description.
func (k Kind) String() string {
	if lex := k.Lexeme(); lex != "" {
		return "`" + lex + "`"
	}
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown token"
}

// Eof reports whether k is the end-of-file kind.
func (k Kind) Eof() bool { return k == EOF }

func (k Kind) IsKeyword() bool { return k >= firstKeyword && k <= lastKeyword }

func (k Kind) IsPunct() bool { return k >= firstPunct && k <= lastPunct }

// IsLiteral reports whether the kind is a literal of any type.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit, CharLit, TrueLit, FalseLit:
		return true
	default:
		return false
	}
}

// IsComment reports whether k is any comment, doc comments included.
func (k Kind) IsComment() bool {
	return k == Comment || k == GlobalDocComment || k == LocalDocComment
}

// IsDocComment reports whether k is a module-level or item-level doc comment.
func (k Kind) IsDocComment() bool {
	return k == GlobalDocComment || k == LocalDocComment
}

// Kinds returns every kind the lexer can produce, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := EOF; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
