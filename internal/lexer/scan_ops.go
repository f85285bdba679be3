package lexer

import (
	"stellar/internal/token"
)

// scanPunct matches the longest punctuator at the cursor (all are one or
// two bytes). Anything else is an unexpected character.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, ok := token.LookupPunct(string([]byte{b0, b1})); ok {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(k, start)
		}
	}
	if k, ok := token.LookupPunct(string(lx.cursor.Peek())); ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}
	lx.bumpRune()
	return lx.fail(token.UnexpectedChar, start)
}

// scanComment scans a line comment starting at "//".
//   - "//!" begins a module-level doc comment
//   - "///" (but not "////") begins an item-level doc comment
//
// Doc comment text is the rest of the line after the marker.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	kind := token.Comment
	switch {
	case lx.cursor.Peek() == '!':
		kind = token.GlobalDocComment
		lx.cursor.Bump()
	case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) != '/':
		kind = token.LocalDocComment
		lx.cursor.Bump()
	}
	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}

	tok := lx.emit(kind, start)
	if kind != token.Comment {
		tok.Text = string(lx.file.Content[bodyStart:lx.cursor.Off])
	}
	return tok
}
