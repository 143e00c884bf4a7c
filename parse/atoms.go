package parse

import (
	"unicode/utf8"

	"birch/cst"
)

// parseSmall parses one small statement at the cursor: pass, return with an
// optional value, a single-target assignment, or a bare expression.
func (p *parser) parseSmall() (cst.NodeID, bool) {
	switch {
	case p.cutKeyword("pass"):
		return p.tree.NewPass(), true

	case p.cutKeyword("return"):
		mark := p.off
		ws := p.scanWS()
		if !p.atAtomStart() {
			// The whitespace belongs to the line tail, not the return.
			p.off = mark
			return p.tree.NewReturn(cst.ReturnData{}), true
		}
		value, ok := p.scanAtom("a return value")
		if !ok {
			return cst.NoNode, false
		}
		return p.tree.NewReturn(cst.ReturnData{
			WhitespaceAfterReturn: p.tree.NewSimpleWhitespace(ws),
			Value:                 value,
		}), true

	default:
		target, ok := p.scanAtom("a statement")
		if !ok {
			return cst.NoNode, false
		}
		mark := p.off
		ws := p.scanWS()
		if p.atEOF() || p.src[p.off] != '=' {
			p.off = mark
			return p.tree.NewExpr(cst.ExprData{Value: target}), true
		}
		if p.tree.Kind(target) != cst.KindName {
			p.errorf(p.off, "cannot assign to a literal")
			return cst.NoNode, false
		}
		p.off++
		wsAfter := p.scanWS()
		value, ok := p.scanAtom(`a value after "="`)
		if !ok {
			return cst.NoNode, false
		}
		return p.tree.NewAssign(cst.AssignData{
			Target:                target,
			WhitespaceBeforeEqual: p.tree.NewSimpleWhitespace(ws),
			WhitespaceAfterEqual:  p.tree.NewSimpleWhitespace(wsAfter),
			Value:                 value,
		}), true
	}
}

// scanAtom scans a name, integer or string literal. what names the expected
// construct in the error message.
func (p *parser) scanAtom(what string) (cst.NodeID, bool) {
	if !p.atAtomStart() {
		p.errorf(p.off, "expected %s", what)
		return cst.NoNode, false
	}
	c := p.src[p.off]
	switch {
	case c == '"' || c == '\'':
		return p.scanString()
	case '0' <= c && c <= '9':
		start := p.off
		for !p.atEOF() && (isDigit(p.src[p.off]) || p.src[p.off] == '_') {
			p.off++
		}
		return p.tree.NewInteger(p.src[start:p.off]), true
	default:
		start := p.off
		text := p.scanIdent()
		if isKeyword(text) {
			p.errorf(start, "unexpected keyword %q", text)
			return cst.NoNode, false
		}
		return p.tree.NewName(text), true
	}
}

// scanName scans an identifier that is not a keyword, consuming nothing on
// failure.
func (p *parser) scanName() (cst.NodeID, bool) {
	if p.atEOF() || !isIdentStart(p.src[p.off]) {
		return cst.NoNode, false
	}
	mark := p.off
	text := p.scanIdent()
	if isKeyword(text) {
		p.off = mark
		return cst.NoNode, false
	}
	return p.tree.NewName(text), true
}

// scanString scans a quoted literal. A backslash escapes the next character,
// including a line terminator. After a closing quote, a backslash
// continuation followed by another literal is absorbed into the same leaf,
// so a string split across physical lines stays one node.
func (p *parser) scanString() (cst.NodeID, bool) {
	start := p.off
	for {
		if !p.scanStringPiece() {
			return cst.NoNode, false
		}
		if !p.absorbContinuation() {
			return p.tree.NewString(p.src[start:p.off]), true
		}
	}
}

// scanStringPiece consumes one quoted literal at the cursor.
func (p *parser) scanStringPiece() bool {
	quote := p.src[p.off]
	p.off++
	for {
		if p.atEOF() {
			p.errorf(p.off, "unterminated string")
			return false
		}
		c := p.src[p.off]
		switch {
		case c == quote:
			p.off++
			return true
		case c == '\\':
			p.off++
			if p.atEOF() {
				p.errorf(p.off, "unterminated string")
				return false
			}
			// An escaped terminator continues the literal on the next
			// physical line; anything else is a one-character escape.
			if seq, _ := p.scanNewline(); seq == "" {
				p.off++
			}
		case c == '\n' || c == '\r':
			p.errorf(p.off, "unterminated string")
			return false
		default:
			p.off++
		}
	}
}

// absorbContinuation consumes whitespace, a backslash continuation and the
// whitespace after it, when the next literal piece follows. Consumes nothing
// otherwise.
func (p *parser) absorbContinuation() bool {
	mark := p.off
	p.scanWS()
	if p.atEOF() || p.src[p.off] != '\\' {
		p.off = mark
		return false
	}
	p.off++
	if seq, _ := p.scanNewline(); seq == "" {
		p.off = mark
		return false
	}
	p.scanWS()
	if p.atEOF() || (p.src[p.off] != '"' && p.src[p.off] != '\'') {
		p.off = mark
		return false
	}
	return true
}

// scanWS consumes spaces and tabs and returns them.
func (p *parser) scanWS() string {
	start := p.off
	for !p.atEOF() && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	return p.src[start:p.off]
}

// scanIdent consumes an identifier run. The caller checks the first byte.
func (p *parser) scanIdent() string {
	start := p.off
	for !p.atEOF() && isIdentChar(p.src[p.off]) {
		p.off++
	}
	return p.src[start:p.off]
}

func (p *parser) atAtomStart() bool {
	if p.atEOF() {
		return false
	}
	c := p.src[p.off]
	return c == '"' || c == '\'' || isDigit(c) || isIdentStart(c)
}

// atKeyword reports whether the keyword sits at the cursor with a
// non-identifier character after it.
func (p *parser) atKeyword(kw string) bool {
	end := p.off + len(kw)
	if end > len(p.src) || p.src[p.off:end] != kw {
		return false
	}
	return end == len(p.src) || !isIdentChar(p.src[end])
}

// cutKeyword consumes the keyword when it sits at the cursor.
func (p *parser) cutKeyword(kw string) bool {
	if !p.atKeyword(kw) {
		return false
	}
	p.off += len(kw)
	return true
}

func isKeyword(s string) bool {
	switch s {
	case "pass", "return", "if", "else", "def":
		return true
	}
	return false
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Bytes beyond ASCII are identifier characters: names may be any non-ASCII
// word, and slicing the source byte-wise keeps multi-byte runes intact.
func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c >= utf8.RuneSelf
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
