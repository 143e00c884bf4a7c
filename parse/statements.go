package parse

import (
	"strings"

	"birch/cst"
)

// parseSequence parses the run of statements sitting exactly at the given
// indentation. It stops at EOF, at any line with a different indent, and at
// an "else" line, which the enclosing if-parser owns. Pending decoration
// lines are left queued for whoever claims them.
func (p *parser) parseSequence(indent string) []cst.NodeID {
	var stmts []cst.NodeID
	for {
		p.collectPending()
		if p.atEOF() || p.tooManyErrors() {
			return stmts
		}
		lineIndent, text, _, _ := lineAt(p.src, p.off)
		if lineIndent != indent || isElseIntro(text) {
			return stmts
		}
		leading := p.takePending(indent)
		if st, ok := p.parseStatement(indent, leading); ok {
			stmts = append(stmts, st)
		}
	}
}

func (p *parser) parseStatement(indent string, leading []cst.NodeID) (cst.NodeID, bool) {
	p.off += len(indent)
	switch {
	case p.atKeyword("if"):
		return p.parseIf(indent, leading)
	case p.atKeyword("def"):
		return p.parseFuncDef(indent, leading)
	default:
		return p.parseSimpleLine(leading)
	}
}

// parseSimpleLine parses one small statement and the rest of its line.
func (p *parser) parseSimpleLine(leading []cst.NodeID) (cst.NodeID, bool) {
	small, ok := p.parseSmall()
	if !ok {
		p.skipLine()
		return cst.NoNode, false
	}
	trailing, ok := p.scanTail()
	if !ok {
		p.skipLine()
		return cst.NoNode, false
	}
	return p.tree.NewSimpleStatement(cst.SimpleStatementData{
		Leading:  leading,
		Body:     []cst.NodeID{small},
		Trailing: trailing,
	}), true
}

func (p *parser) parseIf(indent string, leading []cst.NodeID) (cst.NodeID, bool) {
	p.cutKeyword("if")
	wsBeforeTest := p.scanWS()
	test, ok := p.scanAtom("a condition")
	if !ok {
		p.skipLine()
		return cst.NoNode, false
	}
	wsAfterTest := p.scanWS()
	if !p.eat(':') {
		p.errorf(p.off, `expected ":"`)
		p.skipLine()
		return cst.NoNode, false
	}
	header, ok := p.scanTail()
	if !ok {
		p.skipLine()
		return cst.NoNode, false
	}
	body := p.parseSuite(indent, header)

	orelse := cst.NoNode
	if !p.atEOF() {
		lineIndent, text, _, _ := lineAt(p.src, p.off)
		if lineIndent == indent && isElseIntro(text) {
			orelse, ok = p.parseElse(indent)
			if !ok {
				return cst.NoNode, false
			}
		}
	}
	return p.tree.NewIf(cst.IfData{
		Leading:              leading,
		WhitespaceBeforeTest: p.tree.NewSimpleWhitespace(wsBeforeTest),
		Test:                 test,
		WhitespaceAfterTest:  p.tree.NewSimpleWhitespace(wsAfterTest),
		Body:                 body,
		Orelse:               orelse,
	}), true
}

func (p *parser) parseElse(indent string) (cst.NodeID, bool) {
	leading := p.takePending(indent)
	p.off += len(indent)
	p.cutKeyword("else")
	ws := p.scanWS()
	if !p.eat(':') {
		p.errorf(p.off, `expected ":"`)
		p.skipLine()
		return cst.NoNode, false
	}
	header, ok := p.scanTail()
	if !ok {
		p.skipLine()
		return cst.NoNode, false
	}
	body := p.parseSuite(indent, header)
	return p.tree.NewElse(cst.ElseData{
		Leading:               leading,
		WhitespaceBeforeColon: p.tree.NewSimpleWhitespace(ws),
		Body:                  body,
	}), true
}

func (p *parser) parseFuncDef(indent string, leading []cst.NodeID) (cst.NodeID, bool) {
	p.cutKeyword("def")
	wsAfterDef := p.scanWS()
	name, ok := p.scanName()
	if !ok {
		p.errorf(p.off, "expected a function name")
		p.skipLine()
		return cst.NoNode, false
	}
	wsAfterName := p.scanWS()
	if !p.eat('(') {
		p.errorf(p.off, `expected "("`)
		p.skipLine()
		return cst.NoNode, false
	}
	if !p.eat(')') {
		p.errorf(p.off, `expected ")"`)
		p.skipLine()
		return cst.NoNode, false
	}
	wsBeforeColon := p.scanWS()
	if !p.eat(':') {
		p.errorf(p.off, `expected ":"`)
		p.skipLine()
		return cst.NoNode, false
	}
	header, ok := p.scanTail()
	if !ok {
		p.skipLine()
		return cst.NoNode, false
	}
	body := p.parseSuite(indent, header)
	return p.tree.NewFuncDef(cst.FuncDefData{
		Leading:               leading,
		WhitespaceAfterDef:    p.tree.NewSimpleWhitespace(wsAfterDef),
		Name:                  name,
		WhitespaceAfterName:   p.tree.NewSimpleWhitespace(wsAfterName),
		WhitespaceBeforeColon: p.tree.NewSimpleWhitespace(wsBeforeColon),
		Body:                  body,
	}), true
}

// parseSuite parses the indented block introduced by the colon just
// consumed. The first statement line after the decorations fixes the block's
// indentation; the first block of the document fixes the document default.
func (p *parser) parseSuite(parentIndent string, header cst.NodeID) cst.NodeID {
	p.collectPending()

	absIndent, ok := "", false
	if !p.atEOF() {
		lineIndent, _, _, _ := lineAt(p.src, p.off)
		if len(lineIndent) > len(parentIndent) && strings.HasPrefix(lineIndent, parentIndent) {
			absIndent, ok = lineIndent, true
		}
	}
	if !ok {
		p.errorf(p.off, "expected an indented block")
		return p.tree.NewIndentedBlock(cst.IndentedBlockData{Header: header})
	}

	segment := absIndent[len(parentIndent):]
	if p.defaultIndent == "" {
		p.defaultIndent = segment
	}
	stored := segment
	if segment == p.defaultIndent {
		stored = ""
	}

	body := p.parseSequence(absIndent)
	footer := p.takeFooter(absIndent)
	return p.tree.NewIndentedBlock(cst.IndentedBlockData{
		Header: header,
		Indent: stored,
		Body:   body,
		Footer: footer,
	})
}

// scanTail scans the rest of a statement line: optional whitespace, an
// optional comment, and the terminator. An unterminated last line gets a
// default terminator node; the module's trailing-newline flag drops it again
// on output.
func (p *parser) scanTail() (cst.NodeID, bool) {
	ws := p.scanWS()
	comment := cst.NoNode
	if !p.atEOF() && p.src[p.off] == '#' {
		start := p.off
		for !p.atEOF() && p.src[p.off] != '\n' && p.src[p.off] != '\r' {
			p.off++
		}
		comment = p.tree.NewComment(p.src[start:p.off])
	}
	seq, ok := p.scanNewline()
	if !ok {
		p.errorf(p.off, "unexpected text after statement")
		return cst.NoNode, false
	}
	return p.tree.NewTrailingWhitespace(cst.TrailingWhitespaceData{
		Whitespace: p.tree.NewSimpleWhitespace(ws),
		Comment:    comment,
		Newline:    p.newlineNode(seq),
	}), true
}

// scanNewline consumes the terminator at the cursor. EOF counts as one.
func (p *parser) scanNewline() (string, bool) {
	if p.atEOF() {
		return "", true
	}
	switch p.src[p.off] {
	case '\n':
		p.off++
		return "\n", true
	case '\r':
		if p.off+1 < len(p.src) && p.src[p.off+1] == '\n' {
			p.off += 2
			return "\r\n", true
		}
		p.off++
		return "\r", true
	}
	return "", false
}

// eat consumes c when it is next.
func (p *parser) eat(c byte) bool {
	if p.atEOF() || p.src[p.off] != c {
		return false
	}
	p.off++
	return true
}

func isElseIntro(text string) bool {
	return strings.HasPrefix(text, "else") && (len(text) == 4 || !isIdentChar(text[4]))
}
