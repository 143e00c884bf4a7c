// Package parse turns source text into a lossless cst.Tree: every byte of
// the input, whitespace and comments included, lands in some node, so
// rendering the tree reproduces the input exactly. The grammar covers the
// statement subset the rest of the library exercises: pass, return,
// assignments and expression statements over atoms, if/else and def blocks,
// comments and blank lines.
package parse

import (
	"fmt"
	"unicode/utf8"

	"birch/cst"
	"birch/render"
)

// Parsing stops collecting diagnostics after this many errors.
const maxErrors = 20

// Text parses source text into a tree. On a syntax error the tree is nil
// and the error is an ErrorList.
func Text(src string) (*cst.Tree, error) {
	return parseText(src, "")
}

// Bytes parses raw source bytes: it strips a UTF-8 BOM, honors a coding
// declaration in the first two lines, decodes, and parses. The detected
// encoding is kept in the module config so render.Bytes can reproduce the
// original bytes.
func Bytes(raw []byte) (*cst.Tree, error) {
	name, body, err := detectEncoding(raw)
	if err != nil {
		return nil, err
	}
	text, err := render.Decode(body, name)
	if err != nil {
		return nil, err
	}
	return parseText(text, name)
}

type pendingLine struct {
	indent  string // leading spaces and tabs, verbatim
	text    string // content after the indent, "" for a blank line
	newline string // terminator sequence, "" on an unterminated last line
}

type parser struct {
	src  string
	tree *cst.Tree
	off  int

	newline       string // detected terminator, never empty
	defaultIndent string // first block segment seen, "" until then
	pending       []pendingLine
	errs          ErrorList
}

func parseText(src, encoding string) (*cst.Tree, error) {
	cfg := cst.DocConfig{
		Newline:  detectNewline(src),
		Encoding: encoding,
	}
	if !endsWithNewline(src) {
		cfg.OmitTrailingNewline = true
	}

	p := &parser{
		src:     src,
		tree:    cst.NewTree(cst.Hints{Nodes: uint(len(src)/8) + 16}),
		newline: cfg.Newline,
	}
	if p.newline == "" {
		p.newline = "\n"
	}

	// A lone terminator is the implicit trailing newline of an empty
	// module, not a blank line.
	if src == "" || src == cfg.Newline {
		p.tree.NewModule(cst.ModuleData{Config: cfg})
		return p.tree, nil
	}

	p.collectPending()
	header := p.takePending("")
	body := p.parseTopLevel()
	var footer []cst.NodeID
	if len(body) > 0 {
		footer = p.takePending("")
	} else {
		header = append(header, p.takePending("")...)
	}

	cfg.Indent = p.defaultIndent
	p.tree.NewModule(cst.ModuleData{
		Header: header,
		Body:   body,
		Footer: footer,
		Config: cfg,
	})
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return p.tree, nil
}

func (p *parser) atEOF() bool { return p.off >= len(p.src) }

func (p *parser) tooManyErrors() bool { return len(p.errs) >= maxErrors }

// parseTopLevel parses module-level statements, resynchronizing on lines
// at an unexpected indentation.
func (p *parser) parseTopLevel() []cst.NodeID {
	var body []cst.NodeID
	for {
		body = append(body, p.parseSequence("")...)
		if p.atEOF() || p.tooManyErrors() {
			return body
		}
		indent, text, _, next := lineAt(p.src, p.off)
		if indent == "" && isElseIntro(text) {
			p.errorf(p.off, "else without a matching if")
		} else {
			p.errorf(p.off+len(indent), "unexpected indent")
		}
		p.off = next
	}
}

// errorf records a syntax error at the given byte offset.
func (p *parser) errorf(off int, format string, args ...any) {
	if p.tooManyErrors() {
		return
	}
	p.errs = append(p.errs, &Error{Pos: p.position(off), Msg: fmt.Sprintf(format, args...)})
}

// position converts a byte offset into a 1-based line and rune column.
func (p *parser) position(off int) cst.Position {
	if off > len(p.src) {
		off = len(p.src)
	}
	line, start := 1, 0
	for i := 0; i < off; i++ {
		switch p.src[i] {
		case '\n':
			line++
			start = i + 1
		case '\r':
			if i+1 < len(p.src) && p.src[i+1] == '\n' {
				i++
			}
			line++
			start = i + 1
		}
	}
	return cst.Position{Line: line, Column: utf8.RuneCountInString(p.src[start:off])}
}

// skipLine abandons the rest of the current physical line after an error.
func (p *parser) skipLine() {
	_, _, _, next := lineAt(p.src, p.off)
	p.off = next
}
