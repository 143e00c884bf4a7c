package parse

import (
	"strings"

	"birch/cst"
)

// lineAt splits the physical line starting at off into its indentation run,
// its content, and its terminator. next is the offset of the following line
// (or len(src) when the line is unterminated).
func lineAt(src string, off int) (indent, text, nl string, next int) {
	i := off
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	j := i
	for j < len(src) && src[j] != '\n' && src[j] != '\r' {
		j++
	}
	next = j
	if j < len(src) {
		if src[j] == '\r' && j+1 < len(src) && src[j+1] == '\n' {
			next = j + 2
		} else {
			next = j + 1
		}
	}
	return src[off:i], src[i:j], src[j:next], next
}

// isDecoration reports whether the line content carries no statement: blank
// or comment-only lines attach to neighbouring statements rather than
// standing on their own.
func isDecoration(text string) bool {
	return text == "" || text[0] == '#'
}

// collectPending absorbs the run of blank and comment lines at the cursor.
// Their indentation never affects block structure; where they attach is
// decided later, against the indent of whatever follows them.
func (p *parser) collectPending() {
	for !p.atEOF() {
		indent, text, nl, next := lineAt(p.src, p.off)
		if !isDecoration(text) {
			return
		}
		p.pending = append(p.pending, pendingLine{indent: indent, text: text, newline: nl})
		p.off = next
	}
}

// takePending converts every pending line into an EmptyLine measured against
// absIndent and clears the queue. Used for statement leading lines and for
// the module header and footer.
func (p *parser) takePending(absIndent string) []cst.NodeID {
	if len(p.pending) == 0 {
		return nil
	}
	lines := make([]cst.NodeID, 0, len(p.pending))
	for _, ln := range p.pending {
		lines = append(lines, p.emptyLine(ln, absIndent))
	}
	p.pending = p.pending[:0]
	return lines
}

// takeFooter claims the block footer from the pending queue: everything up
// to the last line still indented to the block's level. Lines after that
// point belong to whatever statement follows the block.
func (p *parser) takeFooter(absIndent string) []cst.NodeID {
	last := -1
	for i, ln := range p.pending {
		if strings.HasPrefix(ln.indent, absIndent) {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	footer := make([]cst.NodeID, 0, last+1)
	for _, ln := range p.pending[:last+1] {
		footer = append(footer, p.emptyLine(ln, absIndent))
	}
	p.pending = p.pending[last+1:]
	return footer
}

// emptyLine builds the EmptyLine node for one decoration line. When the raw
// indentation starts with absIndent, that prefix is owed to the enclosing
// block and only the remainder is stored; otherwise the whole run is kept
// verbatim and the line opts out of block indentation.
func (p *parser) emptyLine(ln pendingLine, absIndent string) cst.NodeID {
	indented := strings.HasPrefix(ln.indent, absIndent)
	ws := ln.indent
	if indented {
		ws = ln.indent[len(absIndent):]
	}
	comment := cst.NoNode
	if ln.text != "" {
		comment = p.tree.NewComment(ln.text)
	}
	return p.tree.NewEmptyLine(cst.EmptyLineData{
		Indent:     indented,
		Whitespace: p.tree.NewSimpleWhitespace(ws),
		Comment:    comment,
		Newline:    p.newlineNode(ln.newline),
	})
}

// newlineNode interns a terminator, storing "" for the document default so
// generated trees inherit the document's newline style.
func (p *parser) newlineNode(seq string) cst.NodeID {
	if seq == p.newline {
		seq = ""
	}
	return p.tree.NewNewline(seq)
}
