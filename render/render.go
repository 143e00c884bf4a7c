// Package render turns cst trees back into source text. Rendering a parsed
// tree reproduces the input byte for byte; a Tracker hooked into the run
// observes the exact output range every node occupies.
package render

import (
	"fmt"
	"strings"

	"birch/cst"
)

// Options controls a render run.
type Options struct {
	// Tracker, when set, receives a span record per emitted node.
	Tracker Tracker
}

// Run renders the whole document and returns its text. The tree is validated
// first, so a malformed tree fails before anything is emitted.
func Run(tree *cst.Tree, opts Options) (string, error) {
	if err := tree.Validate(); err != nil {
		return "", err
	}
	s := newState(tree, tree.Config(), opts.Tracker)
	s.emit(tree.Root())
	return strings.Join(s.tokens, ""), nil
}

// Text renders the whole document.
func Text(tree *cst.Tree) (string, error) {
	return Run(tree, Options{})
}

// Bytes renders the whole document and encodes it per the document encoding.
func Bytes(tree *cst.Tree) ([]byte, error) {
	text, err := Run(tree, Options{})
	if err != nil {
		return nil, err
	}
	return encodeText(text, tree.Config().Encoding)
}

// NodeText renders one subtree using the document defaults for newlines and
// indentation. The root module's trailing-newline handling does not apply
// here, so rendering a statement always ends with its own terminator.
func NodeText(tree *cst.Tree, id cst.NodeID) (string, error) {
	if err := tree.ValidateAt(id); err != nil {
		return "", err
	}
	s := newState(tree, tree.Config(), nil)
	s.emit(id)
	return strings.Join(s.tokens, ""), nil
}

func (s *state) emit(id cst.NodeID) {
	m := s.mark()
	s.emitNode(id)
	s.finish(id, m)
}

func (s *state) emitNode(id cst.NodeID) {
	t := s.tree
	switch t.Kind(id) {
	case cst.KindModule:
		mod, _ := t.Module(id)
		for _, h := range mod.Header {
			s.emit(h)
		}
		for _, b := range mod.Body {
			s.emit(b)
		}
		for _, f := range mod.Footer {
			s.emit(f)
		}
		if !mod.Config.OmitTrailingNewline {
			if len(s.tokens) == 0 {
				// Nothing rendered at all; the document still owns one
				// terminator.
				s.add(s.cfg.Newline)
			}
		} else if len(s.tokens) > 0 {
			// Every line construct ends in a newline token, so dropping the
			// last token drops exactly the final terminator.
			s.popLast()
		}

	case cst.KindComment, cst.KindName, cst.KindInteger, cst.KindString:
		text, _ := t.Text(id)
		s.add(text)

	case cst.KindSimpleWhitespace:
		text, _ := t.Text(id)
		s.add(text)

	case cst.KindNewline:
		text, _ := t.Text(id)
		if text == "" {
			text = s.cfg.Newline
		}
		s.add(text)

	case cst.KindEmptyLine:
		e, _ := t.EmptyLine(id)
		if e.Indent {
			s.addIndent()
		}
		s.emit(e.Whitespace)
		if e.Comment.IsValid() {
			s.emit(e.Comment)
		}
		s.emit(e.Newline)

	case cst.KindTrailingWhitespace:
		tw, _ := t.TrailingWhitespace(id)
		s.emit(tw.Whitespace)
		if tw.Comment.IsValid() {
			s.emit(tw.Comment)
		}
		s.emit(tw.Newline)

	case cst.KindSimpleStatement:
		st, _ := t.SimpleStatement(id)
		for _, l := range st.Leading {
			s.emit(l)
		}
		s.addIndent()
		m := s.mark()
		for _, b := range st.Body {
			s.emit(b)
		}
		endFrom := cst.NoNode
		if len(st.Body) > 0 {
			endFrom = st.Body[len(st.Body)-1]
		}
		s.endSyntactic(id, m, cst.NoNode, endFrom)
		s.emit(st.Trailing)

	case cst.KindPass:
		m := s.mark()
		s.add("pass")
		s.endSyntactic(id, m, cst.NoNode, cst.NoNode)

	case cst.KindReturn:
		r, _ := t.Return(id)
		m := s.mark()
		s.add("return")
		if r.WhitespaceAfterReturn.IsValid() {
			s.emit(r.WhitespaceAfterReturn)
		}
		if r.Value.IsValid() {
			s.emit(r.Value)
		}
		s.endSyntactic(id, m, cst.NoNode, cst.NoNode)

	case cst.KindExpr:
		e, _ := t.Expr(id)
		m := s.mark()
		s.emit(e.Value)
		s.endSyntactic(id, m, cst.NoNode, cst.NoNode)

	case cst.KindAssign:
		a, _ := t.Assign(id)
		m := s.mark()
		s.emit(a.Target)
		s.emit(a.WhitespaceBeforeEqual)
		s.add("=")
		s.emit(a.WhitespaceAfterEqual)
		s.emit(a.Value)
		s.endSyntactic(id, m, cst.NoNode, cst.NoNode)

	case cst.KindIf:
		f, _ := t.If(id)
		for _, l := range f.Leading {
			s.emit(l)
		}
		s.addIndent()
		m := s.mark()
		s.add("if")
		s.emit(f.WhitespaceBeforeTest)
		s.emit(f.Test)
		s.emit(f.WhitespaceAfterTest)
		s.add(":")
		s.emit(f.Body)
		endFrom := f.Body
		if f.Orelse.IsValid() {
			s.emit(f.Orelse)
			endFrom = f.Orelse
		}
		s.endSyntactic(id, m, cst.NoNode, endFrom)

	case cst.KindElse:
		e, _ := t.Else(id)
		for _, l := range e.Leading {
			s.emit(l)
		}
		s.addIndent()
		m := s.mark()
		s.add("else")
		s.emit(e.WhitespaceBeforeColon)
		s.add(":")
		s.emit(e.Body)
		s.endSyntactic(id, m, cst.NoNode, e.Body)

	case cst.KindFuncDef:
		fd, _ := t.FuncDef(id)
		for _, l := range fd.Leading {
			s.emit(l)
		}
		s.addIndent()
		m := s.mark()
		s.add("def")
		s.emit(fd.WhitespaceAfterDef)
		s.emit(fd.Name)
		s.emit(fd.WhitespaceAfterName)
		s.add("(")
		s.add(")")
		s.emit(fd.WhitespaceBeforeColon)
		s.add(":")
		s.emit(fd.Body)
		s.endSyntactic(id, m, cst.NoNode, fd.Body)

	case cst.KindIndentedBlock:
		b, _ := t.IndentedBlock(id)
		s.emit(b.Header)
		segment := b.Indent
		if segment == "" {
			segment = s.cfg.Indent
		}
		s.pushIndent(segment)
		m := s.mark()
		for _, st := range b.Body {
			s.emit(st)
		}
		var startFrom, endFrom cst.NodeID
		if len(b.Body) > 0 {
			startFrom = b.Body[0]
			endFrom = b.Body[len(b.Body)-1]
		}
		s.endSyntactic(id, m, startFrom, endFrom)
		for _, f := range b.Footer {
			s.emit(f)
		}
		s.popIndent()

	default:
		panic(fmt.Sprintf("render: unhandled node kind %s", t.Kind(id)))
	}
}
