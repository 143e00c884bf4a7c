package cst

// AppendChildren appends the children of id to dst in emission order: the
// order rendering writes them is the order a traversal visits them.
func (t *Tree) AppendChildren(dst []NodeID, id NodeID) []NodeID {
	push := func(ids ...NodeID) {
		for _, c := range ids {
			if c.IsValid() {
				dst = append(dst, c)
			}
		}
	}
	switch t.Kind(id) {
	case KindModule:
		m, _ := t.Module(id)
		push(m.Header...)
		push(m.Body...)
		push(m.Footer...)
	case KindEmptyLine:
		e, _ := t.EmptyLine(id)
		push(e.Whitespace, e.Comment, e.Newline)
	case KindTrailingWhitespace:
		tw, _ := t.TrailingWhitespace(id)
		push(tw.Whitespace, tw.Comment, tw.Newline)
	case KindSimpleStatement:
		s, _ := t.SimpleStatement(id)
		push(s.Leading...)
		push(s.Body...)
		push(s.Trailing)
	case KindReturn:
		r, _ := t.Return(id)
		push(r.WhitespaceAfterReturn, r.Value)
	case KindExpr:
		e, _ := t.Expr(id)
		push(e.Value)
	case KindAssign:
		a, _ := t.Assign(id)
		push(a.Target, a.WhitespaceBeforeEqual, a.WhitespaceAfterEqual, a.Value)
	case KindIf:
		f, _ := t.If(id)
		push(f.Leading...)
		push(f.WhitespaceBeforeTest, f.Test, f.WhitespaceAfterTest, f.Body, f.Orelse)
	case KindElse:
		e, _ := t.Else(id)
		push(e.Leading...)
		push(e.WhitespaceBeforeColon, e.Body)
	case KindFuncDef:
		fd, _ := t.FuncDef(id)
		push(fd.Leading...)
		push(fd.WhitespaceAfterDef, fd.Name, fd.WhitespaceAfterName, fd.WhitespaceBeforeColon, fd.Body)
	case KindIndentedBlock:
		b, _ := t.IndentedBlock(id)
		push(b.Header)
		push(b.Body...)
		push(b.Footer...)
	}
	return dst
}

// Children returns the children of id in emission order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.AppendChildren(nil, id)
}
