package cst

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is the sentinel all structural errors unwrap to.
var ErrMalformedTree = errors.New("malformed tree")

// MalformedTreeError reports a structural problem at a specific node.
type MalformedTreeError struct {
	Node   NodeID
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed tree at node %d: %s", e.Node, e.Reason)
}

func (e *MalformedTreeError) Unwrap() error {
	return ErrMalformedTree
}

func malformed(id NodeID, format string, args ...any) error {
	return &MalformedTreeError{Node: id, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the tree under the root module: every reference resolves to
// a node of the expected kind, no node is shared or part of a cycle, there is
// exactly one module and it is the root, and every indented block has at
// least one statement. Rendering runs this first so emission itself never has
// to re-check structure.
func (t *Tree) Validate() error {
	if !t.root.IsValid() {
		return malformed(NoNode, "tree has no module")
	}
	if t.modules.len() > 1 {
		return malformed(t.root, "tree has %d modules, want exactly one", t.modules.len())
	}
	v := &validator{t: t, seen: make([]bool, t.Len()+1)}
	return v.check(t.root)
}

// ValidateAt checks just the subtree rooted at id.
func (t *Tree) ValidateAt(id NodeID) error {
	v := &validator{t: t, seen: make([]bool, t.Len()+1)}
	return v.check(id)
}

type validator struct {
	t    *Tree
	seen []bool
}

func (v *validator) check(id NodeID) error {
	if int(id) >= len(v.seen) || v.t.Kind(id) == KindInvalid {
		return malformed(id, "reference to a node outside the tree")
	}
	if v.seen[id] {
		return malformed(id, "node appears in more than one place")
	}
	v.seen[id] = true

	t := v.t
	switch t.Kind(id) {
	case KindModule:
		if id != t.root {
			return malformed(id, "module below the root")
		}
		m, _ := t.Module(id)
		if err := v.checkAll(m.Header, KindEmptyLine, "header line"); err != nil {
			return err
		}
		if err := v.checkStmts(m.Body); err != nil {
			return err
		}
		return v.checkAll(m.Footer, KindEmptyLine, "footer line")

	case KindEmptyLine:
		e, _ := t.EmptyLine(id)
		return v.checkLineTail(e.Whitespace, e.Comment, e.Newline)

	case KindTrailingWhitespace:
		tw, _ := t.TrailingWhitespace(id)
		return v.checkLineTail(tw.Whitespace, tw.Comment, tw.Newline)

	case KindSimpleStatement:
		s, _ := t.SimpleStatement(id)
		if err := v.checkAll(s.Leading, KindEmptyLine, "leading line"); err != nil {
			return err
		}
		for _, b := range s.Body {
			if err := v.checkSmall(b); err != nil {
				return err
			}
		}
		return v.checkKind(s.Trailing, KindTrailingWhitespace, "statement tail")

	case KindReturn:
		r, _ := t.Return(id)
		if r.WhitespaceAfterReturn.IsValid() {
			if err := v.checkKind(r.WhitespaceAfterReturn, KindSimpleWhitespace, "whitespace"); err != nil {
				return err
			}
		}
		if r.Value.IsValid() {
			return v.checkExpr(r.Value)
		}
		return nil

	case KindExpr:
		e, _ := t.Expr(id)
		return v.checkExpr(e.Value)

	case KindAssign:
		a, _ := t.Assign(id)
		if err := v.checkKind(a.Target, KindName, "assignment target"); err != nil {
			return err
		}
		if err := v.checkKind(a.WhitespaceBeforeEqual, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		if err := v.checkKind(a.WhitespaceAfterEqual, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		return v.checkExpr(a.Value)

	case KindIf:
		f, _ := t.If(id)
		if err := v.checkAll(f.Leading, KindEmptyLine, "leading line"); err != nil {
			return err
		}
		if err := v.checkKind(f.WhitespaceBeforeTest, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		if err := v.checkExpr(f.Test); err != nil {
			return err
		}
		if err := v.checkKind(f.WhitespaceAfterTest, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		if err := v.checkKind(f.Body, KindIndentedBlock, "if body"); err != nil {
			return err
		}
		if f.Orelse.IsValid() {
			return v.checkKind(f.Orelse, KindElse, "else branch")
		}
		return nil

	case KindElse:
		e, _ := t.Else(id)
		if err := v.checkAll(e.Leading, KindEmptyLine, "leading line"); err != nil {
			return err
		}
		if err := v.checkKind(e.WhitespaceBeforeColon, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		return v.checkKind(e.Body, KindIndentedBlock, "else body")

	case KindFuncDef:
		fd, _ := t.FuncDef(id)
		if err := v.checkAll(fd.Leading, KindEmptyLine, "leading line"); err != nil {
			return err
		}
		if err := v.checkKind(fd.WhitespaceAfterDef, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		if err := v.checkKind(fd.Name, KindName, "function name"); err != nil {
			return err
		}
		if err := v.checkKind(fd.WhitespaceAfterName, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		if err := v.checkKind(fd.WhitespaceBeforeColon, KindSimpleWhitespace, "whitespace"); err != nil {
			return err
		}
		return v.checkKind(fd.Body, KindIndentedBlock, "function body")

	case KindIndentedBlock:
		b, _ := t.IndentedBlock(id)
		if err := v.checkKind(b.Header, KindTrailingWhitespace, "block header"); err != nil {
			return err
		}
		if len(b.Body) == 0 {
			return malformed(id, "indented block with no statements")
		}
		if err := v.checkStmts(b.Body); err != nil {
			return err
		}
		return v.checkAll(b.Footer, KindEmptyLine, "footer line")

	default:
		// Leaves carry no references.
		return nil
	}
}

func (v *validator) checkKind(id NodeID, want Kind, what string) error {
	if got := v.t.Kind(id); got != want {
		return malformed(id, "%s is %s, want %s", what, got, want)
	}
	return v.check(id)
}

func (v *validator) checkAll(ids []NodeID, want Kind, what string) error {
	for _, id := range ids {
		if err := v.checkKind(id, want, what); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) checkStmts(ids []NodeID) error {
	for _, id := range ids {
		switch v.t.Kind(id) {
		case KindSimpleStatement, KindIf, KindFuncDef:
			if err := v.check(id); err != nil {
				return err
			}
		default:
			return malformed(id, "%s cannot stand as a statement", v.t.Kind(id))
		}
	}
	return nil
}

func (v *validator) checkSmall(id NodeID) error {
	switch v.t.Kind(id) {
	case KindPass, KindReturn, KindExpr, KindAssign:
		return v.check(id)
	default:
		return malformed(id, "%s cannot stand as a small statement", v.t.Kind(id))
	}
}

func (v *validator) checkExpr(id NodeID) error {
	switch v.t.Kind(id) {
	case KindName, KindInteger, KindString:
		return v.check(id)
	default:
		return malformed(id, "%s cannot stand as an expression", v.t.Kind(id))
	}
}

func (v *validator) checkLineTail(ws, comment, newline NodeID) error {
	if err := v.checkKind(ws, KindSimpleWhitespace, "line whitespace"); err != nil {
		return err
	}
	if comment.IsValid() {
		if err := v.checkKind(comment, KindComment, "comment"); err != nil {
			return err
		}
	}
	return v.checkKind(newline, KindNewline, "line terminator")
}
