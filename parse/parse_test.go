package parse

import (
	"bytes"
	"strings"
	"testing"

	"birch/cst"
	"birch/render"
)

func mustParse(t *testing.T, src string) *cst.Tree {
	t.Helper()
	tree, err := Text(src)
	if err != nil {
		t.Fatalf("Text(%q) failed: %v", src, err)
	}
	return tree
}

func renderBack(t *testing.T, tree *cst.Tree) string {
	t.Helper()
	out, err := render.Text(tree)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"pass\n",
		"pass",
		"x = 1\n",
		"x=1\n",
		"x  =  1\n",
		"return\n",
		"return 5\n",
		"return  value  # got one\n",
		"'just a string'\n",
		"name\n",
		"# leading comment\npass\n",
		"\n\npass\n",
		"pass\n# trailing comment\n",
		"pass\n\n\n",
		"  # indented comment at top level\npass\n",
		"if x:\n    pass\n",
		"if x:\n    pass\nelse:\n    return\n",
		"if x:\n    pass\n    # still inside\nelse:\n    pass\n",
		"if x:\n    pass\n# between\nelse:\n    pass\n",
		"def f():\n    return 1\n",
		"def f():\n    pass\n    # done\nx = 1\n",
		"def f():\n\n    pass\n",
		"def f():\n# outdented comment\n    pass\n",
		"def f():\n        # deeper comment goes first\n    pass\n",
		"if a:\n    if b:\n        pass\n# out again\npass\n",
		"if a:\n\tpass\n",
		"if a:\n  pass\nif b:\n      pass\n",
		"pass\r\nx = 1\r\n",
		"pass\r",
		"pass\r\nmixed = 1\n",
		"x = 'ab' \\\n    'cd'\n",
		"s = \"abc\"\\\n\"def\"\n",
		"x = 1",
		"pass\n   ",
		"big_name_1 = still_a_name\n",
		"total = 1_000_000\n",
	}
	for _, src := range sources {
		tree := mustParse(t, src)
		got := renderBack(t, tree)
		if got != src {
			t.Errorf("round trip of %q produced %q", src, got)
			continue
		}
		// Parsing the output again must be stable too.
		again := mustParse(t, got)
		if out := renderBack(t, again); out != got {
			t.Errorf("second round trip of %q produced %q", src, out)
		}
	}
}

func TestEmptyDocumentVariants(t *testing.T) {
	tests := []struct {
		src  string
		omit bool
	}{
		{"", true},
		{"\n", false},
		{"\r\n", false},
	}
	for _, tt := range tests {
		tree := mustParse(t, tt.src)
		mod, ok := tree.Module(tree.Root())
		if !ok {
			t.Fatalf("parse(%q): root is not a module", tt.src)
		}
		if len(mod.Header)+len(mod.Body)+len(mod.Footer) != 0 {
			t.Errorf("parse(%q): expected an empty module", tt.src)
		}
		if mod.Config.OmitTrailingNewline != tt.omit {
			t.Errorf("parse(%q): OmitTrailingNewline = %v, want %v",
				tt.src, mod.Config.OmitTrailingNewline, tt.omit)
		}
		if got := renderBack(t, tree); got != tt.src {
			t.Errorf("parse(%q) renders %q", tt.src, got)
		}
	}
}

func TestConfigDetection(t *testing.T) {
	tests := []struct {
		src     string
		newline string
		indent  string
		omit    bool
	}{
		{"pass\n", "\n", "    ", false},
		{"pass\r\n", "\r\n", "    ", false},
		{"pass\r", "\r", "    ", false},
		{"pass", "\n", "    ", true},
		{"if x:\r\n\tpass\r\n", "\r\n", "\t", false},
		{"if x:\n  pass\n", "\n", "  ", false},
	}
	for _, tt := range tests {
		cfg := mustParse(t, tt.src).Config()
		if cfg.Newline != tt.newline || cfg.Indent != tt.indent || cfg.OmitTrailingNewline != tt.omit {
			t.Errorf("parse(%q) config = %+v, want newline %q indent %q omit %v",
				tt.src, cfg, tt.newline, tt.indent, tt.omit)
		}
	}
}

func TestHeaderBodyFooterAttachment(t *testing.T) {
	tree := mustParse(t, "# h1\n\npass\n# f1\n")
	mod, _ := tree.Module(tree.Root())
	if len(mod.Header) != 2 || len(mod.Body) != 1 || len(mod.Footer) != 1 {
		t.Fatalf("got header %d body %d footer %d, want 2/1/1",
			len(mod.Header), len(mod.Body), len(mod.Footer))
	}
	st, ok := tree.SimpleStatement(mod.Body[0])
	if !ok {
		t.Fatalf("body[0] is %s", tree.Kind(mod.Body[0]))
	}
	if len(st.Leading) != 0 {
		t.Errorf("first statement has %d leading lines, header should own them", len(st.Leading))
	}

	// With no statements everything goes to the header.
	tree = mustParse(t, "# only\n\n# comments\n")
	mod, _ = tree.Module(tree.Root())
	if len(mod.Header) != 3 || len(mod.Body) != 0 || len(mod.Footer) != 0 {
		t.Fatalf("comment-only module: header %d body %d footer %d, want 3/0/0",
			len(mod.Header), len(mod.Body), len(mod.Footer))
	}
}

func TestLeadingLinesBetweenStatements(t *testing.T) {
	tree := mustParse(t, "pass\n\n# c\nreturn\n")
	mod, _ := tree.Module(tree.Root())
	if len(mod.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(mod.Body))
	}
	st, _ := tree.SimpleStatement(mod.Body[1])
	if len(st.Leading) != 2 {
		t.Errorf("second statement has %d leading lines, want 2", len(st.Leading))
	}
}

func TestBlockFooterAttachment(t *testing.T) {
	// The footer reaches down to the last line still at the block's indent;
	// the blank line in between rides along.
	tree := mustParse(t, "def f():\n    pass\n    # a\n\n    # b\nx = 1\n")
	mod, _ := tree.Module(tree.Root())
	fd, ok := tree.FuncDef(mod.Body[0])
	if !ok {
		t.Fatalf("body[0] is %s", tree.Kind(mod.Body[0]))
	}
	block, _ := tree.IndentedBlock(fd.Body)
	if len(block.Footer) != 3 {
		t.Errorf("block footer has %d lines, want 3", len(block.Footer))
	}
	st, _ := tree.SimpleStatement(mod.Body[1])
	if len(st.Leading) != 0 {
		t.Errorf("next statement has %d leading lines, want 0", len(st.Leading))
	}

	// An outdented comment belongs to the next statement instead.
	tree = mustParse(t, "def f():\n    pass\n# for x\nx = 1\n")
	mod, _ = tree.Module(tree.Root())
	fd, _ = tree.FuncDef(mod.Body[0])
	block, _ = tree.IndentedBlock(fd.Body)
	if len(block.Footer) != 0 {
		t.Errorf("block footer has %d lines, want 0", len(block.Footer))
	}
	st, _ = tree.SimpleStatement(mod.Body[1])
	if len(st.Leading) != 1 {
		t.Errorf("next statement has %d leading lines, want 1", len(st.Leading))
	}
}

func TestElseLeadingVersusBlockFooter(t *testing.T) {
	tree := mustParse(t, "if x:\n    pass\n    # still\nelse:\n    pass\n")
	mod, _ := tree.Module(tree.Root())
	f, _ := tree.If(mod.Body[0])
	block, _ := tree.IndentedBlock(f.Body)
	orelse, _ := tree.Else(f.Orelse)
	if len(block.Footer) != 1 || len(orelse.Leading) != 0 {
		t.Errorf("indented comment: footer %d leading %d, want 1/0",
			len(block.Footer), len(orelse.Leading))
	}

	tree = mustParse(t, "if x:\n    pass\n# mid\nelse:\n    pass\n")
	mod, _ = tree.Module(tree.Root())
	f, _ = tree.If(mod.Body[0])
	block, _ = tree.IndentedBlock(f.Body)
	orelse, _ = tree.Else(f.Orelse)
	if len(block.Footer) != 0 || len(orelse.Leading) != 1 {
		t.Errorf("outdented comment: footer %d leading %d, want 0/1",
			len(block.Footer), len(orelse.Leading))
	}
}

func TestIndentDetection(t *testing.T) {
	tree := mustParse(t, "if a:\n  pass\nif b:\n      pass\n")
	if got := tree.Config().Indent; got != "  " {
		t.Fatalf("document indent %q, want two spaces", got)
	}
	mod, _ := tree.Module(tree.Root())
	first, _ := tree.If(mod.Body[0])
	second, _ := tree.If(mod.Body[1])
	b1, _ := tree.IndentedBlock(first.Body)
	b2, _ := tree.IndentedBlock(second.Body)
	if b1.Indent != "" {
		t.Errorf("first block stores %q, the default should stay implicit", b1.Indent)
	}
	if b2.Indent != "      " {
		t.Errorf("second block stores %q, want six spaces", b2.Indent)
	}
}

func TestNewlineNormalization(t *testing.T) {
	tree := mustParse(t, "pass\r\nmixed = 1\n")
	mod, _ := tree.Module(tree.Root())
	first, _ := tree.SimpleStatement(mod.Body[0])
	second, _ := tree.SimpleStatement(mod.Body[1])
	tw1, _ := tree.TrailingWhitespace(first.Trailing)
	tw2, _ := tree.TrailingWhitespace(second.Trailing)
	if text, _ := tree.Text(tw1.Newline); text != "" {
		t.Errorf("default terminator stored as %q, want \"\"", text)
	}
	if text, _ := tree.Text(tw2.Newline); text != "\n" {
		t.Errorf("odd terminator stored as %q, want %q", text, "\n")
	}
}

func TestContinuationStringIsOneLeaf(t *testing.T) {
	tree := mustParse(t, "x = 'ab' \\\n    'cd'\n")
	mod, _ := tree.Module(tree.Root())
	st, _ := tree.SimpleStatement(mod.Body[0])
	assign, ok := tree.Assign(st.Body[0])
	if !ok {
		t.Fatalf("small statement is %s, want Assign", tree.Kind(st.Body[0]))
	}
	if kind := tree.Kind(assign.Value); kind != cst.KindString {
		t.Fatalf("value is %s, want String", kind)
	}
	text, _ := tree.Text(assign.Value)
	if text != "'ab' \\\n    'cd'" {
		t.Errorf("string leaf holds %q", text)
	}
}

func TestBareReturnKeepsTailWhitespace(t *testing.T) {
	tree := mustParse(t, "return  # nothing\n")
	mod, _ := tree.Module(tree.Root())
	st, _ := tree.SimpleStatement(mod.Body[0])
	ret, _ := tree.Return(st.Body[0])
	if ret.Value.IsValid() || ret.WhitespaceAfterReturn.IsValid() {
		t.Errorf("bare return should carry neither value nor whitespace")
	}
	tw, _ := tree.TrailingWhitespace(st.Trailing)
	if text, _ := tree.Text(tw.Whitespace); text != "  " {
		t.Errorf("tail whitespace is %q, want two spaces", text)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"if x\n    pass\n", `expected ":"`},
		{"if :\n    pass\n", "expected a condition"},
		{"else:\n    pass\n", "else without a matching if"},
		{"    pass\n", "unexpected indent"},
		{"if x:\npass\n", "expected an indented block"},
		{"1 = 2\n", "cannot assign to a literal"},
		{"'abc\n", "unterminated string"},
		{"'abc\\", "unterminated string"},
		{"x = \n", `expected a value after "="`},
		{"pass pass\n", "unexpected text after statement"},
		{"def f(:\n    pass\n", `expected ")"`},
		{"def pass():\n    pass\n", "expected a function name"},
		{"return def\n", `unexpected keyword "def"`},
	}
	for _, tt := range tests {
		tree, err := Text(tt.src)
		if err == nil {
			t.Errorf("Text(%q) succeeded, want an error", tt.src)
			continue
		}
		if tree != nil {
			t.Errorf("Text(%q) returned a tree alongside the error", tt.src)
		}
		list, ok := err.(ErrorList)
		if !ok {
			t.Errorf("Text(%q) error is %T, want ErrorList", tt.src, err)
			continue
		}
		if !strings.Contains(list[0].Msg, tt.msg) {
			t.Errorf("Text(%q) first error %q, want it to mention %q", tt.src, list[0].Msg, tt.msg)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	_, err := Text("pass\nif x\n    pass\n")
	list, ok := err.(ErrorList)
	if !ok || len(list) == 0 {
		t.Fatalf("expected an ErrorList, got %v", err)
	}
	if got := list[0].Pos; got.Line != 2 || got.Column != 4 {
		t.Errorf("error reported at %s, want 2:4", got)
	}
}

func TestErrorCap(t *testing.T) {
	src := strings.Repeat("if x\n", maxErrors+10)
	_, err := Text(src)
	list, ok := err.(ErrorList)
	if !ok {
		t.Fatalf("expected an ErrorList, got %v", err)
	}
	if len(list) > maxErrors {
		t.Errorf("collected %d errors, cap is %d", len(list), maxErrors)
	}
}

func TestParseBytesLatin1(t *testing.T) {
	raw := []byte("# -*- coding: latin-1 -*-\nx = '\xe9'\n")
	tree, err := Bytes(raw)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if got := tree.Config().Encoding; got != "latin-1" {
		t.Errorf("encoding %q, want latin-1", got)
	}
	text, err := render.Text(tree)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(text, "é") {
		t.Errorf("decoded text %q does not contain the decoded literal", text)
	}
	out, err := render.Bytes(tree)
	if err != nil {
		t.Fatalf("render.Bytes failed: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("byte round trip produced %q, want %q", out, raw)
	}
}

func TestParseBytesBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, "pass\n"...)
	tree, err := Bytes(raw)
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if got := tree.Config().Encoding; got != "utf-8-sig" {
		t.Errorf("encoding %q, want utf-8-sig", got)
	}
	out, err := render.Bytes(tree)
	if err != nil {
		t.Fatalf("render.Bytes failed: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("byte round trip produced %q, want %q", out, raw)
	}
}

func TestParseBytesBOMConflict(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, "# coding: latin-1\npass\n"...)
	if _, err := Bytes(raw); err == nil {
		t.Fatal("conflicting declaration accepted")
	}
}

func TestCodingDeclarationPlacement(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"# coding: latin-1\npass\n", "latin-1"},
		{"#!/usr/bin/env python\n# coding: latin-1\npass\n", "latin-1"},
		{"\n# coding: latin-1\npass\n", "latin-1"},
		// After a code line the declaration is just a comment.
		{"pass\n# coding: latin-1\n", "utf-8"},
		// Third line is too late.
		{"#\n#\n# coding: latin-1\npass\n", "utf-8"},
	}
	for _, tt := range tests {
		tree, err := Bytes([]byte(tt.src))
		if err != nil {
			t.Fatalf("Bytes(%q) failed: %v", tt.src, err)
		}
		if got := tree.Config().Encoding; got != tt.want {
			t.Errorf("Bytes(%q) encoding %q, want %q", tt.src, got, tt.want)
		}
	}
}
