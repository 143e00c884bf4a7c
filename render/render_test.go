package render

import (
	"bytes"
	"errors"
	"testing"

	"birch/cst"
)

func passLine(tree *cst.Tree) cst.NodeID {
	return tree.NewSimpleStatement(cst.SimpleStatementData{Body: []cst.NodeID{tree.NewPass()}})
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *cst.Tree
		expected string
	}{
		{
			name: "simplest possible program",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{passLine(tree)}})
				return tree
			},
			expected: "pass\n",
		},
		{
			name: "default newline carriage return",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{
					Body:   []cst.NodeID{passLine(tree)},
					Config: cst.DocConfig{Newline: "\r"},
				})
				return tree
			},
			expected: "pass\r",
		},
		{
			name: "header and footer",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{
					Header: []cst.NodeID{tree.NewEmptyLine(cst.EmptyLineData{Comment: tree.NewComment("# header")})},
					Body:   []cst.NodeID{passLine(tree)},
					Footer: []cst.NodeID{tree.NewEmptyLine(cst.EmptyLineData{Comment: tree.NewComment("# footer")})},
				})
				return tree
			},
			expected: "# header\npass\n# footer\n",
		},
		{
			name: "suppressed trailing newline",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{
					Body:   []cst.NodeID{passLine(tree)},
					Config: cst.DocConfig{OmitTrailingNewline: true},
				})
				return tree
			},
			expected: "pass",
		},
		{
			name: "empty file",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{Config: cst.DocConfig{OmitTrailingNewline: true}})
				return tree
			},
			expected: "",
		},
		{
			name: "empty module still owns one newline",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{})
				return tree
			},
			expected: "\n",
		},
		{
			name: "file with only comments",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				tree.NewModule(cst.ModuleData{
					Header: []cst.NodeID{tree.NewEmptyLine(cst.EmptyLineData{Comment: tree.NewComment("# nothing to see here")})},
				})
				return tree
			},
			expected: "# nothing to see here\n",
		},
		{
			name: "explicit newline values win over the default",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				stmt := tree.NewSimpleStatement(cst.SimpleStatementData{
					Body:     []cst.NodeID{tree.NewPass()},
					Trailing: tree.NewTrailingWhitespace(cst.TrailingWhitespaceData{Newline: tree.NewNewline("\r\n")}),
				})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{stmt, passLine(tree)}})
				return tree
			},
			expected: "pass\r\npass\n",
		},
		{
			name: "trailing comment on a statement",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				stmt := tree.NewSimpleStatement(cst.SimpleStatementData{
					Body: []cst.NodeID{tree.NewPass()},
					Trailing: tree.NewTrailingWhitespace(cst.TrailingWhitespaceData{
						Whitespace: tree.NewSimpleWhitespace(" "),
						Comment:    tree.NewComment("# trailing"),
					}),
				})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{stmt}})
				return tree
			},
			expected: "pass # trailing\n",
		},
		{
			name: "if else block",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				orelse := tree.NewElse(cst.ElseData{
					Body: tree.NewIndentedBlock(cst.IndentedBlockData{
						Body: []cst.NodeID{tree.NewSimpleStatement(cst.SimpleStatementData{
							Body: []cst.NodeID{tree.NewReturn(cst.ReturnData{Value: tree.NewName("None")})},
						})},
					}),
				})
				ifStmt := tree.NewIf(cst.IfData{
					Test:   tree.NewName("flag"),
					Body:   tree.NewIndentedBlock(cst.IndentedBlockData{Body: []cst.NodeID{passLine(tree)}}),
					Orelse: orelse,
				})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{ifStmt}})
				return tree
			},
			expected: "if flag:\n    pass\nelse:\n    return None\n",
		},
		{
			name: "block with custom indent",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				ifStmt := tree.NewIf(cst.IfData{
					Test: tree.NewName("x"),
					Body: tree.NewIndentedBlock(cst.IndentedBlockData{Indent: "  ", Body: []cst.NodeID{passLine(tree)}}),
				})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{ifStmt}})
				return tree
			},
			expected: "if x:\n  pass\n",
		},
		{
			name: "function with block footer comment",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				def := tree.NewFuncDef(cst.FuncDefData{
					Name: tree.NewName("f"),
					Body: tree.NewIndentedBlock(cst.IndentedBlockData{
						Body:   []cst.NodeID{passLine(tree)},
						Footer: []cst.NodeID{tree.NewEmptyLine(cst.EmptyLineData{Indent: true, Comment: tree.NewComment("# done")})},
					}),
				})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{def}})
				return tree
			},
			expected: "def f():\n    pass\n    # done\n",
		},
		{
			name: "unindented empty line keeps its own whitespace",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				lead := tree.NewEmptyLine(cst.EmptyLineData{Whitespace: tree.NewSimpleWhitespace("  ")})
				def := tree.NewFuncDef(cst.FuncDefData{
					Name: tree.NewName("f"),
					Body: tree.NewIndentedBlock(cst.IndentedBlockData{
						Body: []cst.NodeID{tree.NewSimpleStatement(cst.SimpleStatementData{
							Leading: []cst.NodeID{lead},
							Body:    []cst.NodeID{tree.NewPass()},
						})},
					}),
				})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{def}})
				return tree
			},
			expected: "def f():\n  \n    pass\n",
		},
		{
			name: "assignment with custom spacing",
			build: func() *cst.Tree {
				tree := cst.NewTree(cst.Hints{})
				assign := tree.NewAssign(cst.AssignData{
					Target:                tree.NewName("x"),
					WhitespaceBeforeEqual: tree.NewSimpleWhitespace(""),
					WhitespaceAfterEqual:  tree.NewSimpleWhitespace("  "),
					Value:                 tree.NewInteger("42"),
				})
				stmt := tree.NewSimpleStatement(cst.SimpleStatementData{Body: []cst.NodeID{assign}})
				tree.NewModule(cst.ModuleData{Body: []cst.NodeID{stmt}})
				return tree
			},
			expected: "x=  42\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.build())
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNodeText(t *testing.T) {
	t.Run("newline leaf uses document default", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		tree.NewModule(cst.ModuleData{})
		nl := tree.NewNewline("")
		got, err := NodeText(tree, nl)
		if err != nil {
			t.Fatalf("NodeText() error = %v", err)
		}
		if got != "\n" {
			t.Errorf("NodeText() = %q, want %q", got, "\n")
		}
	})

	t.Run("newline leaf with crlf default", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		tree.NewModule(cst.ModuleData{Config: cst.DocConfig{Newline: "\r\n"}})
		nl := tree.NewNewline("")
		got, err := NodeText(tree, nl)
		if err != nil {
			t.Fatalf("NodeText() error = %v", err)
		}
		if got != "\r\n" {
			t.Errorf("NodeText() = %q, want %q", got, "\r\n")
		}
	})

	t.Run("trailing newline suppression does not apply to subtrees", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		stmt := passLine(tree)
		tree.NewModule(cst.ModuleData{
			Body:   []cst.NodeID{stmt},
			Config: cst.DocConfig{OmitTrailingNewline: true},
		})
		got, err := NodeText(tree, stmt)
		if err != nil {
			t.Fatalf("NodeText() error = %v", err)
		}
		if got != "pass\n" {
			t.Errorf("NodeText() = %q, want %q", got, "pass\n")
		}
	})

	t.Run("subtree honors document indent", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		def := tree.NewFuncDef(cst.FuncDefData{
			Name: tree.NewName("f"),
			Body: tree.NewIndentedBlock(cst.IndentedBlockData{Body: []cst.NodeID{passLine(tree)}}),
		})
		tree.NewModule(cst.ModuleData{Body: []cst.NodeID{def}, Config: cst.DocConfig{Indent: "\t"}})
		got, err := NodeText(tree, def)
		if err != nil {
			t.Fatalf("NodeText() error = %v", err)
		}
		if got != "def f():\n\tpass\n" {
			t.Errorf("NodeText() = %q, want %q", got, "def f():\n\tpass\n")
		}
	})

	t.Run("module subtree equals full render", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		mod := tree.NewModule(cst.ModuleData{
			Body:   []cst.NodeID{passLine(tree)},
			Config: cst.DocConfig{OmitTrailingNewline: true},
		})
		full, err := Text(tree)
		if err != nil {
			t.Fatalf("Text() error = %v", err)
		}
		sub, err := NodeText(tree, mod)
		if err != nil {
			t.Fatalf("NodeText() error = %v", err)
		}
		if full != sub {
			t.Errorf("NodeText(root) = %q, Text() = %q", sub, full)
		}
	})
}

func TestBytes(t *testing.T) {
	t.Run("utf-8 passthrough", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		tree.NewModule(cst.ModuleData{Body: []cst.NodeID{passLine(tree)}})
		got, err := Bytes(tree)
		if err != nil {
			t.Fatalf("Bytes() error = %v", err)
		}
		if !bytes.Equal(got, []byte("pass\n")) {
			t.Errorf("Bytes() = %q, want %q", got, "pass\n")
		}
	})

	t.Run("iso-8859-1", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		assign := tree.NewAssign(cst.AssignData{
			Target: tree.NewName("x"),
			Value:  tree.NewString("\"\u00e9\""),
		})
		stmt := tree.NewSimpleStatement(cst.SimpleStatementData{Body: []cst.NodeID{assign}})
		tree.NewModule(cst.ModuleData{
			Body:   []cst.NodeID{stmt},
			Config: cst.DocConfig{Encoding: "iso-8859-1"},
		})
		got, err := Bytes(tree)
		if err != nil {
			t.Fatalf("Bytes() error = %v", err)
		}
		expected := []byte{'x', ' ', '=', ' ', '"', 0xE9, '"', '\n'}
		if !bytes.Equal(got, expected) {
			t.Errorf("Bytes() = % x, want % x", got, expected)
		}
	})

	t.Run("unknown encoding", func(t *testing.T) {
		tree := cst.NewTree(cst.Hints{})
		tree.NewModule(cst.ModuleData{Config: cst.DocConfig{Encoding: "no-such-charset"}})
		if _, err := Bytes(tree); err == nil {
			t.Fatalf("Bytes() = nil error for unknown encoding")
		}
	})
}

func TestDecode(t *testing.T) {
	got, err := Decode([]byte{'x', ' ', '=', ' ', '"', 0xE9, '"'}, "latin-1")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "x = \"\u00e9\"" {
		t.Errorf("Decode() = %q", got)
	}
}

func TestRenderRejectsMalformed(t *testing.T) {
	tree := cst.NewTree(cst.Hints{})
	ifStmt := tree.NewIf(cst.IfData{
		Test: tree.NewName("x"),
		Body: tree.NewIndentedBlock(cst.IndentedBlockData{}), // no statements
	})
	tree.NewModule(cst.ModuleData{Body: []cst.NodeID{ifStmt}})

	_, err := Text(tree)
	if err == nil {
		t.Fatalf("Text() = nil error for empty indented block")
	}
	if !errors.Is(err, cst.ErrMalformedTree) {
		t.Errorf("error %v does not unwrap to ErrMalformedTree", err)
	}
}
