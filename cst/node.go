package cst

// Node is the per-node header record. Kind selects the payload arena the
// payload index points into; leaves index the shared text arena instead.
type Node struct {
	Kind    Kind
	payload payloadID
}

// DocConfig carries the rendering defaults a document was parsed with (or
// should be generated with). The zero value means "\n" newlines, four-space
// indents, UTF-8 and a trailing newline.
type DocConfig struct {
	// Newline is the default line terminator. Empty means "\n".
	Newline string
	// Indent is the whitespace added per indentation level. Empty means
	// four spaces.
	Indent string
	// Encoding names the byte encoding of the document. Empty means
	// "utf-8".
	Encoding string
	// OmitTrailingNewline records that the source did not end with a line
	// terminator, so rendering must drop the final newline again.
	OmitTrailingNewline bool
}

const (
	defaultNewline  = "\n"
	defaultIndent   = "    "
	defaultEncoding = "utf-8"
)

// WithDefaults fills unset fields with the document defaults.
func (c DocConfig) WithDefaults() DocConfig {
	if c.Newline == "" {
		c.Newline = defaultNewline
	}
	if c.Indent == "" {
		c.Indent = defaultIndent
	}
	if c.Encoding == "" {
		c.Encoding = defaultEncoding
	}
	return c
}

// ModuleData is the payload of the tree root: decorative header and footer
// lines around the statement body, plus the document defaults.
type ModuleData struct {
	Header []NodeID // EmptyLine before the first statement
	Body   []NodeID // statements
	Footer []NodeID // EmptyLine after the last statement
	Config DocConfig
}

// EmptyLineData is a line carrying no statement: optional whitespace, an
// optional comment and its terminator. Indent asks rendering to emit the
// enclosing block's indentation first.
type EmptyLineData struct {
	Indent     bool
	Whitespace NodeID // SimpleWhitespace
	Comment    NodeID // Comment, NoNode when absent
	Newline    NodeID // Newline
}

// TrailingWhitespaceData is the tail of a statement line: whitespace, an
// optional comment, and the line terminator.
type TrailingWhitespaceData struct {
	Whitespace NodeID // SimpleWhitespace
	Comment    NodeID // Comment, NoNode when absent
	Newline    NodeID // Newline
}

// SimpleStatementData is one source line holding a small statement, plus the
// decorative lines directly above it.
type SimpleStatementData struct {
	Leading  []NodeID // EmptyLine
	Body     []NodeID // small statements (Pass, Return, Expr, Assign)
	Trailing NodeID   // TrailingWhitespace
}

// ReturnData is a return statement with an optional value.
type ReturnData struct {
	WhitespaceAfterReturn NodeID // SimpleWhitespace, NoNode when no value
	Value                 NodeID // expression, NoNode for a bare return
}

// ExprData is an expression evaluated for effect as its own statement.
type ExprData struct {
	Value NodeID
}

// AssignData is a single-target assignment with the whitespace around "=".
type AssignData struct {
	Target                NodeID // Name
	WhitespaceBeforeEqual NodeID // SimpleWhitespace
	WhitespaceAfterEqual  NodeID // SimpleWhitespace
	Value                 NodeID // expression
}

// IfData is a conditional with an optional else branch.
type IfData struct {
	Leading              []NodeID // EmptyLine
	WhitespaceBeforeTest NodeID   // SimpleWhitespace after the "if" keyword
	Test                 NodeID   // expression
	WhitespaceAfterTest  NodeID   // SimpleWhitespace before ":"
	Body                 NodeID   // IndentedBlock
	Orelse               NodeID   // Else, NoNode when absent
}

// ElseData is the else branch of a conditional.
type ElseData struct {
	Leading               []NodeID // EmptyLine
	WhitespaceBeforeColon NodeID   // SimpleWhitespace
	Body                  NodeID   // IndentedBlock
}

// FuncDefData is a parameterless function definition "def name():".
type FuncDefData struct {
	Leading               []NodeID // EmptyLine
	WhitespaceAfterDef    NodeID   // SimpleWhitespace between "def" and the name
	Name                  NodeID   // Name
	WhitespaceAfterName   NodeID   // SimpleWhitespace before "("
	WhitespaceBeforeColon NodeID   // SimpleWhitespace between ")" and ":"
	Body                  NodeID   // IndentedBlock
}

// IndentedBlockData is the indented suite of a compound statement. Header is
// the rest of the line introducing the block (after the colon). Indent is
// this block's own indentation step relative to its parent; empty means the
// document default. Footer holds comment lines that trail the suite at its
// indentation level.
type IndentedBlockData struct {
	Header NodeID // TrailingWhitespace
	Indent string
	Body   []NodeID // statements
	Footer []NodeID // EmptyLine
}
