package cst

// Tree owns the arenas all nodes of one document live in. Build it through
// the NewXxx constructors (or parse.Text) and treat it as read-only after
// the root module is in place.
type Tree struct {
	nodes *arena[Node]
	texts *arena[string]

	modules    *arena[ModuleData]
	emptyLines *arena[EmptyLineData]
	trailing   *arena[TrailingWhitespaceData]
	simples    *arena[SimpleStatementData]
	returns    *arena[ReturnData]
	exprs      *arena[ExprData]
	assigns    *arena[AssignData]
	ifs        *arena[IfData]
	elses      *arena[ElseData]
	funcDefs   *arena[FuncDefData]
	blocks     *arena[IndentedBlockData]

	root NodeID // first module allocated
}

// Hints presizes the arenas; zero values pick small defaults.
type Hints struct {
	Nodes uint
}

func NewTree(hints Hints) *Tree {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 6
	}
	n := hints.Nodes
	return &Tree{
		nodes:      newArena[Node](n),
		texts:      newArena[string](n / 2),
		modules:    newArena[ModuleData](1),
		emptyLines: newArena[EmptyLineData](n / 8),
		trailing:   newArena[TrailingWhitespaceData](n / 8),
		simples:    newArena[SimpleStatementData](n / 8),
		returns:    newArena[ReturnData](n / 16),
		exprs:      newArena[ExprData](n / 16),
		assigns:    newArena[AssignData](n / 16),
		ifs:        newArena[IfData](n / 16),
		elses:      newArena[ElseData](n / 16),
		funcDefs:   newArena[FuncDefData](n / 16),
		blocks:     newArena[IndentedBlockData](n / 16),
	}
}

func (t *Tree) newNode(kind Kind, payload payloadID) NodeID {
	return NodeID(t.nodes.allocate(Node{Kind: kind, payload: payload}))
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int {
	return int(t.nodes.len())
}

// Kind returns the kind of the node, or KindInvalid for a bad ID.
func (t *Tree) Kind(id NodeID) Kind {
	n := t.nodes.get(uint32(id))
	if n == nil {
		return KindInvalid
	}
	return n.Kind
}

// Root returns the module node, or NoNode if none was built yet.
func (t *Tree) Root() NodeID {
	return t.root
}

// Config returns the root module's document defaults, filled in.
func (t *Tree) Config() DocConfig {
	if m, ok := t.Module(t.root); ok {
		return m.Config.WithDefaults()
	}
	return DocConfig{}.WithDefaults()
}

// NewModule creates the document root. The first module allocated becomes
// Root; allocating a second one leaves the tree malformed, which Validate
// and rendering report.
func (t *Tree) NewModule(d ModuleData) NodeID {
	d.Header = append([]NodeID(nil), d.Header...)
	d.Body = append([]NodeID(nil), d.Body...)
	d.Footer = append([]NodeID(nil), d.Footer...)
	id := t.newNode(KindModule, payloadID(t.modules.allocate(d)))
	if !t.root.IsValid() {
		t.root = id
	}
	return id
}

// Module returns the module payload for the given node ID.
func (t *Tree) Module(id NodeID) (*ModuleData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindModule {
		return nil, false
	}
	return t.modules.get(uint32(n.payload)), true
}

func (t *Tree) newLeaf(kind Kind, text string) NodeID {
	return t.newNode(kind, payloadID(t.texts.allocate(text)))
}

// Text returns the literal text of a leaf node. For Newline leaves an empty
// string means "use the document default terminator".
func (t *Tree) Text(id NodeID) (string, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || !n.Kind.IsLeaf() {
		return "", false
	}
	s := t.texts.get(uint32(n.payload))
	if s == nil {
		return "", false
	}
	return *s, true
}

// NewComment creates a comment leaf; text must start with "#".
func (t *Tree) NewComment(text string) NodeID {
	return t.newLeaf(KindComment, text)
}

// NewNewline creates a line terminator leaf. Empty text means the document
// default.
func (t *Tree) NewNewline(text string) NodeID {
	return t.newLeaf(KindNewline, text)
}

// NewSimpleWhitespace creates a whitespace leaf; the text may contain
// backslash-newline continuations.
func (t *Tree) NewSimpleWhitespace(text string) NodeID {
	return t.newLeaf(KindSimpleWhitespace, text)
}

// NewName creates an identifier leaf.
func (t *Tree) NewName(text string) NodeID {
	return t.newLeaf(KindName, text)
}

// NewInteger creates an integer literal leaf.
func (t *Tree) NewInteger(text string) NodeID {
	return t.newLeaf(KindInteger, text)
}

// NewString creates a string literal leaf. The text keeps its quotes and any
// backslash-newline continuations between adjacent pieces.
func (t *Tree) NewString(text string) NodeID {
	return t.newLeaf(KindString, text)
}

// NewEmptyLine creates a decorative line. Zero-value fields fall back to an
// empty whitespace run, no comment, a default newline, and block indentation.
func (t *Tree) NewEmptyLine(d EmptyLineData) NodeID {
	if !d.Whitespace.IsValid() {
		d.Whitespace = t.NewSimpleWhitespace("")
	}
	if !d.Newline.IsValid() {
		d.Newline = t.NewNewline("")
	}
	return t.newNode(KindEmptyLine, payloadID(t.emptyLines.allocate(d)))
}

// EmptyLine returns the empty-line payload for the given node ID.
func (t *Tree) EmptyLine(id NodeID) (*EmptyLineData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindEmptyLine {
		return nil, false
	}
	return t.emptyLines.get(uint32(n.payload)), true
}

// NewTrailingWhitespace creates a statement-line tail. Zero-value fields fall
// back to an empty whitespace run, no comment, and a default newline.
func (t *Tree) NewTrailingWhitespace(d TrailingWhitespaceData) NodeID {
	if !d.Whitespace.IsValid() {
		d.Whitespace = t.NewSimpleWhitespace("")
	}
	if !d.Newline.IsValid() {
		d.Newline = t.NewNewline("")
	}
	return t.newNode(KindTrailingWhitespace, payloadID(t.trailing.allocate(d)))
}

// TrailingWhitespace returns the trailing-whitespace payload for the given node ID.
func (t *Tree) TrailingWhitespace(id NodeID) (*TrailingWhitespaceData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindTrailingWhitespace {
		return nil, false
	}
	return t.trailing.get(uint32(n.payload)), true
}

// NewSimpleStatement creates a statement line. A zero Trailing falls back to
// a bare default newline.
func (t *Tree) NewSimpleStatement(d SimpleStatementData) NodeID {
	d.Leading = append([]NodeID(nil), d.Leading...)
	d.Body = append([]NodeID(nil), d.Body...)
	if !d.Trailing.IsValid() {
		d.Trailing = t.NewTrailingWhitespace(TrailingWhitespaceData{})
	}
	return t.newNode(KindSimpleStatement, payloadID(t.simples.allocate(d)))
}

// SimpleStatement returns the statement-line payload for the given node ID.
func (t *Tree) SimpleStatement(id NodeID) (*SimpleStatementData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindSimpleStatement {
		return nil, false
	}
	return t.simples.get(uint32(n.payload)), true
}

// NewPass creates a pass statement.
func (t *Tree) NewPass() NodeID {
	return t.newNode(KindPass, noPayload)
}

// NewReturn creates a return statement. A valid value with no whitespace
// node gets a single space before it.
func (t *Tree) NewReturn(d ReturnData) NodeID {
	if d.Value.IsValid() && !d.WhitespaceAfterReturn.IsValid() {
		d.WhitespaceAfterReturn = t.NewSimpleWhitespace(" ")
	}
	return t.newNode(KindReturn, payloadID(t.returns.allocate(d)))
}

// Return returns the return payload for the given node ID.
func (t *Tree) Return(id NodeID) (*ReturnData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindReturn {
		return nil, false
	}
	return t.returns.get(uint32(n.payload)), true
}

// NewExpr creates an expression statement.
func (t *Tree) NewExpr(d ExprData) NodeID {
	return t.newNode(KindExpr, payloadID(t.exprs.allocate(d)))
}

// Expr returns the expression-statement payload for the given node ID.
func (t *Tree) Expr(id NodeID) (*ExprData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindExpr {
		return nil, false
	}
	return t.exprs.get(uint32(n.payload)), true
}

// NewAssign creates an assignment. Missing whitespace nodes default to a
// single space on both sides of "=".
func (t *Tree) NewAssign(d AssignData) NodeID {
	if !d.WhitespaceBeforeEqual.IsValid() {
		d.WhitespaceBeforeEqual = t.NewSimpleWhitespace(" ")
	}
	if !d.WhitespaceAfterEqual.IsValid() {
		d.WhitespaceAfterEqual = t.NewSimpleWhitespace(" ")
	}
	return t.newNode(KindAssign, payloadID(t.assigns.allocate(d)))
}

// Assign returns the assignment payload for the given node ID.
func (t *Tree) Assign(id NodeID) (*AssignData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindAssign {
		return nil, false
	}
	return t.assigns.get(uint32(n.payload)), true
}

// NewIf creates a conditional. A missing whitespace before the test defaults
// to a single space.
func (t *Tree) NewIf(d IfData) NodeID {
	d.Leading = append([]NodeID(nil), d.Leading...)
	if !d.WhitespaceBeforeTest.IsValid() {
		d.WhitespaceBeforeTest = t.NewSimpleWhitespace(" ")
	}
	if !d.WhitespaceAfterTest.IsValid() {
		d.WhitespaceAfterTest = t.NewSimpleWhitespace("")
	}
	return t.newNode(KindIf, payloadID(t.ifs.allocate(d)))
}

// If returns the conditional payload for the given node ID.
func (t *Tree) If(id NodeID) (*IfData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindIf {
		return nil, false
	}
	return t.ifs.get(uint32(n.payload)), true
}

// NewElse creates an else branch.
func (t *Tree) NewElse(d ElseData) NodeID {
	d.Leading = append([]NodeID(nil), d.Leading...)
	if !d.WhitespaceBeforeColon.IsValid() {
		d.WhitespaceBeforeColon = t.NewSimpleWhitespace("")
	}
	return t.newNode(KindElse, payloadID(t.elses.allocate(d)))
}

// Else returns the else payload for the given node ID.
func (t *Tree) Else(id NodeID) (*ElseData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindElse {
		return nil, false
	}
	return t.elses.get(uint32(n.payload)), true
}

// NewFuncDef creates a function definition. A missing whitespace after "def"
// defaults to a single space.
func (t *Tree) NewFuncDef(d FuncDefData) NodeID {
	d.Leading = append([]NodeID(nil), d.Leading...)
	if !d.WhitespaceAfterDef.IsValid() {
		d.WhitespaceAfterDef = t.NewSimpleWhitespace(" ")
	}
	if !d.WhitespaceAfterName.IsValid() {
		d.WhitespaceAfterName = t.NewSimpleWhitespace("")
	}
	if !d.WhitespaceBeforeColon.IsValid() {
		d.WhitespaceBeforeColon = t.NewSimpleWhitespace("")
	}
	return t.newNode(KindFuncDef, payloadID(t.funcDefs.allocate(d)))
}

// FuncDef returns the function-definition payload for the given node ID.
func (t *Tree) FuncDef(id NodeID) (*FuncDefData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindFuncDef {
		return nil, false
	}
	return t.funcDefs.get(uint32(n.payload)), true
}

// NewIndentedBlock creates a block suite. A zero Header falls back to a bare
// default newline; an empty Indent means the document default step.
func (t *Tree) NewIndentedBlock(d IndentedBlockData) NodeID {
	if !d.Header.IsValid() {
		d.Header = t.NewTrailingWhitespace(TrailingWhitespaceData{})
	}
	d.Body = append([]NodeID(nil), d.Body...)
	d.Footer = append([]NodeID(nil), d.Footer...)
	return t.newNode(KindIndentedBlock, payloadID(t.blocks.allocate(d)))
}

// IndentedBlock returns the block payload for the given node ID.
func (t *Tree) IndentedBlock(id NodeID) (*IndentedBlockData, bool) {
	n := t.nodes.get(uint32(id))
	if n == nil || n.Kind != KindIndentedBlock {
		return nil, false
	}
	return t.blocks.get(uint32(n.payload)), true
}
