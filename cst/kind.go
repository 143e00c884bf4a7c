package cst

// Kind discriminates the payload stored for a node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule
	KindEmptyLine
	KindComment
	KindNewline
	KindSimpleWhitespace
	KindTrailingWhitespace
	KindSimpleStatement
	KindPass
	KindReturn
	KindExpr
	KindAssign
	KindName
	KindInteger
	KindString
	KindIf
	KindElse
	KindFuncDef
	KindIndentedBlock
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindEmptyLine:
		return "EmptyLine"
	case KindComment:
		return "Comment"
	case KindNewline:
		return "Newline"
	case KindSimpleWhitespace:
		return "SimpleWhitespace"
	case KindTrailingWhitespace:
		return "TrailingWhitespace"
	case KindSimpleStatement:
		return "SimpleStatement"
	case KindPass:
		return "Pass"
	case KindReturn:
		return "Return"
	case KindExpr:
		return "Expr"
	case KindAssign:
		return "Assign"
	case KindName:
		return "Name"
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindIf:
		return "If"
	case KindElse:
		return "Else"
	case KindFuncDef:
		return "FuncDef"
	case KindIndentedBlock:
		return "IndentedBlock"
	default:
		return "Invalid"
	}
}

// IsLeaf reports whether nodes of this kind carry literal text and no
// children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindComment, KindNewline, KindSimpleWhitespace, KindName, KindInteger, KindString:
		return true
	default:
		return false
	}
}

// IsStatement reports whether nodes of this kind occupy whole source lines
// and get the trimmed "syntactic" position treatment.
func (k Kind) IsStatement() bool {
	switch k {
	case KindSimpleStatement, KindIf, KindElse, KindFuncDef:
		return true
	default:
		return false
	}
}
