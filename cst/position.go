package cst

import "fmt"

// Position is a point in rendered output. Line is 1-based; Column is 0-based
// and counted in runes, so a tab and a CJK glyph are both one column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes before o in the document.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// CodeRange is a half-open [Start, End) range of rendered output.
type CodeRange struct {
	Start Position
	End   Position
}

// RangeAt builds a CodeRange from bare coordinates.
func RangeAt(startLine, startCol, endLine, endCol int) CodeRange {
	return CodeRange{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

func (r CodeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Contains reports whether other lies fully inside r. A range contains
// itself.
func (r CodeRange) Contains(other CodeRange) bool {
	return !other.Start.Before(r.Start) && !r.End.Before(other.End)
}

// ByteSpan is a half-open [Start, End) byte range of rendered output.
type ByteSpan struct {
	Start int
	End   int
}

func (s ByteSpan) Len() int {
	return s.End - s.Start
}

func (s ByteSpan) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}
