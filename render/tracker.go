package render

import (
	"birch/cst"
)

// Span is one recorded emission window: the line/column range plus the byte
// offsets of the same region in the rendered output.
type Span struct {
	Range cst.CodeRange
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
}

// Tracker receives span records while a tree renders. RecordSpan fires when
// a node finishes emitting and no record exists for it yet; the engine
// checks Span first, so the first write wins. RecordSyntacticSpan fires for
// statement-shaped nodes with the trimmed range (leading indentation and
// trailing whitespace excluded); implementations that only care about raw
// windows ignore it.
type Tracker interface {
	RecordSpan(id cst.NodeID, sp Span)
	RecordSyntacticSpan(id cst.NodeID, sp Span)
	Span(id cst.NodeID) (Span, bool)
}

// SpanTable collects one span per node. In syntactic mode (NewSpanTable) the
// trimmed record for statements replaces the raw window; NewInclusiveSpanTable
// keeps the whitespace-inclusive windows for every node instead.
type SpanTable struct {
	spans     map[cst.NodeID]Span
	syntactic bool
}

func NewSpanTable() *SpanTable {
	return &SpanTable{spans: make(map[cst.NodeID]Span), syntactic: true}
}

func NewInclusiveSpanTable() *SpanTable {
	return &SpanTable{spans: make(map[cst.NodeID]Span)}
}

func (t *SpanTable) RecordSpan(id cst.NodeID, sp Span) {
	t.spans[id] = sp
}

func (t *SpanTable) RecordSyntacticSpan(id cst.NodeID, sp Span) {
	if !t.syntactic {
		return
	}
	t.spans[id] = sp
}

func (t *SpanTable) Span(id cst.NodeID) (Span, bool) {
	sp, ok := t.spans[id]
	return sp, ok
}

func (t *SpanTable) Len() int {
	return len(t.spans)
}

// Spans exposes the collected records. The caller must not mutate the map.
func (t *SpanTable) Spans() map[cst.NodeID]Span {
	return t.spans
}
