package meta

import (
	"birch/cst"
	"birch/render"
)

// Position maps every node to the cst.CodeRange of its syntactically
// significant text. Statement-shaped nodes are trimmed: leading indentation
// and empty lines, and the whitespace after the code, stay outside the
// range. This is the flavor editors and diagnostics want.
var Position = &Provider{
	Name: "position",
	Doc:  "line/column ranges, statements trimmed to their code",
	Run:  trackSpans(render.NewSpanTable, rangeOf),
}

// WhitespaceInclusivePosition maps every node to the cst.CodeRange of its
// raw emission window, surrounding whitespace included. Ancestor windows
// always contain descendant windows.
var WhitespaceInclusivePosition = &Provider{
	Name: "position/inclusive",
	Doc:  "line/column ranges of raw emission windows",
	Run:  trackSpans(render.NewInclusiveSpanTable, rangeOf),
}

// ByteSpan maps every node to the cst.ByteSpan of its text in the rendered
// output, trimmed the same way Position trims.
var ByteSpan = &Provider{
	Name: "bytespan",
	Doc:  "byte offsets in the rendered output",
	Run:  trackSpans(render.NewSpanTable, bytesOf),
}

func rangeOf(sp render.Span) any { return sp.Range }

func bytesOf(sp render.Span) any { return cst.ByteSpan{Start: sp.Start, End: sp.End} }

// trackSpans renders the tree through a span tracker and records the chosen
// projection of every collected span.
func trackSpans(table func() *render.SpanTable, value func(render.Span) any) func(*Pass) error {
	return func(p *Pass) error {
		t := table()
		if _, err := render.Run(p.Tree, render.Options{Tracker: t}); err != nil {
			return err
		}
		for id, sp := range t.Spans() {
			p.Record(id, value(sp))
		}
		return nil
	}
}
