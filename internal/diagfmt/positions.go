package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"birch/cst"
	"birch/meta"
	"birch/render"
)

type nodeOutput struct {
	Node  uint32      `json:"node"`
	Kind  string      `json:"kind"`
	Range *rangeValue `json:"range,omitempty"`
	Span  *spanValue  `json:"span,omitempty"`
	Value string      `json:"value,omitempty"`
	Text  string      `json:"text,omitempty"`
}

type rangeValue struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

type spanValue struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FormatPositionsPretty writes one line per recorded node: id, kind, the
// resolved metadata value, and a short source preview.
func FormatPositionsPretty(w io.Writer, tree *cst.Tree, table meta.Map, opts Options) error {
	kindColor := color.New(color.FgCyan)
	valueColor := color.New(color.FgYellow)
	if !opts.Color {
		kindColor.DisableColor()
		valueColor.DisableColor()
	}
	width := opts.previewWidth()
	for _, id := range table.Nodes() {
		v, _ := table.Lookup(id)
		// Pad before colorizing; escape sequences would break %-*s.
		kindCell := kindColor.Sprint(fmt.Sprintf("%-18s", tree.Kind(id)))
		valueCell := valueColor.Sprint(fmt.Sprintf("%-12v", v))
		fmt.Fprintf(w, "%4d  %s %s", id, kindCell, valueCell)
		if p := preview(tree, id, width); p != "" {
			fmt.Fprintf(w, "  %s", p)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatPositionsJSON writes the listing as a JSON array. Range and byte-span
// values get structured fields; anything else is stringified.
func FormatPositionsJSON(w io.Writer, tree *cst.Tree, table meta.Map) error {
	ids := table.Nodes()
	output := make([]nodeOutput, 0, len(ids))
	for _, id := range ids {
		entry := nodeOutput{
			Node: uint32(id),
			Kind: tree.Kind(id).String(),
		}
		v, _ := table.Lookup(id)
		switch v := v.(type) {
		case cst.CodeRange:
			entry.Range = &rangeValue{
				StartLine: v.Start.Line,
				StartCol:  v.Start.Column,
				EndLine:   v.End.Line,
				EndCol:    v.End.Column,
			}
		case cst.ByteSpan:
			entry.Span = &spanValue{Start: v.Start, End: v.End}
		default:
			entry.Value = fmt.Sprint(v)
		}
		if tree.Kind(id).IsLeaf() {
			entry.Text, _ = tree.Text(id)
		}
		output = append(output, entry)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// preview returns a one-line glimpse of a node's text, truncated to width
// cells. Leaves are quoted so whitespace and terminators stay visible.
func preview(tree *cst.Tree, id cst.NodeID, width int) string {
	if tree.Kind(id).IsLeaf() {
		text, _ := tree.Text(id)
		return runewidth.Truncate(fmt.Sprintf("%q", text), width, "...")
	}
	text, err := render.NodeText(tree, id)
	if err != nil {
		return ""
	}
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	return runewidth.Truncate(text, width, "...")
}
