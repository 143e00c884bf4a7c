package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"birch/cst"
	"birch/meta"
)

// FormatTree writes an indented outline of the whole document. ranges may be
// the zero Map, in which case nodes print without positions.
func FormatTree(w io.Writer, tree *cst.Tree, ranges meta.Map, opts Options) error {
	p := &outlinePrinter{
		w:         w,
		tree:      tree,
		ranges:    ranges,
		width:     opts.previewWidth(),
		kindColor: color.New(color.FgCyan),
		idColor:   color.New(color.Faint),
		posColor:  color.New(color.FgYellow),
	}
	if !opts.Color {
		p.kindColor.DisableColor()
		p.idColor.DisableColor()
		p.posColor.DisableColor()
	}
	cst.Walk(tree, tree.Root(), p)
	return nil
}

type outlinePrinter struct {
	w      io.Writer
	tree   *cst.Tree
	ranges meta.Map
	width  int
	depth  int

	kindColor *color.Color
	idColor   *color.Color
	posColor  *color.Color
}

func (p *outlinePrinter) OnVisit(id cst.NodeID) bool {
	fmt.Fprintf(p.w, "%s%s %s",
		strings.Repeat("  ", p.depth),
		p.kindColor.Sprint(p.tree.Kind(id)),
		p.idColor.Sprintf("#%d", id))
	if v, ok := p.ranges.Lookup(id); ok {
		fmt.Fprintf(p.w, " %s", p.posColor.Sprintf("%v", v))
	}
	if p.tree.Kind(id).IsLeaf() {
		text, _ := p.tree.Text(id)
		fmt.Fprintf(p.w, " %s", runewidth.Truncate(fmt.Sprintf("%q", text), p.width, "..."))
	}
	fmt.Fprintln(p.w)
	p.depth++
	return true
}

func (p *outlinePrinter) OnLeave(id cst.NodeID) {
	p.depth--
}

var _ cst.Observer = (*outlinePrinter)(nil)
