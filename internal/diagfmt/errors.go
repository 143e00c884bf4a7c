package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"birch/parse"
)

// FormatErrors writes the parse problems of one document in path:line:col
// form with a source excerpt and a caret under each. src is the decoded text
// the parser saw, not the raw file bytes.
func FormatErrors(w io.Writer, path, src string, errs parse.ErrorList, opts Options) {
	head := color.New(color.Bold)
	msg := color.New(color.FgRed, color.Bold)
	caret := color.New(color.FgRed, color.Bold)
	if !opts.Color {
		head.DisableColor()
		msg.DisableColor()
		caret.DisableColor()
	}

	lines := strings.Split(src, "\n")
	shown := len(errs)
	if opts.MaxProblems > 0 && shown > opts.MaxProblems {
		shown = opts.MaxProblems
	}
	for _, e := range errs[:shown] {
		fmt.Fprintf(w, "%s %s\n",
			head.Sprintf("%s:%d:%d:", path, e.Pos.Line, e.Pos.Column),
			msg.Sprint(e.Msg))
		if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
			continue
		}
		excerpt, col := expandTabs(strings.TrimSuffix(lines[e.Pos.Line-1], "\r"), e.Pos.Column)
		fmt.Fprintf(w, "    %s\n", excerpt)
		fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", col), caret.Sprint("^"))
	}
	if rest := len(errs) - shown; rest > 0 {
		fmt.Fprintf(w, "... and %d more problems\n", rest)
	}
}

// expandTabs rewrites line with tabs expanded to tabStop cells and returns
// the display column of the rune at index col. Columns are 0-based and
// counted in runes; display cells are what the caret line needs, so wide
// runes shift the caret by their printed width.
func expandTabs(line string, col int) (string, int) {
	var b strings.Builder
	width := 0
	target := -1
	idx := 0
	for _, r := range line {
		if idx == col {
			target = width
		}
		if r == '\t' {
			n := tabStop - width%tabStop
			b.WriteString(strings.Repeat(" ", n))
			width += n
		} else {
			b.WriteRune(r)
			width += runewidth.RuneWidth(r)
		}
		idx++
	}
	if target < 0 {
		// Column at or past end of line; point just after the last rune.
		target = width
	}
	return b.String(), target
}
