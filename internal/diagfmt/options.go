// Package diagfmt renders parse problems, position listings, and tree
// outlines for the CLI. Library packages stay output-agnostic; everything
// that writes for humans or for `--format json` lives here.
package diagfmt

// Options configures human-readable output.
type Options struct {
	// Color enables ANSI escapes.
	Color bool
	// MaxProblems caps how many problems Errors reports per document.
	// Zero means no cap.
	MaxProblems int
	// PreviewWidth caps source previews, measured in terminal cells.
	// Zero picks a default.
	PreviewWidth int
}

const (
	defaultPreviewWidth = 48

	// tabStop is how excerpts expand tabs. Columns count runes, so the
	// caret math has to agree with whatever the excerpt prints.
	tabStop = 4
)

func (o Options) previewWidth() int {
	if o.PreviewWidth <= 0 {
		return defaultPreviewWidth
	}
	return o.PreviewWidth
}
