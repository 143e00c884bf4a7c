// Package driver runs the parse-render-resolve pipeline over files on disk
// for the CLI: single documents for the inspection commands, whole argument
// lists in parallel for check runs.
package driver

import (
	"errors"
	"fmt"
	"os"

	"birch/cst"
	"birch/parse"
)

// Document is one loaded source file. Either Tree or Errs is set, never
// both.
type Document struct {
	Path string
	Raw  []byte
	Text string // decoded text, what the parser saw
	Tree *cst.Tree
	Errs parse.ErrorList
}

// Load reads and parses one file. I/O failures and undecodable bytes come
// back as an error; syntax problems land in Errs with a nil Tree.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(path, raw)
}

// LoadBytes parses raw as the content of path.
func LoadBytes(path string, raw []byte) (*Document, error) {
	doc := &Document{Path: path, Raw: raw, Text: displayText(raw)}
	tree, err := parse.Bytes(raw)
	if err != nil {
		var errs parse.ErrorList
		if !errors.As(err, &errs) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		doc.Errs = errs
		return doc, nil
	}
	doc.Tree = tree
	return doc, nil
}

// displayText decodes raw for excerpt printing, falling back to a literal
// byte view when the declared encoding cannot be applied.
func displayText(raw []byte) string {
	if text, err := parse.Decode(raw); err == nil {
		return text
	}
	return string(raw)
}
