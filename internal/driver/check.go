package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"birch/meta"
	"birch/parse"
	"birch/render"
)

// CheckOptions configures a check run.
type CheckOptions struct {
	// Jobs limits parallelism; 0 means one worker per CPU.
	Jobs int
	// Extensions lists the file suffixes collected from directories.
	// Empty means ".br" only.
	Extensions []string
	// Cache, when non-nil, short-circuits files whose digest already has a
	// stored position table.
	Cache *Cache
}

// CheckResult is the outcome for one file.
type CheckResult struct {
	Path   string
	Err    error           // I/O, encoding, or round-trip failure
	Errs   parse.ErrorList // syntax problems
	Text   string          // decoded source, set alongside Errs for excerpts
	Nodes  int             // nodes in the parsed tree
	Ranges int             // position entries computed or loaded
	Cached bool            // served from the cache without reparsing
}

// Ok reports whether the file checked clean.
func (r CheckResult) Ok() bool {
	return r.Err == nil && len(r.Errs) == 0
}

// CheckPaths parses every listed file, verifies it renders back to its exact
// source bytes, and resolves position metadata for it. Directories are
// walked for files with the configured extensions; explicit files are taken
// as given. Results come back in path order.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	files, err := collectSourceFiles(ctx, paths, opts.extensions())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("check: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, so the slice needs no mutex.
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = checkFile(path, opts.Cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (o CheckOptions) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{".br"}
	}
	return o.Extensions
}

func checkFile(path string, cache *Cache) CheckResult {
	res := CheckResult{Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	digest := DigestOf(raw)

	var table PositionTable
	if hit, err := cache.Get(digest, &table); err == nil && hit {
		res.Nodes = table.Nodes
		res.Ranges = len(table.Entries)
		res.Cached = true
		return res
	}

	doc, err := LoadBytes(path, raw)
	if err != nil {
		res.Err = err
		return res
	}
	if len(doc.Errs) > 0 {
		res.Errs = doc.Errs
		res.Text = doc.Text
		return res
	}

	rendered, err := render.Bytes(doc.Tree)
	if err != nil {
		res.Err = err
		return res
	}
	if !bytes.Equal(rendered, raw) {
		res.Err = fmt.Errorf("%s: rendered output differs from the source", path)
		return res
	}

	positions, err := meta.NewWrapper(doc.Tree).Resolve(meta.Position)
	if err != nil {
		res.Err = err
		return res
	}
	res.Nodes = doc.Tree.Len()
	res.Ranges = positions.Len()

	// Cache write failures are not check failures.
	_ = cache.Put(digest, TableOf(positions, doc.Tree.Len()))
	return res
}

// collectSourceFiles expands the argument list: explicit files are taken as
// given, directories are walked for sources with the configured extensions.
// The result is deduplicated and sorted.
func collectSourceFiles(ctx context.Context, paths, extensions []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	hasExt := func(path string) bool {
		for _, ext := range extensions {
			if filepath.Ext(path) == ext {
				return true
			}
		}
		return false
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && hasExt(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
