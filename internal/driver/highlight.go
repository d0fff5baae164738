// Package driver orchestrates highlighting over files and directories:
// loading, parallelism, caching, and diagnostics collection.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"shine/internal/diag"
	"shine/internal/hl"
	"shine/internal/observ"
	"shine/internal/sem"
	"shine/internal/source"
)

// Options tunes a driver run.
type Options struct {
	// Jobs caps worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds the per-file diagnostic bag.
	MaxDiagnostics int
	// Cache, when set, skips traversal for files whose content hash hits.
	Cache *DiskCache
	// SyntacticNameRefs is passed through to the highlighter.
	SyntacticNameRefs bool
	// Timings records per-file phases.
	Timings bool
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 256
	}
	return o.MaxDiagnostics
}

// FileResult is the highlighting outcome for one file. Set is the file set
// the result's spans resolve against; fixture injection adds virtual files to
// it, so each result owns its set.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Set       *source.FileSet
	Ranges    []hl.HighlightedRange
	Bag       *diag.Bag
	Timing    *observ.Report
	FromCache bool
	Err       error
}

// HighlightFile loads and highlights a single file.
func HighlightFile(path string, opts Options) (FileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return FileResult{Path: path, Set: fileSet, Err: err}, err
	}
	res := highlightOne(fileSet, id, path, opts)
	return res, res.Err
}

// HighlightDir loads every .rs file under dir and highlights them in
// parallel. Results come back in deterministic path order.
func HighlightDir(ctx context.Context, dir string, opts Options) ([]FileResult, error) {
	files, err := listRustFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(files)))

	// Each worker owns a FileSet of its own: highlighting may add virtual
	// fixture files, and the set is not safe for concurrent mutation.
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fileSet := source.NewFileSet()
			id, err := fileSet.Load(path)
			if err != nil {
				results[i] = FileResult{Path: path, Set: fileSet, Err: err}
				return nil
			}
			results[i] = highlightOne(fileSet, id, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func highlightOne(fileSet *source.FileSet, id source.FileID, path string, opts Options) FileResult {
	res := FileResult{Path: path, FileID: id, Set: fileSet}
	file := fileSet.Get(id)

	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(file.Hash, &payload); err == nil && ok {
			res.Ranges = DecodeRanges(payload.Ranges, id)
			res.FromCache = true
			return res
		}
	}

	bag := diag.NewBag(opts.maxDiagnostics())
	res.Bag = bag

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	model := sem.NewSyntacticModel(fileSet, diag.BagReporter{Bag: bag})
	ranges, err := hl.Run(model, id, nil, hl.Config{
		SyntacticNameRefs: opts.SyntacticNameRefs,
		Reporter:          diag.BagReporter{Bag: bag},
		Timer:             timer,
	})
	if err != nil {
		res.Err = err
		return res
	}
	res.Ranges = ranges
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}

	if opts.Cache != nil {
		payload := DiskPayload{
			Schema: diskCacheSchemaVersion,
			Path:   path,
			Ranges: EncodeRanges(ranges),
		}
		_ = opts.Cache.Put(file.Hash, &payload) // cache write failure is not a result failure
	}
	return res
}

// listRustFiles returns every .rs file under dir in sorted order.
func listRustFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".rs") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
