package lint

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extensions lists the file suffixes ListFiles picks up.
var Extensions = []string{".js", ".mjs", ".cjs", ".jsx", ".html", ".htm", ".xhtml"}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
}

// ListFiles возвращает отсортированный список файлов для линтинга в директории.
// Скрытые каталоги и node_modules пропускаются.
func ListFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasLintableExt(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

func hasLintableExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LintFiles runs inv over every request with at most jobs workers. Results keep
// the order of reqs. The returned error is non-nil only on cancellation.
func (inv *Invoker) LintFiles(ctx context.Context, reqs []Request, jobs int) ([]*Result, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, req := range reqs {
		emit(inv.Progress, Event{File: req.Path, Stage: StageRead, Status: StatusQueued})
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(reqs)))

	for i, req := range reqs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := inv.Lint(gctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
