// Package finder discovers the source files a run covers.
package finder

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Finder is responsible for finding source files under a directory.
type Finder interface {
	// Find returns the paths under dir that match the include globs and
	// none of the exclude globs, sorted.
	Find(ctx context.Context, dir string) ([]string, error)
}

// DefaultFinder is the default implementation of Finder. Globs are
// doublestar patterns matched against slash-separated paths relative to the
// search root.
type DefaultFinder struct {
	fsys    afero.Fs
	include []string
	exclude []string
}

// NewDefaultFinder creates a new DefaultFinder over fsys.
func NewDefaultFinder(fsys afero.Fs, include, exclude []string) *DefaultFinder {
	return &DefaultFinder{fsys: fsys, include: include, exclude: exclude}
}

// Find implements Finder.
func (f *DefaultFinder) Find(ctx context.Context, dir string) ([]string, error) {
	var found []string
	walkErr := afero.Walk(f.fsys, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(f.include, rel) || matchesAny(f.exclude, rel) {
			return nil
		}
		found = append(found, path)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Errorf("walking %s: %w", dir, walkErr)
	}
	sort.Strings(found)
	return found, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
