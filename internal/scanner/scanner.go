// Package scanner discovers documentation files under a docs root.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Scanner provides access to the files under a documentation root.
type Scanner struct {
	root string

	mu        sync.Mutex
	fileCache []string
}

// New creates a new Scanner for the given root directory.
func New(root string) *Scanner {
	return &Scanner{root: root}
}

// Root returns the scanned directory.
func (s *Scanner) Root() string { return s.root }

// Files returns every regular file under the root as a sorted slash path,
// caching the result for the instance lifetime. Hidden directories and
// DefaultExcludeDirs are not descended into.
func (s *Scanner) Files(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fileCache != nil {
		return s.fileCache, nil
	}

	skip := make(map[string]bool)
	for _, d := range DefaultExcludeDirs() {
		skip[d] = true
	}

	files := []string{}
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && (strings.HasPrefix(d.Name(), ".") || skip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	sort.Strings(files)
	s.fileCache = files
	return s.fileCache, nil
}

// FilesFiltered returns files matching the filter options.
func (s *Scanner) FilesFiltered(ctx context.Context, opts FilterOptions) ([]string, error) {
	all, err := s.Files(ctx)
	if err != nil {
		return nil, err
	}
	return FilterFiles(all, opts), nil
}

// Discover returns .md files matching include and not matching exclude.
func (s *Scanner) Discover(ctx context.Context, include, exclude []string) ([]string, error) {
	return s.FilesFiltered(ctx, FilterOptions{
		IncludeExtensions: []string{".md"},
		Include:           include,
		Exclude:           exclude,
	})
}

// Dirs returns the names of the immediate child directories of rel (slash path
// relative to the root), sorted. Hidden directories are omitted.
func (s *Scanner) Dirs(rel string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
