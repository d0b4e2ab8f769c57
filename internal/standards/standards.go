// SPDX-License-Identifier: AGPL-3.0-or-later

// Package standards bundles the reference standards documents that projects
// copy into their docs tree and that the standards drift check compares against.
package standards

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

//go:embed templates
var templates embed.FS

// FS returns the bundled template tree, rooted like a docs directory.
func FS() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open returns the bundled templates, or the tree at dir when dir is set.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return FS(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// Files lists the regular files under category in fsys as sorted slash paths
// relative to the category.
func Files(fsys fs.FS, category string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, category, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, _ := filepath.Rel(filepath.FromSlash(category), filepath.FromSlash(p))
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("template category %s: %w", category, err)
	}
	sort.Strings(files)
	return files, nil
}

// Install copies every bundled file under category into docsDir, skipping
// files that already exist unless overwrite is set. It returns the written paths.
func Install(docsDir, category string, overwrite bool) ([]string, error) {
	fsys := FS()
	files, err := Files(fsys, category)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, rel := range files {
		target := filepath.Join(docsDir, filepath.FromSlash(category), filepath.FromSlash(rel))
		if _, err := os.Stat(target); err == nil && !overwrite {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(category, rel))
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}
