// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the directory a doclint run is anchored to.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bartekus/doclint/internal/config"
)

// ErrNotFound is returned when no marker exists in start or any parent.
var ErrNotFound = errors.New("project root not found")

// Markers returns the entries that identify a project root, in priority order.
func Markers() []string {
	return append(append([]string(nil), config.FileNames...), ".git")
}

// Find walks upward from start and returns the first directory holding a
// doclint config file or a .git entry.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		for _, m := range Markers() {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s", ErrNotFound, start)
		}
		dir = parent
	}
}

// FindOr returns Find(start), or the absolute form of start when no marker exists.
func FindOr(start string) (string, error) {
	root, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return filepath.Abs(start)
	}
	return root, err
}
