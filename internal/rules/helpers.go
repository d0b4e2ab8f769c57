package rules

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/runner"
	"github.com/bartekus/doclint/internal/scanner"
)

// documents returns the scanned documents of the run in file order.
// An unreadable file fails the calling rule.
func documents(ctx context.Context, deps *runner.Deps) ([]*markdown.Document, error) {
	docs := make([]*markdown.Document, 0, len(deps.Files))
	for _, f := range deps.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := deps.Document(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// filesMatching returns the files matched by any glob or substring entry.
func filesMatching(files, entries []string) []string {
	var out []string
	for _, f := range files {
		if matchesAnyEntry(entries, f) {
			out = append(out, f)
		}
	}
	return out
}

func matchesAnyEntry(entries []string, p string) bool {
	for _, e := range entries {
		if scanner.MatchIncludeEntry(e, p) {
			return true
		}
	}
	return false
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func docsPath(docsDir, rel string) string {
	return filepath.Join(docsDir, filepath.FromSlash(rel))
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func isReadme(rel string) bool {
	return strings.EqualFold(path.Base(rel), "README.md")
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
