package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFiles(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		opts     FilterOptions
		expected []string
	}{
		{
			name:  "exclude node_modules",
			paths: []string{"a.md", "node_modules/bad.md", "guide/good.md"},
			opts: FilterOptions{
				ExcludeDirs: []string{"node_modules"},
			},
			expected: []string{"a.md", "guide/good.md"},
		},
		{
			name:  "segment matching only",
			paths: []string{"drafts_old/a.md", "mydrafts/b.md", "guide/drafts/c.md"},
			opts: FilterOptions{
				ExcludeDirs: []string{"drafts"},
			},
			expected: []string{"drafts_old/a.md", "mydrafts/b.md"},
		},
		{
			name:  "extension filter",
			paths: []string{"a.md", "b.png", "c.MD"},
			opts: FilterOptions{
				IncludeExtensions: []string{".md"},
			},
			expected: []string{"a.md", "c.MD"},
		},
		{
			name:  "globs and dedupe",
			paths: []string{"z.md", "a.md", "a.md", "archive/old.md", "archive/keep/x.md"},
			opts: FilterOptions{
				Include: []string{"**/*.md"},
				Exclude: []string{"archive/**"},
			},
			expected: []string{"a.md", "z.md"},
		},
		{
			name:     "empty input",
			paths:    nil,
			opts:     FilterOptions{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFiles(tt.paths, tt.opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.md", "a.md", true},
		{"**/*.md", "x/y/a.md", true},
		{"**/*.md", "a.txt", false},
		{"02-design/**/*.md", "02-design/a.md", true},
		{"02-design/**/*.md", "02-design/api/a.md", true},
		{"02-design/**/*.md", "03-development/a.md", false},
		{"**/node_modules/**", "node_modules/pkg/readme.md", true},
		{"**/node_modules/**", "x/node_modules/readme.md", true},
		{"CHANGELOG.md", "guide/CHANGELOG.md", true},
		{"guide/*.md", "guide/sub/a.md", false},
		{"./guide/*.md", "guide/a.md", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.path), "%s vs %s", tt.pattern, tt.path)
	}
}

func TestMatchIncludeEntry(t *testing.T) {
	assert.True(t, MatchIncludeEntry("02-design", "02-design/api.md"))
	assert.True(t, MatchIncludeEntry("02-design/**/*.md", "02-design/api.md"))
	assert.False(t, MatchIncludeEntry("03-development", "02-design/api.md"))
}

func TestGlobMatcher(t *testing.T) {
	m := NewGlobMatcher(nil, []string{"**/drafts/**"})
	assert.True(t, m.Match("a.md"))
	assert.False(t, m.Match("guide/drafts/a.md"))

	m = NewGlobMatcher([]string{"guide/**"}, nil)
	assert.True(t, m.Match("guide/a.md"))
	assert.False(t, m.Match("a.md"))
}

func TestScanner(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	writeFile(t, dir, "README.md")
	writeFile(t, dir, "guide/intro.md")
	writeFile(t, dir, "guide/logo.png")
	writeFile(t, dir, ".hidden/secret.md")
	writeFile(t, dir, "node_modules/pkg/readme.md")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "01-overview"), 0o755))

	s := New(dir)
	assert.Equal(t, dir, s.Root())

	t.Run("Files", func(t *testing.T) {
		files, err := s.Files(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"README.md", "guide/intro.md", "guide/logo.png"}, files)
	})

	t.Run("Discover", func(t *testing.T) {
		files, err := s.Discover(ctx, []string{"**/*.md"}, []string{"README.md"})
		require.NoError(t, err)
		assert.Equal(t, []string{"guide/intro.md"}, files)
	})

	t.Run("Dirs", func(t *testing.T) {
		dirs, err := s.Dirs(".")
		require.NoError(t, err)
		assert.Equal(t, []string{"01-overview", "guide", "node_modules"}, dirs)
	})

	t.Run("Cache", func(t *testing.T) {
		writeFile(t, dir, "late.md")
		files, err := s.Files(ctx)
		require.NoError(t, err)
		assert.NotContains(t, files, "late.md")
	})
}

func TestScanner_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).Files(context.Background())
	assert.Error(t, err)
}

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("# x\n"), 0o644))
}
