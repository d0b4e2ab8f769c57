// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineCodeSpans(t *testing.T) {
	tests := []struct {
		name string
		line string
		want [][2]int
	}{
		{name: "none", line: "plain text", want: nil},
		{name: "single", line: "a `b` c", want: [][2]int{{2, 5}}},
		{name: "double run", line: "x ``a ` b`` y", want: [][2]int{{2, 11}}},
		{name: "unclosed", line: "a `b c", want: nil},
		{name: "two spans", line: "`a` and `b`", want: [][2]int{{0, 3}, {8, 11}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InlineCodeSpans(tt.line))
		})
	}
}

func TestInInlineCodeAndStrip(t *testing.T) {
	line := "see `TODO` here TODO"
	assert.True(t, InInlineCode(line, 5))
	assert.False(t, InInlineCode(line, 16))
	assert.Equal(t, "see        here TODO", StripInlineCode(line))
}

func TestParseHeading(t *testing.T) {
	level, text, ok := ParseHeading("## Design Notes ##")
	require.True(t, ok)
	assert.Equal(t, 2, level)
	assert.Equal(t, "Design Notes", text)

	_, text, ok = ParseHeading("# Using C#")
	require.True(t, ok)
	assert.Equal(t, "Using C#", text)

	_, text, ok = ParseHeading("### Trailing   ")
	require.True(t, ok)
	assert.Equal(t, "Trailing", text)

	_, _, ok = ParseHeading("#NoSpace")
	assert.False(t, ok)
	_, _, ok = ParseHeading("####### too deep")
	assert.False(t, ok)
}

func TestFencePrimitives(t *testing.T) {
	assert.True(t, IsFence("  ```go"))
	assert.Equal(t, "go", FenceLanguage("```go title"))
	assert.Equal(t, "", FenceLanguage("```"))
	assert.True(t, IsBareFence("```  "))
	assert.False(t, IsBareFence("````"))
	assert.True(t, IsTableLine(" | a | b |"))
	assert.False(t, IsTableLine("a | b"))
}

func TestScan(t *testing.T) {
	content := "# Title\r\n" +
		"See [b](./b.md) and ![img](x.png) and `[c](c.md)`.\n" +
		"```\n" +
		"## not a heading\n" +
		"[d](d.md)\n" +
		"```\n" +
		"### Deep\n" +
		"```go\n" +
		"unclosed"

	doc := Scan("a.md", content)

	require.Len(t, doc.Headings, 2)
	assert.Equal(t, Heading{Level: 1, Text: "Title", Line: 1}, doc.Headings[0])
	assert.Equal(t, Heading{Level: 3, Text: "Deep", Line: 7}, doc.Headings[1])

	require.Len(t, doc.Links, 1)
	assert.Equal(t, Link{Text: "b", Target: "./b.md", Line: 2}, doc.Links[0])

	require.Len(t, doc.Fences, 2)
	assert.Equal(t, Fence{StartLine: 3, EndLine: 6, Bare: true}, doc.Fences[0])
	assert.Equal(t, Fence{StartLine: 8, EndLine: 0, Language: "go"}, doc.Fences[1])

	assert.True(t, doc.InFence[3])
	assert.False(t, doc.InFence[6])

	h1, ok := doc.FirstH1()
	assert.True(t, ok)
	assert.Equal(t, "Title", h1)
	assert.Equal(t, 1, doc.CountHeadings(3))
}

func TestResolveMarkdownLink(t *testing.T) {
	tests := []struct {
		from, target string
		want         string
		ok           bool
	}{
		{"guide/a.md", "./b.md", "guide/b.md", true},
		{"guide/a.md", "../README.md#top", "README.md", true},
		{"guide/a.md", "/api/x.md", "api/x.md", true},
		{"a.md", "https://example.com/x.md", "", false},
		{"a.md", "mailto:me@example.com", "", false},
		{"a.md", "#section", "", false},
		{"a.md", "image.png", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveMarkdownLink(tt.from, tt.target)
		assert.Equal(t, tt.ok, ok, tt.target)
		assert.Equal(t, tt.want, got, tt.target)
	}
}

func TestLoadCorpus(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.md"), []byte("# B\n"), 0o644))

	c, err := LoadCorpus(context.Background(), root, []string{"a.md", "missing.md", "sub/b.md"})
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	docs := c.Documents()
	assert.Equal(t, "a.md", docs[0].Path)
	assert.Equal(t, "missing.md", docs[1].Path)
	assert.Error(t, docs[1].Err)
	assert.Equal(t, "sub/b.md", docs[2].Path)

	b, ok := c.Get("sub/b.md")
	require.True(t, ok)
	h, _ := b.FirstH1()
	assert.Equal(t, "B", h)
	assert.False(t, c.Has("nope.md"))
}

func TestLoadCorpus_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadCorpus(ctx, t.TempDir(), []string{"a.md"})
	assert.ErrorIs(t, err, context.Canceled)
}
