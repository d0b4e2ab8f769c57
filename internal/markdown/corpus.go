// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultReadConcurrency bounds parallel file reads in LoadCorpus.
const DefaultReadConcurrency = 8

// Corpus is an immutable snapshot of the scanned documents of one run.
type Corpus struct {
	Root  string
	order []string
	docs  map[string]*Document
}

// LoadCorpus reads and scans files (slash paths relative to root) concurrently.
// A file that cannot be read yields a Document with Err set; only context
// cancellation fails the whole load.
func LoadCorpus(ctx context.Context, root string, files []string) (*Corpus, error) {
	docs := make([]*Document, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultReadConcurrency)
	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				docs[i] = &Document{Path: rel, Err: err}
				return nil
			}
			docs[i] = Scan(rel, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewCorpus(root, docs...), nil
}

// NewCorpus builds a corpus from already-scanned documents, in the given order.
func NewCorpus(root string, docs ...*Document) *Corpus {
	c := &Corpus{Root: root, docs: make(map[string]*Document, len(docs))}
	for _, d := range docs {
		c.order = append(c.order, d.Path)
		c.docs[d.Path] = d
	}
	return c
}

// Get returns the document for a relative path.
func (c *Corpus) Get(rel string) (*Document, bool) {
	d, ok := c.docs[rel]
	return d, ok
}

// Has reports whether rel is part of the snapshot.
func (c *Corpus) Has(rel string) bool {
	_, ok := c.docs[rel]
	return ok
}

// Documents returns documents in discovery order.
func (c *Corpus) Documents() []*Document {
	out := make([]*Document, 0, len(c.order))
	for _, p := range c.order {
		out = append(out, c.docs[p])
	}
	return out
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.order) }
