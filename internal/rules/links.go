package rules

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/runner"
)

// BrokenLinks flags relative links to markdown files that do not exist.
type BrokenLinks struct{}

func NewBrokenLinks() runner.Rule { return &BrokenLinks{} }

func (r *BrokenLinks) ID() string { return config.RuleBrokenLinks }

func (r *BrokenLinks) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.BrokenLinks.Severity
}

func (r *BrokenLinks) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var issues []runner.Issue
	for _, doc := range docs {
		for _, link := range doc.Links {
			resolved, ok := markdown.ResolveMarkdownLink(doc.Path, link.Target)
			if !ok {
				continue
			}
			found, cached := seen[resolved]
			if !cached {
				found = exists(docsPath(deps.DocsDir, resolved))
				seen[resolved] = found
			}
			if found {
				continue
			}
			issues = append(issues, runner.Issue{
				File:       doc.Path,
				Line:       link.Line,
				Message:    "Broken link: " + link.Target,
				Suggestion: fmt.Sprintf("Check that %s exists or update the link", resolved),
			})
		}
	}
	return issues, nil
}

// linkGraph holds edges between checked documents. Self links are dropped.
type linkGraph struct {
	edges map[string]map[string]int // from -> to -> first line
}

func buildLinkGraph(corpus *markdown.Corpus, docs []*markdown.Document) *linkGraph {
	g := &linkGraph{edges: make(map[string]map[string]int)}
	for _, doc := range docs {
		for _, link := range doc.Links {
			to, ok := markdown.ResolveMarkdownLink(doc.Path, link.Target)
			if !ok || to == doc.Path || !corpus.Has(to) {
				continue
			}
			if g.edges[doc.Path] == nil {
				g.edges[doc.Path] = make(map[string]int)
			}
			if _, dup := g.edges[doc.Path][to]; !dup {
				g.edges[doc.Path][to] = link.Line
			}
		}
	}
	return g
}

func (g *linkGraph) has(from, to string) bool {
	_, ok := g.edges[from][to]
	return ok
}

func (g *linkGraph) targets(from string) []string {
	out := make([]string, 0, len(g.edges[from]))
	for to := range g.edges[from] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

func (g *linkGraph) referenced() map[string]bool {
	refs := make(map[string]bool)
	for _, tos := range g.edges {
		for to := range tos {
			refs[to] = true
		}
	}
	return refs
}

// OrphanDocuments flags documents no other checked document links to.
// README.md files are entry points and never orphans.
type OrphanDocuments struct{}

func NewOrphanDocuments() runner.Rule { return &OrphanDocuments{} }

func (r *OrphanDocuments) ID() string { return config.RuleOrphanDocuments }

func (r *OrphanDocuments) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.OrphanDocuments.Severity
}

func (r *OrphanDocuments) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}
	refs := buildLinkGraph(deps.Corpus, docs).referenced()
	exclude := deps.Config.Rules.OrphanDocuments.Exclude

	var issues []runner.Issue
	for _, f := range deps.Files {
		if refs[f] || isReadme(f) || matchesAnyEntry(exclude, f) {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       f,
			Message:    "Orphan document: not linked from any other document",
			Suggestion: "Link to it from a README or a related document, or remove it",
		})
	}
	return issues, nil
}

// BidirectionalRefs flags links between documents that are not reciprocated.
type BidirectionalRefs struct{}

func NewBidirectionalRefs() runner.Rule { return &BidirectionalRefs{} }

func (r *BidirectionalRefs) ID() string { return config.RuleBidirectionalRefs }

func (r *BidirectionalRefs) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.BidirectionalRefs.Severity
}

func (r *BidirectionalRefs) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}
	g := buildLinkGraph(deps.Corpus, docs)

	var issues []runner.Issue
	for _, from := range deps.Files {
		for _, to := range g.targets(from) {
			if g.has(to, from) {
				continue
			}
			issues = append(issues, runner.Issue{
				File:       from,
				Line:       g.edges[from][to],
				Message:    fmt.Sprintf("Link to %s is not reciprocated", to),
				Suggestion: fmt.Sprintf("Add a link back to %s in %s", relativeLink(to, from), to),
			})
		}
	}
	return issues, nil
}

// relativeLink returns the link target that reaches to from the document at from.
func relativeLink(from, to string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(from)), filepath.FromSlash(to))
	if err != nil {
		return to
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}
