package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/scanner"
)

// Deps contains the inputs shared by every rule of a run.
type Deps struct {
	DocsDir string
	// Files are the discovered markdown files, sorted slash paths relative to DocsDir.
	Files   []string
	Corpus  *markdown.Corpus
	Config  *config.Config
	Scanner *scanner.Scanner
	Logger  *zap.SugaredLogger
}

// Document returns the scanned document for rel, or the error that prevented reading it.
func (d *Deps) Document(rel string) (*markdown.Document, error) {
	doc, ok := d.Corpus.Get(rel)
	if !ok {
		return nil, fmt.Errorf("%s is not part of the checked files", rel)
	}
	if doc.Err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, doc.Err)
	}
	return doc, nil
}

// Rule is one independent check.
type Rule interface {
	// ID returns the canonical rule name (e.g. "brokenLinks").
	ID() string

	// Severity returns the configured severity. SeverityOff means the rule does not run.
	Severity(cfg *config.Config) config.Severity

	// Run executes the check. A returned error fails only this rule.
	Run(ctx context.Context, deps *Deps) ([]Issue, error)
}

// RunFunc is the body of a rule.
type RunFunc func(ctx context.Context, deps *Deps) ([]Issue, error)

// SeverityFunc selects a rule's severity from the config.
type SeverityFunc func(cfg *config.Config) config.Severity

type funcRule struct {
	id       string
	severity SeverityFunc
	run      RunFunc
}

// NewRule assembles a Rule from its name, severity selector and body.
func NewRule(id string, severity SeverityFunc, run RunFunc) Rule {
	return &funcRule{id: id, severity: severity, run: run}
}

func (r *funcRule) ID() string { return r.id }

func (r *funcRule) Severity(cfg *config.Config) config.Severity { return r.severity(cfg) }

func (r *funcRule) Run(ctx context.Context, deps *Deps) ([]Issue, error) { return r.run(ctx, deps) }
