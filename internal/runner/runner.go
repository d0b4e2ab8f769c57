package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/scanner"
	"github.com/bartekus/doclint/internal/telemetry"
)

// Precondition failures. They abort a run before any rule executes.
var (
	ErrDocsDirNotFound = errors.New("docs directory not found")
	ErrNoMarkdownFiles = errors.New("No markdown files found")
)

// RunOptions selects which enabled rules run.
// Skip wins over Only; an empty Only selects every enabled rule.
type RunOptions struct {
	Verbose bool
	Only    []string
	Skip    []string
}

// Selects reports whether a rule with the given name and severity runs.
func (o RunOptions) Selects(id string, sev config.Severity) bool {
	if !sev.Enabled() {
		return false
	}
	if slices.Contains(o.Skip, id) {
		return false
	}
	if len(o.Only) > 0 && !slices.Contains(o.Only, id) {
		return false
	}
	return true
}

// Linter runs an ordered set of rules over a documentation tree.
// A Linter holds no per-run state and may be used concurrently.
type Linter struct {
	rules  []Rule
	logger *zap.SugaredLogger
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger used for rule progress and failures.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(li *Linter) {
		if l != nil {
			li.logger = l
		}
	}
}

// NewLinter creates a linter running rules in the given order.
func NewLinter(rules []Rule, opts ...Option) *Linter {
	l := &Linter{
		rules:  rules,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Rules returns the registered rules in run order.
func (l *Linter) Rules() []Rule {
	return slices.Clone(l.rules)
}

// Has reports whether a rule with the given name is registered.
func (l *Linter) Has(id string) bool {
	return l.find(id) != nil
}

func (l *Linter) find(id string) Rule {
	for _, r := range l.rules {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// Lint discovers the markdown files of cfg.DocsDir and runs every selected rule.
// It fails only when the docs directory is missing or holds no matching files;
// a failing rule is reported as a result with a single "Rule error" issue.
func (l *Linter) Lint(ctx context.Context, cfg *config.Config, opts RunOptions) (res *LintResult, err error) {
	ctx, span := telemetry.StartLintSpan(ctx, "Lint", cfg.DocsDir)
	defer func() {
		if res != nil {
			telemetry.RecordRun(ctx, "Lint", res.Passed)
			telemetry.EndLintSpan(span, res.FilesChecked, res.Passed, nil)
			return
		}
		telemetry.EndLintSpan(span, 0, false, err)
	}()

	deps, err := l.prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(deps.Files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, cfg.DocsDir)
	}

	results := l.runAll(ctx, l.rules, deps, opts)
	return Aggregate(len(deps.Files), results), nil
}

// LintStructure runs the structure rules against sc. Folder numbering runs
// only when sc.Numbering is set. An empty tree is valid input here.
func (l *Linter) LintStructure(ctx context.Context, sc config.StructureConfig, opts RunOptions) (res *LintResult, err error) {
	ctx, span := telemetry.StartLintSpan(ctx, "LintStructure", sc.DocsDir)
	defer func() {
		if res != nil {
			telemetry.RecordRun(ctx, "LintStructure", res.Passed)
			telemetry.EndLintSpan(span, res.FilesChecked, res.Passed, nil)
			return
		}
		telemetry.EndLintSpan(span, 0, false, err)
	}()

	deps, err := l.prepare(ctx, sc.AsConfig())
	if err != nil {
		return nil, err
	}

	var subset []Rule
	for _, r := range l.rules {
		if slices.Contains(config.StructureRuleIDs, r.ID()) {
			subset = append(subset, r)
		}
	}
	results := l.runAll(ctx, subset, deps, opts)
	return Aggregate(len(deps.Files), results), nil
}

func (l *Linter) prepare(ctx context.Context, cfg *config.Config) (*Deps, error) {
	info, err := os.Stat(cfg.DocsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDocsDirNotFound, cfg.DocsDir)
	}

	s := scanner.New(cfg.DocsDir)
	files, err := s.Discover(ctx, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	corpus, err := markdown.LoadCorpus(ctx, cfg.DocsDir, files)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	l.logger.Debugw("discovered files", "docsDir", cfg.DocsDir, "count", len(files))
	return &Deps{
		DocsDir: cfg.DocsDir,
		Files:   files,
		Corpus:  corpus,
		Config:  cfg,
		Scanner: s,
		Logger:  l.logger,
	}, nil
}

// runAll executes the selected rules in order. It never stops early.
func (l *Linter) runAll(ctx context.Context, rules []Rule, deps *Deps, opts RunOptions) []RuleResult {
	results := []RuleResult{}
	for _, r := range rules {
		id := r.ID()
		sev := r.Severity(deps.Config)
		if !opts.Selects(id, sev) {
			l.logger.Debugw("rule skipped", "rule", id, "severity", sev)
			continue
		}
		res := l.runRule(ctx, r, id, sev, deps)
		if opts.Verbose {
			l.logger.Infow("rule finished", "rule", id, "issues", len(res.Issues))
		}
		results = append(results, res)
	}
	return results
}

func (l *Linter) runRule(ctx context.Context, r Rule, id string, sev config.Severity, deps *Deps) RuleResult {
	ctx, span := telemetry.StartRuleSpan(ctx, id, string(sev))
	start := time.Now()

	issues, err := safeRun(ctx, r, deps)
	if err != nil {
		l.logger.Warnw("rule failed", "rule", id, "error", err)
		issues = []Issue{{
			File:    deps.DocsDir,
			Message: "Rule error: " + err.Error(),
		}}
	}

	telemetry.RecordRule(ctx, id, string(sev), time.Since(start), len(issues), err != nil)
	telemetry.EndRuleSpan(span, len(issues), err)
	return NewRuleResult(id, sev, issues)
}

// safeRun converts a panic inside a rule into an error.
func safeRun(ctx context.Context, r Rule, deps *Deps) (issues []Issue, err error) {
	defer func() {
		if p := recover(); p != nil {
			issues = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.Run(ctx, deps)
}
