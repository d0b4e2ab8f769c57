package rules

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/runner"
	"github.com/bartekus/doclint/internal/standards"
)

// StandardsDrift compares category folders byte for byte against the template tree.
type StandardsDrift struct{}

func NewStandardsDrift() runner.Rule { return &StandardsDrift{} }

func (r *StandardsDrift) ID() string { return config.RuleStandardsDrift }

func (r *StandardsDrift) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.StandardsDrift.Severity
}

func (r *StandardsDrift) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.StandardsDrift

	templateDir := rc.TemplateDir
	if templateDir != "" && !filepath.IsAbs(templateDir) {
		templateDir = filepath.Join(deps.DocsDir, templateDir)
	}
	fsys, err := standards.Open(templateDir)
	if err != nil {
		return nil, err
	}

	var issues []runner.Issue
	for _, category := range rc.Categories {
		files, err := standards.Files(fsys, category)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			rel := path.Join(category, f)
			want, err := fs.ReadFile(fsys, rel)
			if err != nil {
				return nil, err
			}
			got, err := os.ReadFile(docsPath(deps.DocsDir, rel))
			if os.IsNotExist(err) {
				issues = append(issues, runner.Issue{
					File:       rel,
					Message:    "Standards file missing: " + rel,
					Suggestion: "Run `doclint init --standards` to install the bundled standards",
				})
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", rel, err)
			}
			if !bytes.Equal(got, want) {
				issues = append(issues, runner.Issue{
					File:       rel,
					Message:    "Standards file differs from template",
					Suggestion: "Restore the template version or move local changes to a separate document",
				})
			}
		}
	}
	return issues, nil
}
