// SPDX-License-Identifier: AGPL-3.0-or-later

// Package doclint is the library entry point for linting documentation trees.
//
// A typical embedding loads the project configuration and lints it:
//
//	cfg, _, err := doclint.LoadConfig(".")
//	if err != nil {
//		return err
//	}
//	res, err := doclint.Lint(ctx, cfg, doclint.Options{})
package doclint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/fix"
	"github.com/bartekus/doclint/internal/rules"
	"github.com/bartekus/doclint/internal/runner"
	"github.com/bartekus/doclint/internal/scanner"
)

type (
	Config          = config.Config
	StructureConfig = config.StructureConfig
	Result          = runner.LintResult
	RuleResult      = runner.RuleResult
	Issue           = runner.Issue
	FixResult       = fix.Result
)

var (
	ErrDocsDirNotFound = runner.ErrDocsDirNotFound
	ErrNoMarkdownFiles = runner.ErrNoMarkdownFiles
	ErrUnknownRule     = errors.New("unknown rule")
)

// Options narrows a run. Verbose logs each finished rule at info level
// through Logger, which defaults to a no-op logger.
type Options struct {
	Only    []string
	Skip    []string
	Verbose bool
	Logger  *zap.SugaredLogger
}

func (o Options) runOptions() runner.RunOptions {
	return runner.RunOptions{Only: o.Only, Skip: o.Skip, Verbose: o.Verbose}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config { return config.Default() }

// DefaultStructure returns a structure-only configuration for docsDir.
func DefaultStructure(docsDir string) StructureConfig { return config.DefaultStructure(docsDir) }

// LoadConfig reads the config file in root, or returns defaults when none exists.
// A relative docsDir is resolved against root. The returned path is empty for defaults.
func LoadConfig(root string) (*Config, string, error) {
	cfg, path, err := config.Load(root)
	if err != nil {
		return nil, path, err
	}
	if !filepath.IsAbs(cfg.DocsDir) {
		cfg.DocsDir = filepath.Join(root, cfg.DocsDir)
	}
	return cfg, path, nil
}

// RuleIDs lists every rule in run order.
func RuleIDs() []string { return rules.IDs() }

// CheckRuleNames returns ErrUnknownRule naming every entry not in the registry.
func CheckRuleNames(names []string) error {
	known := rules.IDs()
	var unknown []string
	for _, n := range names {
		if !slices.Contains(known, n) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRule, strings.Join(unknown, ", "))
	}
	return nil
}

func newLinter(opts Options) *runner.Linter {
	return runner.NewLinter(rules.Registry(), runner.WithLogger(opts.Logger))
}

// Lint runs every enabled rule over cfg.DocsDir. Names in Only and Skip
// that match no rule select nothing; use CheckRuleNames to reject them.
func Lint(ctx context.Context, cfg *Config, opts Options) (*Result, error) {
	return newLinter(opts).Lint(ctx, cfg, opts.runOptions())
}

// LintStructure runs only the structure rules. An empty tree is allowed.
func LintStructure(ctx context.Context, sc StructureConfig, opts Options) (*Result, error) {
	return newLinter(opts).LintStructure(ctx, sc, opts.runOptions())
}

// Fix formats every markdown file selected by cfg. With dryRun nothing is written.
func Fix(ctx context.Context, cfg *Config, dryRun bool) (*FixResult, error) {
	if info, err := os.Stat(cfg.DocsDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDocsDirNotFound, cfg.DocsDir)
	}
	files, err := scanner.New(cfg.DocsDir).Discover(ctx, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return fix.Run(ctx, cfg.DocsDir, files, fix.Options{DryRun: dryRun})
}
