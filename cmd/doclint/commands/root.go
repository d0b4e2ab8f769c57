// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Doclint - documentation-quality linter for Markdown trees.
It scans documentation, enforces structural, naming and traceability conventions, and produces deterministic pass/fail reports.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bartekus/doclint/cmd/doclint/internal/clierr"
	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/logging"
	"github.com/bartekus/doclint/internal/projectroot"
	"github.com/bartekus/doclint/internal/report"
	"github.com/bartekus/doclint/pkg/doclint"
)

// Version is set at build time with -ldflags "-X .../commands.Version=...".
var Version = "0.0.0-dev"

// app holds state shared by every subcommand of one root command.
type app struct {
	v      *viper.Viper
	logger *zap.SugaredLogger
}

// NewRootCmd constructs the doclint root Cobra command.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: logging.Nop()}

	cmd := &cobra.Command{
		Use:           "doclint",
		Short:         "Doclint - documentation-quality linter",
		Long:          "Doclint checks a Markdown documentation tree for broken links, structure, naming and traceability problems.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.v.GetBool("verbose"))
			if err != nil {
				return clierr.Wrap(clierr.ExitFatal, "initializing logger", err)
			}
			a.logger = logger
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierr.Wrap(clierr.ExitUsage, c.CommandPath(), err)
	})

	pf := cmd.PersistentFlags()
	pf.String("config", "", "path to the config file (default: search the project root)")
	pf.String("docs-dir", "", "documentation directory (overrides docsDir from the config)")
	pf.String("format", "text", "output format: "+strings.Join(report.Formats(), ", "))
	pf.BoolP("verbose", "v", false, "enable verbose output")

	a.v.SetEnvPrefix("DOCLINT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"config", "docs-dir", "format", "verbose"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	cmd.AddCommand(
		newLintCmd(a),
		newStructureCmd(a),
		newFixCmd(a),
		newRulesCmd(a),
		newReportCmd(a),
		newInitCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number of doclint",
			Run: func(cmd *cobra.Command, args []string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "doclint version %s\n", Version)
			},
		},
	)
	return cmd
}

// root returns the project root for the current directory, falling back to it.
func (a *app) root() (string, error) {
	if p := a.v.GetString("config"); p != "" {
		return filepath.Abs(filepath.Dir(p))
	}
	return projectroot.FindOr(".")
}

// loadConfig resolves the effective configuration and its project root.
func (a *app) loadConfig() (*config.Config, string, error) {
	root, err := a.root()
	if err != nil {
		return nil, "", clierr.Wrap(clierr.ExitFatal, "locating project root", err)
	}

	var cfg *config.Config
	if p := a.v.GetString("config"); p != "" {
		cfg, err = config.FromFile(p)
		if err == nil && !filepath.IsAbs(cfg.DocsDir) {
			cfg.DocsDir = filepath.Join(root, cfg.DocsDir)
		}
	} else {
		var path string
		cfg, path, err = doclint.LoadConfig(root)
		if path != "" {
			a.logger.Debugw("config loaded", "path", path)
		}
	}
	if err != nil {
		return nil, root, clierr.Wrap(clierr.ExitUsage, "loading config", err)
	}

	if d := a.v.GetString("docs-dir"); d != "" {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, root, clierr.Wrap(clierr.ExitUsage, "resolving --docs-dir", err)
		}
		cfg.DocsDir = abs
	}
	return cfg, root, nil
}

func (a *app) format() (report.Format, error) {
	f, err := report.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return "", clierr.Wrap(clierr.ExitUsage, "invalid --format", err)
	}
	return f, nil
}

// classify attaches exit codes to library errors.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, doclint.ErrDocsDirNotFound), errors.Is(err, doclint.ErrNoMarkdownFiles):
		return clierr.Wrap(clierr.ExitFatal, "cannot lint", err)
	case errors.Is(err, doclint.ErrUnknownRule):
		return clierr.Wrap(clierr.ExitUsage, "invalid rule selection", err)
	default:
		var ec clierr.ExitCoder
		if errors.As(err, &ec) {
			return err
		}
		return clierr.Wrap(clierr.ExitFatal, "doclint", err)
	}
}

// colorFor reports whether output written to cmd should be styled.
func colorFor(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && report.ColorEnabled(f)
}
