// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bartekus/doclint/cmd/doclint/internal/clierr"
	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/projection"
	"github.com/bartekus/doclint/internal/standards"
)

type initAnswers struct {
	docsDir      string
	strictness   string
	traceability bool
	standards    bool
	languages    string
}

func newInitCmd(a *app) *cobra.Command {
	var interactive, force, withStandards bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a doclint config file to the current directory",
		Long: `Write .doclint.yaml with the default settings. With --interactive, answer a few
questions first. With --standards, also install the bundled standards documents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return clierr.Wrap(clierr.ExitFatal, "resolving working directory", err)
			}
			target := filepath.Join(wd, config.FileNames[0])
			if _, err := os.Stat(target); err == nil && !force {
				return clierr.Newf(clierr.ExitUsage, "config already exists: %s (use --force to overwrite)", target)
			}

			cfg := config.Default()
			ans := initAnswers{docsDir: cfg.DocsDir, strictness: "default", standards: withStandards}
			if d := a.v.GetString("docs-dir"); d != "" {
				ans.docsDir = d
			}
			if interactive {
				if err := askInit(cmd, &ans); err != nil {
					return clierr.Wrap(clierr.ExitUsage, "init form", err)
				}
			}
			applyAnswers(cfg, ans)
			if err := cfg.Validate(); err != nil {
				return clierr.Wrap(clierr.ExitUsage, "invalid answers", err)
			}

			data, err := cfg.Marshal()
			if err != nil {
				return clierr.Wrap(clierr.ExitFatal, "rendering config", err)
			}
			if err := projection.AtomicWrite(target, data); err != nil {
				return clierr.Wrap(clierr.ExitFatal, "writing config", err)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Wrote %s\n", target)

			if ans.standards {
				docsDir := resolveUnder(wd, cfg.DocsDir)
				for _, category := range cfg.Rules.StandardsDrift.Categories {
					written, err := standards.Install(docsDir, category, force)
					if err != nil {
						return clierr.Wrap(clierr.ExitFatal, "installing standards", err)
					}
					for _, p := range written {
						_, _ = fmt.Fprintf(out, "Installed %s\n", p)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "answer setup questions before writing the config")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config and standards files")
	cmd.Flags().BoolVar(&withStandards, "standards", false, "install the bundled standards documents and enable drift checks")
	return cmd
}

func askInit(cmd *cobra.Command, ans *initAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Documentation directory").
				Value(&ans.docsDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("directory is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Strictness").
				Options(
					huh.NewOption("Default (broken links and required files fail the run)", "default"),
					huh.NewOption("Strict (every enabled rule fails the run)", "strict"),
					huh.NewOption("Relaxed (nothing fails the run)", "relaxed"),
				).
				Value(&ans.strictness),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Check requirement to test case traceability?").
				Value(&ans.traceability),
			huh.NewConfirm().
				Title("Install the bundled standards documents?").
				Value(&ans.standards),
			huh.NewInput().
				Title("Translation languages (comma separated, empty for none)").
				Value(&ans.languages),
		),
	).WithInput(cmd.InOrStdin()).WithOutput(cmd.OutOrStdout())
	return form.Run()
}

// applyAnswers adjusts the default config to the init answers.
func applyAnswers(cfg *config.Config, ans initAnswers) {
	cfg.DocsDir = strings.TrimSpace(ans.docsDir)

	switch ans.strictness {
	case "strict":
		forEachSeverity(cfg, func(s *config.Severity) {
			if *s == config.SeverityWarn {
				*s = config.SeverityError
			}
		})
	case "relaxed":
		forEachSeverity(cfg, func(s *config.Severity) {
			if *s == config.SeverityError {
				*s = config.SeverityWarn
			}
		})
	}

	if ans.traceability {
		cfg.Rules.RequirementTestMapping.Severity = config.SeverityWarn
	}
	if ans.standards {
		cfg.Rules.StandardsDrift.Severity = config.SeverityWarn
	}

	var langs []string
	for _, l := range strings.Split(ans.languages, ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) > 0 {
		cfg.I18n = &config.I18nConfig{
			SourceLanguage:     "en",
			TargetLanguages:    langs,
			TranslationsFolder: config.DefaultTranslationsFolder,
			CheckSync:          true,
		}
	}
}

func forEachSeverity(cfg *config.Config, fn func(*config.Severity)) {
	for _, s := range cfg.Rules.Severities() {
		fn(s)
	}
}
