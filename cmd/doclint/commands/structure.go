// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/doclint/cmd/doclint/internal/clierr"
	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/pkg/doclint"
)

func newStructureCmd(a *app) *cobra.Command {
	var numbering bool
	var output string
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Check folder layout, numbering and file naming only",
		Long: `Run the structure rules (folderStructure, folderNumbering, fileNaming, duplicateContent).
Unlike lint, an empty documentation tree is not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}

			res, err := doclint.LintStructure(cmd.Context(), structureConfig(cfg, numbering), doclint.Options{Logger: a.logger})
			if err != nil {
				return classify(err)
			}
			if err := a.present(cmd, res, format, output); err != nil {
				return err
			}
			if !res.Passed {
				return clierr.Newf(clierr.ExitLintFailed, "structure check failed: %d errors", res.Summary.Errors)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&numbering, "numbering", false, "also check folder numbering")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

// structureConfig derives the structure-only settings from cfg. Folder
// structure always runs, at error severity unless configured otherwise.
func structureConfig(cfg *config.Config, numbering bool) config.StructureConfig {
	sc := config.StructureConfig{
		DocsDir:          cfg.DocsDir,
		Include:          cfg.Include,
		Exclude:          cfg.Exclude,
		FolderStructure:  cfg.Rules.FolderStructure,
		FileNaming:       cfg.Rules.FileNaming,
		DuplicateContent: cfg.Rules.DuplicateContent,
	}
	if !sc.FolderStructure.Severity.Enabled() {
		sc.FolderStructure.Severity = config.SeverityError
	}
	if numbering {
		n := cfg.Rules.FolderNumbering
		if !n.Severity.Enabled() {
			n.Severity = config.SeverityWarn
		}
		sc.Numbering = &n
	}
	return sc
}
