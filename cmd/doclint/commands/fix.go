// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/doclint/internal/report"
	"github.com/bartekus/doclint/pkg/doclint"
)

func newFixCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Fix mechanical formatting problems in markdown files",
		Long: `Trim trailing whitespace, add the missing space after heading markers,
collapse long runs of blank lines and normalize the final newline. Fenced code is not changed.`,
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

			res, err := doclint.Fix(cmd.Context(), cfg, dryRun)
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if format == report.FormatJSON {
				return writeJSON(out, res)
			}
			verb, tail := "fixed", "changed"
			if dryRun {
				verb, tail = "would fix", "need fixes"
			}
			for _, c := range res.Changed {
				_, _ = fmt.Fprintf(out, "%s %s (%s)\n", verb, c.Path, strings.Join(c.Fixes, ", "))
			}
			_, _ = fmt.Fprintf(out, "%d of %d files %s\n", len(res.Changed), res.FilesChecked, tail)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	return cmd
}
