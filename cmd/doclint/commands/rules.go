// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bartekus/doclint/internal/report"
	"github.com/bartekus/doclint/internal/rules"
)

// RuleListItem is one row of `doclint rules`.
type RuleListItem struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
}

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules and their effective severities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}

			reg := rules.Registry()
			list := make([]RuleListItem, 0, len(reg))
			for _, r := range reg {
				list = append(list, RuleListItem{ID: r.ID(), Severity: string(r.Severity(cfg))})
			}

			out := cmd.OutOrStdout()
			if format == report.FormatJSON {
				return writeJSON(out, map[string]any{"rules": list})
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.AppendHeader(table.Row{"Rule", "Severity"})
			for _, item := range list {
				tw.AppendRow(table.Row{item.ID, item.Severity})
			}
			tw.Render()
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
