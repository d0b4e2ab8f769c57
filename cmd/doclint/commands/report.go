package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/doclint/cmd/doclint/internal/clierr"
	"github.com/bartekus/doclint/internal/runner"
)

func newReportCmd(a *app) *cobra.Command {
	var stateDir string

	store := func() (*runner.StateStore, error) {
		root, err := a.root()
		if err != nil {
			return nil, clierr.Wrap(clierr.ExitFatal, "locating project root", err)
		}
		return runner.NewStateStore(resolveUnder(root, stateDir)), nil
	}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the last recorded lint run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			s, err := store()
			if err != nil {
				return err
			}
			res, err := s.LoadResult()
			if err != nil {
				return clierr.Wrap(clierr.ExitFatal, "reading run state", err)
			}
			if res == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No recorded run found.")
				return nil
			}
			return a.present(cmd, res, format, "")
		},
	}
	cmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultStateDir, "directory holding the recorded last run")

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear the recorded run state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			if err := s.Reset(); err != nil {
				return clierr.Wrap(clierr.ExitFatal, "clearing run state", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", s.Dir())
			return nil
		},
	})
	return cmd
}
