package commands

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bartekus/doclint/cmd/doclint/internal/clierr"
	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/projection"
	"github.com/bartekus/doclint/internal/report"
	"github.com/bartekus/doclint/internal/runner"
	"github.com/bartekus/doclint/internal/telemetry"
	"github.com/bartekus/doclint/internal/watch"
	"github.com/bartekus/doclint/pkg/doclint"
)

const defaultStateDir = ".doclint/run"

type lintFlags struct {
	only        []string
	skip        []string
	output      string
	metricsFile string
	stateDir    string
	rerunFailed bool
	watch       bool
}

func newLintCmd(a *app) *cobra.Command {
	var f lintFlags
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Lint the documentation tree",
		Long: `Run every enabled rule over the documentation tree and report the issues.
The command exits 1 when an error-severity rule reports issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := a.loadConfig()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}
			if err := doclint.CheckRuleNames(f.only); err != nil {
				return classify(err)
			}
			if err := doclint.CheckRuleNames(f.skip); err != nil {
				return classify(err)
			}

			store := runner.NewStateStore(resolveUnder(root, f.stateDir))
			opts := doclint.Options{Only: f.only, Skip: f.skip, Verbose: a.v.GetBool("verbose"), Logger: a.logger}
			if f.rerunFailed {
				failed, err := store.LoadFailedRules()
				if err != nil {
					return clierr.Wrap(clierr.ExitFatal, "reading last run", err)
				}
				if len(failed) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No failed rules in the last run.")
					return nil
				}
				opts.Only = failed
			}

			once := func(ctx context.Context) error {
				return a.lintOnce(ctx, cmd, cfg, opts, format, store, f)
			}
			if !f.watch {
				return once(cmd.Context())
			}

			_ = once(cmd.Context())
			return watch.Run(cmd.Context(), cfg.DocsDir, func(ctx context.Context, _ []string) error {
				// Failures are reported and the watch continues.
				if err := once(ctx); err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
				return nil
			}, watch.Options{Logger: a.logger})
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVar(&f.only, "only", nil, "run only these rules (comma separated)")
	fl.StringSliceVar(&f.skip, "skip", nil, "skip these rules (comma separated)")
	fl.StringVarP(&f.output, "output", "o", "", "write the report to a file instead of stdout")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	fl.StringVar(&f.stateDir, "state-dir", defaultStateDir, "directory for the recorded last run")
	fl.BoolVar(&f.rerunFailed, "rerun-failed", false, "run only the rules that failed in the last recorded run")
	fl.BoolVarP(&f.watch, "watch", "w", false, "re-lint whenever a file in the docs directory changes")
	return cmd
}

func (a *app) lintOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts doclint.Options, format report.Format, store *runner.StateStore, f lintFlags) error {
	res, err := doclint.Lint(ctx, cfg, opts)
	if err != nil {
		return classify(err)
	}

	if err := store.Record(res); err != nil {
		a.logger.Warnw("recording run state failed", "dir", store.Dir(), "error", err)
	}
	if f.metricsFile != "" {
		if err := telemetry.WriteTextfile(f.metricsFile, snapshot(res)); err != nil {
			return clierr.Wrap(clierr.ExitFatal, "writing metrics", err)
		}
	}
	if err := a.present(cmd, res, format, f.output); err != nil {
		return err
	}
	if !res.Passed {
		return clierr.Newf(clierr.ExitLintFailed, "documentation lint failed: %d errors, %d warnings", res.Summary.Errors, res.Summary.Warnings)
	}
	return nil
}

// present renders res to --output or to the command's stdout.
func (a *app) present(cmd *cobra.Command, res *runner.LintResult, format report.Format, output string) error {
	if output == "" {
		return report.Write(cmd.OutOrStdout(), res, format, report.Options{Color: colorFor(cmd)})
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, res, format, report.Options{}); err != nil {
		return err
	}
	if err := projection.AtomicWrite(output, buf.Bytes()); err != nil {
		return clierr.Wrap(clierr.ExitFatal, "writing report", err)
	}
	a.logger.Debugw("report written", "path", output)
	return nil
}

func snapshot(res *runner.LintResult) telemetry.Snapshot {
	s := telemetry.Snapshot{FilesChecked: res.FilesChecked, Passed: res.Passed}
	for _, rr := range res.RuleResults {
		s.Rules = append(s.Rules, telemetry.RuleSample{Rule: rr.Rule, Severity: string(rr.Severity), Issues: len(rr.Issues)})
	}
	return s
}

func resolveUnder(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
