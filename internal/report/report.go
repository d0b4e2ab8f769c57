// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders lint results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/projection"
	"github.com/bartekus/doclint/internal/runner"
)

// Format selects a presenter.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatMarkdown)}
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(Formats(), ", "))
	}
}

// Options tunes the text presenter.
type Options struct {
	// Color enables terminal styling.
	Color bool
}

// ColorEnabled reports whether output to f should be styled.
// NO_COLOR disables styling regardless of the terminal.
func ColorEnabled(f *os.File) bool {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write renders res in the given format.
func Write(w io.Writer, res *runner.LintResult, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(res))
		return err
	default:
		return Text(w, res, opts)
	}
}

// JSON writes the result as indented JSON. Output is byte-identical for equal results.
func JSON(w io.Writer, res *runner.LintResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

var (
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Bold(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	styleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleTitle = lipgloss.NewStyle().Bold(true)
)

type painter struct{ color bool }

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Text writes a summary table followed by the issues of every failed rule.
func Text(w io.Writer, res *runner.LintResult, opts Options) error {
	p := painter{color: opts.Color}
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d files checked\n\n", p.paint(styleTitle, "doclint:"), res.FilesChecked)

	if len(res.RuleResults) > 0 {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Rule", "Severity", "Issues", "Status"})
		for _, rr := range res.RuleResults {
			tw.AppendRow(table.Row{rr.Rule, string(rr.Severity), len(rr.Issues), p.status(rr)})
		}
		b.WriteString(tw.Render())
		b.WriteString("\n")
	}

	for _, rr := range res.RuleResults {
		if rr.Passed {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", p.paint(styleTitle, fmt.Sprintf("%s (%s)", rr.Rule, rr.Severity)))
		for _, is := range rr.Issues {
			fmt.Fprintf(&b, "  %s  %s%s\n", p.paint(styleMuted, Location(is)), severityTag(is), is.Message)
			if is.Suggestion != "" {
				fmt.Fprintf(&b, "      %s %s\n", p.paint(styleMuted, "suggestion:"), is.Suggestion)
			}
		}
	}

	verdict := p.paint(styleOK, "PASSED")
	if !res.Passed {
		verdict = p.paint(styleError, "FAILED")
	}
	fmt.Fprintf(&b, "\n%s: %d errors, %d warnings, %d rules passed\n",
		verdict, res.Summary.Errors, res.Summary.Warnings, res.Summary.Passed)

	_, err := io.WriteString(w, b.String())
	return err
}

func (p painter) status(rr runner.RuleResult) string {
	switch {
	case rr.Passed:
		return p.paint(styleOK, "pass")
	case rr.Severity == config.SeverityError:
		return p.paint(styleError, "fail")
	default:
		return p.paint(styleWarn, "warn")
	}
}

// Location formats an issue position as file or file:line.
func Location(is runner.Issue) string {
	if is.Line > 0 {
		return is.File + ":" + strconv.Itoa(is.Line)
	}
	return is.File
}

func severityTag(is runner.Issue) string {
	if is.Severity == "" {
		return ""
	}
	return "[" + string(is.Severity) + "] "
}

// Markdown renders the result as a Markdown document.
func Markdown(res *runner.LintResult) string {
	var b strings.Builder

	b.WriteString(projection.RenderHeader(1, "Documentation Lint Report"))
	status := "PASSED"
	if !res.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "**Status:** %s\n\n", status)
	b.WriteString(projection.RenderTable(
		[]string{"Files checked", "Errors", "Warnings", "Rules passed"},
		[][]string{{
			strconv.Itoa(res.FilesChecked),
			strconv.Itoa(res.Summary.Errors),
			strconv.Itoa(res.Summary.Warnings),
			strconv.Itoa(res.Summary.Passed),
		}},
	))

	if len(res.RuleResults) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(projection.RenderHeader(2, "Rules"))
	rows := make([][]string, 0, len(res.RuleResults))
	for _, rr := range res.RuleResults {
		st := "pass"
		if !rr.Passed {
			st = "fail"
			if rr.Severity != config.SeverityError {
				st = "warn"
			}
		}
		rows = append(rows, []string{rr.Rule, string(rr.Severity), strconv.Itoa(len(rr.Issues)), st})
	}
	b.WriteString(projection.RenderTable([]string{"Rule", "Severity", "Issues", "Status"}, rows))

	for _, rr := range res.RuleResults {
		if rr.Passed {
			continue
		}
		b.WriteString("\n")
		b.WriteString(projection.RenderHeader(2, rr.Rule))
		items := make([]string, 0, len(rr.Issues))
		for _, is := range rr.Issues {
			item := fmt.Sprintf("`%s` %s%s", Location(is), severityTag(is), is.Message)
			if is.Suggestion != "" {
				item += " (" + is.Suggestion + ")"
			}
			items = append(items, item)
		}
		b.WriteString(projection.RenderList(items))
	}
	return b.String()
}
