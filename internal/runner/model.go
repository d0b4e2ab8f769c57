package runner

import "github.com/bartekus/doclint/internal/config"

// Issue is one finding reported by a rule. Line is 0 when the finding has no line.
type Issue struct {
	File       string               `json:"file"`
	Line       int                  `json:"line,omitempty"`
	Message    string               `json:"message"`
	Suggestion string               `json:"suggestion,omitempty"`
	Severity   config.IssueSeverity `json:"severity,omitempty"`
}

// RuleResult is the outcome of one rule in one run.
type RuleResult struct {
	Rule     string          `json:"rule"`
	Severity config.Severity `json:"severity"`
	Issues   []Issue         `json:"issues"`
	Passed   bool            `json:"passed"`
}

// NewRuleResult builds a result; Passed is derived from the issue count.
func NewRuleResult(rule string, sev config.Severity, issues []Issue) RuleResult {
	if issues == nil {
		issues = []Issue{}
	}
	return RuleResult{
		Rule:     rule,
		Severity: sev,
		Issues:   issues,
		Passed:   len(issues) == 0,
	}
}

// Summary holds report-wide counts.
// Errors and Warnings count issues of error- and warn-severity rules;
// Passed counts rule results without issues.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Passed   int `json:"passed"`
}

// LintResult is the report of one lint run.
type LintResult struct {
	FilesChecked int          `json:"filesChecked"`
	RuleResults  []RuleResult `json:"ruleResults"`
	Passed       bool         `json:"passed"`
	Summary      Summary      `json:"summary"`
}

// Aggregate computes the summary and the overall outcome. The run passes
// iff every error-severity result passed; warn results never fail it.
func Aggregate(filesChecked int, results []RuleResult) *LintResult {
	if results == nil {
		results = []RuleResult{}
	}
	res := &LintResult{
		FilesChecked: filesChecked,
		RuleResults:  results,
		Passed:       true,
	}
	for _, r := range results {
		switch r.Severity {
		case config.SeverityError:
			res.Summary.Errors += len(r.Issues)
			if !r.Passed {
				res.Passed = false
			}
		case config.SeverityWarn:
			res.Summary.Warnings += len(r.Issues)
		}
		if len(r.Issues) == 0 {
			res.Summary.Passed++
		}
	}
	return res
}

// Result returns the result for a rule, if it ran.
func (r *LintResult) Result(rule string) (RuleResult, bool) {
	for _, rr := range r.RuleResults {
		if rr.Rule == rule {
			return rr, true
		}
	}
	return RuleResult{}, false
}

// FailedRules lists the rules that reported issues, in run order.
func (r *LintResult) FailedRules() []string {
	var failed []string
	for _, rr := range r.RuleResults {
		if !rr.Passed {
			failed = append(failed, rr.Rule)
		}
	}
	return failed
}

// IssueCount returns the total number of issues in the report.
func (r *LintResult) IssueCount() int {
	n := 0
	for _, rr := range r.RuleResults {
		n += len(rr.Issues)
	}
	return n
}
