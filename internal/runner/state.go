package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bartekus/doclint/internal/projection"
)

// LastRun is the summary of the last recorded run (<state-dir>/last-run.json).
type LastRun struct {
	Status       string   `json:"status"` // "pass" or "fail"
	Rules        []string `json:"rules"`  // Ordered list of rules run
	Failed       []string `json:"failed"` // Rules that reported issues
	FilesChecked int      `json:"filesChecked"`
	Summary      Summary  `json:"summary"`
}

// StateStore reads and writes the recorded report of the last run.
// The linter itself never writes state; callers record results explicitly.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .doclint/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

// Dir returns the store's base directory.
func (s *StateStore) Dir() string { return s.baseDir }

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

func (s *StateStore) rulesDir() string {
	return filepath.Join(s.baseDir, "rules")
}

func (s *StateStore) rulePath(rule string) string {
	return filepath.Join(s.rulesDir(), rule+".json")
}

// ReadLastRun loads the last run summary. It returns nil, nil when nothing was recorded.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	var last LastRun
	found, err := readJSON(s.lastRunPath(), &last)
	if err != nil || !found {
		return nil, err
	}
	return &last, nil
}

// ReadRule loads the recorded result of one rule. It returns nil, nil when absent.
func (s *StateStore) ReadRule(rule string) (*RuleResult, error) {
	var res RuleResult
	found, err := readJSON(s.rulePath(rule), &res)
	if err != nil || !found {
		return nil, err
	}
	return &res, nil
}

// Record replaces the stored state with res.
func (s *StateStore) Record(res *LintResult) error {
	if err := os.RemoveAll(s.rulesDir()); err != nil {
		return fmt.Errorf("clearing rule results: %w", err)
	}

	last := LastRun{
		Status:       "pass",
		Rules:        []string{},
		Failed:       []string{},
		FilesChecked: res.FilesChecked,
		Summary:      res.Summary,
	}
	if !res.Passed {
		last.Status = "fail"
	}

	for _, rr := range res.RuleResults {
		last.Rules = append(last.Rules, rr.Rule)
		if !rr.Passed {
			last.Failed = append(last.Failed, rr.Rule)
		}
		if err := writeJSON(s.rulePath(rr.Rule), rr); err != nil {
			return fmt.Errorf("writing result for %s: %w", rr.Rule, err)
		}
	}

	if err := writeJSON(s.lastRunPath(), last); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}
	return nil
}

// LoadResult rebuilds the last recorded report. It returns nil, nil when nothing was recorded.
func (s *StateStore) LoadResult() (*LintResult, error) {
	last, err := s.ReadLastRun()
	if err != nil || last == nil {
		return nil, err
	}

	results := make([]RuleResult, 0, len(last.Rules))
	for _, rule := range last.Rules {
		rr, err := s.ReadRule(rule)
		if err != nil {
			return nil, fmt.Errorf("reading result for %s: %w", rule, err)
		}
		if rr == nil {
			return nil, fmt.Errorf("recorded result for %s is missing", rule)
		}
		results = append(results, *rr)
	}
	return Aggregate(last.FilesChecked, results), nil
}

// LoadFailedRules returns the rules that reported issues in the last run.
func (s *StateStore) LoadFailedRules() ([]string, error) {
	last, err := s.ReadLastRun()
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	return last.Failed, nil
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return projection.AtomicWrite(path, append(data, '\n'))
}
