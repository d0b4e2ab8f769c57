// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// RuleSample is the per-rule part of a Snapshot.
type RuleSample struct {
	Rule     string
	Severity string
	Issues   int
}

// Snapshot is the report data exported as Prometheus gauges.
type Snapshot struct {
	FilesChecked int
	Passed       bool
	Rules        []RuleSample
}

// NewRegistry builds a dedicated registry holding the gauges for s.
func NewRegistry(s Snapshot) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	files := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "doclint_files_checked",
		Help: "Markdown files checked by the last lint run",
	})
	passed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "doclint_passed",
		Help: "1 if the last lint run passed, 0 otherwise",
	})
	ruleIssues := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "doclint_rule_issues",
		Help: "Issues reported by each rule in the last lint run",
	}, []string{"rule", "severity"})

	for _, c := range []prometheus.Collector{files, passed, ruleIssues} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	files.Set(float64(s.FilesChecked))
	if s.Passed {
		passed.Set(1)
	}
	for _, r := range s.Rules {
		ruleIssues.WithLabelValues(r.Rule, r.Severity).Set(float64(r.Issues))
	}
	return reg, nil
}

// WriteTextfile writes s in the node_exporter textfile format.
func WriteTextfile(path string, s Snapshot) error {
	reg, err := NewRegistry(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
