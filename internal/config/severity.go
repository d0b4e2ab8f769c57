// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is the coarse severity of a rule. SeverityOff means the rule does not run.
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ParseSeverity parses a rule severity. "warning" is accepted as an alias of "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return SeverityOff, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	default:
		return "", fmt.Errorf("invalid severity %q (want off, warn or error)", s)
	}
}

// Enabled reports whether a rule with this severity should run.
func (s Severity) Enabled() bool {
	return s != SeverityOff && s != ""
}

func (s *Severity) UnmarshalYAML(n *yaml.Node) error {
	var raw string
	if err := n.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: severity must be a string: %w", n.Line, err)
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*s = parsed
	return nil
}

// IssueSeverity is the optional fine-grained severity carried by a single issue.
type IssueSeverity string

const (
	IssueInfo  IssueSeverity = "info"
	IssueWarn  IssueSeverity = "warn"
	IssueError IssueSeverity = "error"
)

func (s *IssueSeverity) UnmarshalYAML(n *yaml.Node) error {
	var raw string
	if err := n.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: issue severity must be a string: %w", n.Line, err)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "info":
		*s = IssueInfo
	case "warn", "warning":
		*s = IssueWarn
	case "error":
		*s = IssueError
	default:
		return fmt.Errorf("line %d: invalid issue severity %q (want info, warn or error)", n.Line, raw)
	}
	return nil
}

// decodeSetting decodes a rule setting written either as a bare severity scalar
// or as a mapping with a severity field plus rule-specific parameters.
// into must be a pointer to a type without its own UnmarshalYAML.
func decodeSetting(n *yaml.Node, sev *Severity, into any) error {
	if n.Kind == yaml.ScalarNode {
		return sev.UnmarshalYAML(n)
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rule setting must be a severity or a mapping", n.Line)
	}
	return n.Decode(into)
}
