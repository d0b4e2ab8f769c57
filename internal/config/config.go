// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Doclint - documentation-quality linter for Markdown trees.
It scans documentation, enforces structural, naming and traceability conventions, and produces deterministic pass/fail reports.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config models the doclint configuration file and its defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileNames are the config file names searched in a project root, in order.
var FileNames = []string{".doclint.yaml", ".doclint.yml", "doclint.yaml"}

// Config is the resolved configuration consumed by the linter.
type Config struct {
	DocsDir       string        `yaml:"docsDir" validate:"required"`
	Include       []string      `yaml:"include" validate:"min=1,dive,required"`
	Exclude       []string      `yaml:"exclude"`
	Rules         RulesConfig   `yaml:"rules"`
	Terminology   []TermMapping `yaml:"terminology" validate:"dive"`
	RequiredFiles []string      `yaml:"requiredFiles" validate:"dive,required"`
	I18n          *I18nConfig   `yaml:"i18n,omitempty"`
}

// TermMapping maps discouraged variants to a preferred term.
type TermMapping struct {
	Preferred string   `yaml:"preferred" validate:"required"`
	Variants  []string `yaml:"variants" validate:"min=1,dive,required"`
}

// I18nConfig describes the translation layout. Source documents live at the docs
// root; translations live under TranslationsFolder/<lang>/ mirroring the source paths.
type I18nConfig struct {
	SourceLanguage     string   `yaml:"sourceLanguage" validate:"required"`
	TargetLanguages    []string `yaml:"targetLanguages"`
	TranslationsFolder string   `yaml:"translationsFolder"`
	CheckSync          bool     `yaml:"checkSync"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints. Regular expressions are not compiled
// here: a bad pattern fails only the rule that uses it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config.%s failed %q validation (value %v)", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FromYAML overlays YAML onto the defaults and validates the result.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if cfg.I18n != nil && cfg.I18n.TranslationsFolder == "" {
		cfg.I18n.TranslationsFolder = DefaultTranslationsFolder
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the first config file present in root, or "" if none exists.
func Find(root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads the config found in root, falling back to defaults when none exists.
// The returned path is empty when defaults were used.
func Load(root string) (*Config, string, error) {
	path := Find(root)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := FromFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// StructureConfig drives the structure-only entry point.
// Numbering is optional; a nil value disables folder numbering checks.
type StructureConfig struct {
	DocsDir          string
	Include          []string
	Exclude          []string
	FolderStructure  FolderStructureRule
	Numbering        *FolderNumberingRule
	FileNaming       FileNamingRule
	DuplicateContent SeverityRule
}

// DefaultStructure returns a structure config using the canonical layout.
func DefaultStructure(docsDir string) StructureConfig {
	d := Default()
	fs := d.Rules.FolderStructure
	fs.Severity = SeverityError
	return StructureConfig{
		DocsDir:          docsDir,
		Include:          d.Include,
		Exclude:          d.Exclude,
		FolderStructure:  fs,
		FileNaming:       d.Rules.FileNaming,
		DuplicateContent: d.Rules.DuplicateContent,
	}
}

// AsConfig converts a structure config into a full config where every
// rule outside the structure subset is off.
func (s StructureConfig) AsConfig() *Config {
	cfg := Default()
	cfg.DocsDir = s.DocsDir
	if len(s.Include) > 0 {
		cfg.Include = s.Include
	}
	cfg.Exclude = s.Exclude
	cfg.RequiredFiles = nil
	cfg.Terminology = nil

	r := &cfg.Rules
	*r = allOff(*r)
	r.FolderStructure = s.FolderStructure
	r.FileNaming = s.FileNaming
	r.DuplicateContent = s.DuplicateContent
	if s.Numbering != nil {
		r.FolderNumbering = *s.Numbering
	}
	return cfg
}

func allOff(r RulesConfig) RulesConfig {
	for _, sev := range r.Severities() {
		*sev = SeverityOff
	}
	return r
}
