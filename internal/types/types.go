package types

import (
	"github.com/autorefactor/autorefactor/internal/jast"
)

// Change is one refactoring applied, or proposed, to a source file.
type Change struct {
	Rule     string
	Filename string
	Message  string
	Start    jast.Position
	End      jast.Position
	Before   string // source text of the edited region
	After    string // text that replaces it
}

// ConfigRule configures one rule. A rule missing from the configuration
// keeps its default.
type ConfigRule struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Off reports whether the rule is explicitly disabled.
func (r ConfigRule) Off() bool {
	return r.Enabled != nil && !*r.Enabled
}

// DefaultMaxPasses bounds the fixed-point iteration of a run.
const DefaultMaxPasses = 5

// Options is the immutable configuration of one run.
type Options struct {
	Rules map[string]ConfigRule `yaml:"rules,omitempty"`
	// LanguageLevel is the lowest Java version the code must keep compiling
	// with. Zero means the latest.
	LanguageLevel int `yaml:"language_level,omitempty"`
	// Features forces capabilities on or off regardless of LanguageLevel.
	Features map[string]bool `yaml:"features,omitempty"`
	Locale   string          `yaml:"locale,omitempty"`
	// Messages overrides change descriptions, by locale then rule name.
	Messages  map[string]map[string]string `yaml:"messages,omitempty"`
	Exclude   []string                     `yaml:"exclude,omitempty"`
	MaxPasses int                          `yaml:"max_passes,omitempty"`
}

// RuleEnabled reports whether the rule called name should run.
func (o *Options) RuleEnabled(name string) bool {
	if o == nil {
		return true
	}
	return !o.Rules[name].Off()
}

// Passes returns the pass limit, defaulted.
func (o *Options) Passes() int {
	if o == nil || o.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return o.MaxPasses
}

// Supports reports whether the capability may be used: forced by Features
// when configured there, else available from version minLevel on.
func (o *Options) Supports(capability string, minLevel int) bool {
	if o == nil {
		return true
	}
	if on, ok := o.Features[capability]; ok {
		return on
	}
	return o.LanguageLevel == 0 || o.LanguageLevel >= minLevel
}
