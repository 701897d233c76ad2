package cliconfig

import (
	"errors"
	"fmt"
)

// DefaultTemplate is looked up in the project root when no template is given.
const DefaultTemplate = "README.tpl"

// Config holds the resolved CLI configuration.
type Config struct {
	ProjectRoot string
	Input       string
	Output      string
	Template    string

	NoTitle          bool
	NoLicense        bool
	NoTemplate       bool
	NoIndentHeadings bool

	Check   bool
	Watch   bool
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{}
}

// WritesStdout reports whether output goes to standard output.
func (c *Config) WritesStdout() bool {
	return c.Output == "" || c.Output == "-"
}

// Validate checks for option combinations that cannot be honoured.
func (c *Config) Validate() error {
	if c.Template != "" && c.NoTemplate {
		return errors.New("--template cannot be combined with --no-template")
	}
	if c.Check && c.Watch {
		return errors.New("--check cannot be combined with --watch")
	}
	if c.Check && c.WritesStdout() {
		return fmt.Errorf("--check requires --output")
	}
	if c.Watch && c.WritesStdout() {
		return fmt.Errorf("--watch requires --output")
	}
	return nil
}

// configSetter applies values while respecting flag precedence: a value is
// only applied if the corresponding flag was not set on the command line.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setTemplate applies template and no-template as one group. A flag for
// either one shields both, and a layer that picks a template turns off a
// lower layer's no-template (and the reverse). Both set in one layer is
// left for Validate to reject.
func (s *configSetter) setTemplate(tpl string, noTpl *bool, cfg *Config) {
	if s.changed["template"] || s.changed["no-template"] {
		return
	}
	if tpl != "" {
		cfg.Template = tpl
		cfg.NoTemplate = false
	}
	if noTpl != nil {
		cfg.NoTemplate = *noTpl
		if *noTpl && tpl == "" {
			cfg.Template = ""
		}
	}
}

// parseBool accepts "true" and "1" as true, anything else as false. An empty
// value is unset.
func parseBool(value string) *bool {
	if value == "" {
		return nil
	}
	b := value == "true" || value == "1"
	return &b
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	s.setBool(flag, parseBool(value), dst)
}
