package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigNames are probed, in order, in the project root.
var DefaultConfigNames = []string{".cargo-readme.toml", ".cargo-readme.yaml", ".cargo-readme.yml"}

// FileConfig is the on-disk configuration. Booleans are pointers so an
// absent key leaves the default alone.
type FileConfig struct {
	Input            string `toml:"input" yaml:"input"`
	Output           string `toml:"output" yaml:"output"`
	Template         string `toml:"template" yaml:"template"`
	NoTitle          *bool  `toml:"no_title" yaml:"no_title"`
	NoLicense        *bool  `toml:"no_license" yaml:"no_license"`
	NoTemplate       *bool  `toml:"no_template" yaml:"no_template"`
	NoIndentHeadings *bool  `toml:"no_indent_headings" yaml:"no_indent_headings"`
	Verbose          *bool  `toml:"verbose" yaml:"verbose"`
}

// LoadFileConfig reads a TOML or YAML config file, chosen by extension.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the first default config file present in root,
// or "" if there is none.
func DefaultConfigPath(root string) string {
	for _, name := range DefaultConfigNames {
		p := filepath.Join(root, name)
		if FileExists(p) {
			return p
		}
	}
	return ""
}

// ApplyFileConfig applies file values that were not overridden by flags.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setString("output", fc.Output, &cfg.Output)
	s.setTemplate(fc.Template, fc.NoTemplate, cfg)

	s.setBool("no-title", fc.NoTitle, &cfg.NoTitle)
	s.setBool("no-license", fc.NoLicense, &cfg.NoLicense)
	s.setBool("no-indent-headings", fc.NoIndentHeadings, &cfg.NoIndentHeadings)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
}

// FileExists checks if a regular file exists at the given path.
func FileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
