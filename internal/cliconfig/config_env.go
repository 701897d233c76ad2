package cliconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "CARGO_README_"

// Env is a set of environment values.
type Env map[string]string

// LoadEnv returns the process environment layered over the variables from a
// .env file in root, if one exists. Process values win.
func LoadEnv(root string) (Env, error) {
	env := Env{}
	dotenv := filepath.Join(root, ".env")
	vars, err := godotenv.Read(dotenv)
	switch {
	case err == nil:
		for k, v := range vars {
			env[k] = v
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("load %s: %w", dotenv, err)
	}
	for _, name := range envNames {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			env[EnvPrefix+name] = v
		}
	}
	return env, nil
}

var envNames = []string{
	"INPUT", "OUTPUT", "TEMPLATE",
	"NO_TITLE", "NO_LICENSE", "NO_TEMPLATE", "NO_INDENT_HEADINGS",
	"VERBOSE",
}

// Get returns the value of CARGO_README_<name>.
func (e Env) Get(name string) string {
	return e[EnvPrefix+name]
}

// ApplyEnvConfig applies CARGO_README_* values. They override the config
// file but not flags that were set explicitly.
func ApplyEnvConfig(cfg *Config, env Env, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("input", env.Get("INPUT"), &cfg.Input)
	s.setString("output", env.Get("OUTPUT"), &cfg.Output)
	s.setTemplate(env.Get("TEMPLATE"), parseBool(env.Get("NO_TEMPLATE")), cfg)

	s.setBoolFromString("no-title", env.Get("NO_TITLE"), &cfg.NoTitle)
	s.setBoolFromString("no-license", env.Get("NO_LICENSE"), &cfg.NoLicense)
	s.setBoolFromString("no-indent-headings", env.Get("NO_INDENT_HEADINGS"), &cfg.NoIndentHeadings)
	s.setBoolFromString("verbose", env.Get("VERBOSE"), &cfg.Verbose)
}
