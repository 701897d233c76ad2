package project

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// CargoManifest is the file name of a Rust package manifest.
const CargoManifest = "Cargo.toml"

// Manifest holds the parts of Cargo.toml needed to render a README.
type Manifest struct {
	Package Package  `toml:"package"`
	Lib     *Target  `toml:"lib"`
	Bins    []Target `toml:"bin"`
}

// Package is the [package] table. Version and license may be inherited from
// a workspace (`version.workspace = true`), in which case they decode as
// tables and are reported as empty.
type Package struct {
	Name        string `toml:"name"`
	Version     any    `toml:"version"`
	License     any    `toml:"license"`
	LicenseFile any    `toml:"license-file"`
}

// Target is a [lib] or [[bin]] table.
type Target struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// LoadManifest reads and parses a Cargo.toml file.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// VersionString returns the package version, or "" when it is not a plain string.
func (p Package) VersionString() string {
	return stringValue(p.Version)
}

// LicenseString returns the SPDX license expression, falling back to the
// base name of license-file.
func (p Package) LicenseString() string {
	if l := stringValue(p.License); l != "" {
		return l
	}
	if f := stringValue(p.LicenseFile); f != "" {
		return filepath.Base(f)
	}
	return ""
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
