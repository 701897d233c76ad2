// Package project locates the package a README is generated for and
// resolves the source file that carries its crate-level documentation.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentflare-ai/cargo-readme/internal/readme"
)

var (
	// ErrManifestNotFound is returned when no Cargo.toml or go.mod exists in
	// the start directory or any of its parents.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrNoEntrypoint is returned when no source file can be chosen.
	ErrNoEntrypoint = errors.New("no entrypoint found")
)

// MultipleBinariesError is returned when the manifest declares more than one
// binary and none of the default entry points exist.
type MultipleBinariesError struct {
	Paths []string
}

func (e *MultipleBinariesError) Error() string {
	return fmt.Sprintf("multiple binaries found, choose one: [%s]", strings.Join(e.Paths, ", "))
}

// Kind identifies the project's ecosystem.
type Kind int

const (
	KindCargo Kind = iota
	KindGo
)

func (k Kind) String() string {
	if k == KindGo {
		return "go"
	}
	return "cargo"
}

// Project is a directory holding a package manifest.
type Project struct {
	Root string
	// Dir is the directory the search started from. Go projects document the
	// package found there.
	Dir      string
	Kind     Kind
	Manifest *Manifest
}

// Entry is the resolved documentation source.
type Entry struct {
	// Path is the entry source file, or the package directory for Go.
	Path string
	// Lines are the documentation lines with comment syntax removed.
	Lines []string
	// Meta describes the package for the title and license line.
	Meta readme.Metadata
	// Files are the inputs that affect the output, for watching.
	Files []string
}

// Find returns the project whose root is dir or its nearest ancestor holding
// Cargo.toml or, failing that, go.mod. An empty dir means the working
// directory.
func Find(dir string) (*Project, error) {
	if dir == "" {
		dir = "."
	}
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(start)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", dir)
	}

	var goRoot string
	for cur := start; ; {
		manifest := filepath.Join(cur, CargoManifest)
		if fileExists(manifest) {
			m, err := LoadManifest(manifest)
			if err != nil {
				return nil, err
			}
			return &Project{Root: cur, Dir: start, Kind: KindCargo, Manifest: m}, nil
		}
		if goRoot == "" && fileExists(filepath.Join(cur, GoManifest)) {
			goRoot = cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	if goRoot != "" {
		return &Project{Root: goRoot, Dir: start, Kind: KindGo}, nil
	}
	return nil, fmt.Errorf("%w: no %s or %s in %s or any parent", ErrManifestNotFound, CargoManifest, GoManifest, start)
}

// Resolve picks the documentation source and extracts its doc lines. input,
// when set, is relative to the project root.
func (p *Project) Resolve(ctx context.Context, input string) (*Entry, error) {
	if p.Kind == KindGo {
		return p.resolveGo(ctx, input)
	}
	path, err := p.EntryFile(input)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := readme.ExtractDocs(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Entry{
		Path:  path,
		Lines: lines,
		Meta: readme.Metadata{
			Name:    p.Manifest.Package.Name,
			Version: p.Manifest.Package.VersionString(),
			License: p.Manifest.Package.LicenseString(),
		},
		Files: []string{path, filepath.Join(p.Root, CargoManifest)},
	}, nil
}

// EntryFile chooses the Rust source file: the explicit input, then
// src/main.rs, src/lib.rs, the manifest's [lib] path, and finally its only
// [[bin]].
func (p *Project) EntryFile(input string) (string, error) {
	if input != "" {
		path := p.Abs(input)
		if !fileExists(path) {
			return "", fmt.Errorf("input %s: %w", input, os.ErrNotExist)
		}
		return path, nil
	}
	for _, candidate := range []string{"src/main.rs", "src/lib.rs"} {
		if path := p.Abs(candidate); fileExists(path) {
			return path, nil
		}
	}
	if p.Manifest != nil {
		if lib := p.Manifest.Lib; lib != nil && lib.Path != "" {
			return p.Abs(lib.Path), nil
		}
		switch bins := p.Manifest.Bins; len(bins) {
		case 0:
		case 1:
			return p.Abs(binPath(bins[0])), nil
		default:
			paths := make([]string, 0, len(bins))
			for _, bin := range bins {
				paths = append(paths, binPath(bin))
			}
			return "", &MultipleBinariesError{Paths: paths}
		}
	}
	return "", ErrNoEntrypoint
}

// Abs resolves a path relative to the project root.
func (p *Project) Abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, filepath.FromSlash(path))
}

func binPath(bin Target) string {
	if bin.Path != "" {
		return bin.Path
	}
	return "src/bin/" + bin.Name + ".rs"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
