package project

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/cargo-readme/internal/readme"
)

// GoManifest is the file name of a Go module manifest.
const GoManifest = "go.mod"

func (p *Project) resolveGo(ctx context.Context, input string) (*Entry, error) {
	dir := p.Dir
	if input != "" {
		dir = p.Abs(input)
		if info, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		} else if !info.IsDir() {
			dir = filepath.Dir(dir)
		}
	}
	pkg, err := loadPackage(ctx, dir)
	if err != nil {
		return nil, err
	}
	files := append([]string{}, pkg.GoFiles...)
	files = append(files, filepath.Join(p.Root, GoManifest))
	return &Entry{
		Path:  dir,
		Lines: packageDocLines(pkg),
		Meta:  readme.Metadata{Name: packageTitle(pkg)},
		Files: files,
	}, nil
}

func loadPackage(ctx context.Context, dir string) (*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedModule,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: no Go package in %s", ErrNoEntrypoint, dir)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("%s", pkg.Errors[0])
	}
	return pkg, nil
}

// packageDocLines returns the package comment, preferring doc.go when more
// than one file carries one.
func packageDocLines(pkg *packages.Package) []string {
	type candidate struct {
		name string
		text string
	}
	var found []candidate
	for _, file := range pkg.Syntax {
		if file.Doc == nil {
			continue
		}
		name := filepath.Base(pkg.Fset.File(file.Package).Name())
		found = append(found, candidate{name: name, text: file.Doc.Text()})
	}
	if len(found) == 0 {
		return nil
	}
	sort.Slice(found, func(i, j int) bool {
		if (found[i].name == "doc.go") != (found[j].name == "doc.go") {
			return found[i].name == "doc.go"
		}
		return found[i].name < found[j].name
	})
	return strings.Split(strings.TrimRight(found[0].text, "\n"), "\n")
}

func packageTitle(pkg *packages.Package) string {
	if pkg.Name != "main" && pkg.Name != "" {
		return pkg.Name
	}
	if pkg.PkgPath != "" {
		return path.Base(pkg.PkgPath)
	}
	if pkg.Module != nil {
		return path.Base(pkg.Module.Path)
	}
	return pkg.Name
}
