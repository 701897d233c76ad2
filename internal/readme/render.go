package readme

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// ErrMissingReadmePlaceholder is returned when a template has nowhere to put
// the rendered documentation.
var ErrMissingReadmePlaceholder = errors.New("missing `{{readme}}` in template")

// Metadata describes the package the documentation belongs to.
type Metadata struct {
	Name    string
	Version string
	License string
}

// RenderOptions control how the rendered body is framed.
type RenderOptions struct {
	// Template is the template text. Nil means no template.
	Template []byte
	// AddTitle prepends "# <name>" unless the template places the name itself.
	AddTitle bool
	// AddLicense appends "License: <license>" unless the template places the
	// license itself.
	AddLicense bool
}

var (
	reCratePlaceholder   = placeholder("crate")
	reReadmePlaceholder  = placeholder("readme")
	reLicensePlaceholder = placeholder("license")
)

func placeholder(name string) *regexp.Regexp {
	return regexp.MustCompile(`\{\{-?\s*` + name + `\s*-?\}\}`)
}

// TemplateUses reports which placeholders a template references.
func TemplateUses(tpl []byte) (crate, readme, license bool) {
	return reCratePlaceholder.Match(tpl), reReadmePlaceholder.Match(tpl), reLicensePlaceholder.Match(tpl)
}

// Render frames body with the title and license line, or substitutes it into
// the template when one is given. The result ends with a single newline.
func Render(body string, meta Metadata, opts RenderOptions) (string, error) {
	if opts.Template == nil {
		return assemble(body, meta, opts.AddTitle, opts.AddLicense), nil
	}
	hasCrate, hasReadme, hasLicense := TemplateUses(opts.Template)
	if !hasReadme {
		return "", ErrMissingReadmePlaceholder
	}
	rendered, err := renderTemplate(string(opts.Template), body, meta)
	if err != nil {
		return "", err
	}
	return assemble(rendered, meta, opts.AddTitle && !hasCrate, opts.AddLicense && !hasLicense), nil
}

func renderTemplate(text, body string, meta Metadata) (string, error) {
	funcs := template.FuncMap{
		"crate":   func() string { return meta.Name },
		"readme":  func() string { return body },
		"license": func() string { return meta.License },
		"version": func() string { return meta.Version },
	}
	tpl, err := template.New("readme").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

func assemble(body string, meta Metadata, addTitle, addLicense bool) string {
	var b strings.Builder
	if addTitle && meta.Name != "" {
		fmt.Fprintf(&b, "# %s\n\n", meta.Name)
	}
	b.WriteString(strings.TrimRight(body, "\n"))
	if addLicense && meta.License != "" {
		fmt.Fprintf(&b, "\n\nLicense: %s", meta.License)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
