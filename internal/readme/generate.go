// Package readme turns crate-level documentation comments into a Markdown
// README.
//
// The pipeline is: ExtractDocs strips comment markers from the entry source,
// Transform rewrites code fences and headings line by line, and Render frames
// the joined body with a title and license line or substitutes it into a
// template.
package readme

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Options configure Generate.
type Options struct {
	RenderOptions
	IndentHeadings bool
	Logger         zerolog.Logger
}

// Generate reads a Rust source file and returns the rendered README.
func Generate(src io.Reader, meta Metadata, opts Options) (string, error) {
	lines, err := ExtractDocs(src)
	if err != nil {
		return "", err
	}
	return GenerateFromLines(lines, meta, opts)
}

// GenerateFromLines renders documentation lines that have already been
// stripped of comment syntax.
func GenerateFromLines(lines []string, meta Metadata, opts Options) (string, error) {
	log := opts.Logger
	if len(lines) == 0 {
		log.Warn().Str("crate", meta.Name).Msg("no crate documentation found")
	}

	out, state := TransformLines(lines, opts.IndentHeadings)
	if state != NoCode {
		log.Warn().Stringer("fence", state).Msg("documentation ends inside an unterminated code block")
	}

	if meta.License == "" {
		if opts.AddLicense && opts.Template == nil {
			log.Warn().Str("crate", meta.Name).Msg("no license in manifest, skipping license line")
		}
		if _, _, usesLicense := TemplateUses(opts.Template); usesLicense {
			log.Warn().Str("crate", meta.Name).Msg("template uses {{license}} but the manifest declares none")
		}
	}

	return Render(strings.Join(out, "\n"), meta, opts.RenderOptions)
}
