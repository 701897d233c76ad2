package readme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDocs(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name: "line comments",
			source: `//! My crate
//!
//! # Examples
//!
//!     indented
#![deny(missing_docs)]
//! not part of the crate docs
fn main() {}
`,
			want: []string{"My crate", "", "# Examples", "", "    indented"},
		},
		{
			name: "skips leading attributes and comments",
			source: `// Copyright notice
#![allow(dead_code)]

//!Docs without space
//!  two spaces
`,
			want: []string{"Docs without space", " two spaces"},
		},
		{
			name: "block comment",
			source: `/*!
    This is my awesome crate

    # Examples
    ` + "```" + `
    let x = 1;
    ` + "```" + `
*/
fn main() {}
`,
			want: []string{"This is my awesome crate", "", "# Examples", "```", "let x = 1;", "```"},
		},
		{
			name:   "single line block",
			source: "/*! Short docs */\nfn main() {}\n",
			want:   []string{"Short docs"},
		},
		{
			name:   "block with text on delimiters",
			source: "/*! Title\n  body\n  more */\n",
			want:   []string{"Title", "body", "more"},
		},
		{
			name:   "crlf line endings",
			source: "//! one\r\n//! two\r\n",
			want:   []string{"one", "two"},
		},
		{
			name:   "trims surrounding blank lines",
			source: "//!\n//! body\n//!\n",
			want:   []string{"body"},
		},
		{
			name:   "no docs",
			source: "fn main() {}\n",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDocs(strings.NewReader(tt.source))
			require.NoError(t, err)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDocs_DoesNotMixStyles(t *testing.T) {
	source := "//! line style\n/*! block style */\n"
	got, err := ExtractDocs(strings.NewReader(source))
	require.NoError(t, err)
	require.Equal(t, []string{"line style"}, got)
}
