package readme

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func transform(t *testing.T, input []string, indentHeadings bool) []string {
	t.Helper()
	out, _ := TransformLines(input, indentHeadings)
	return out
}

func TestTransform_HideLineInRustCodeBlock(t *testing.T) {
	input := []string{
		"```",
		"#[visible]",
		`let visible = "visible";`,
		`# let hidden = "hidden";`,
		"```",
	}
	expected := []string{
		"```rust",
		"#[visible]",
		`let visible = "visible";`,
		"```",
	}
	require.Equal(t, expected, transform(t, input, true))
}

func TestTransform_DoNotHideLineInOtherCodeBlock(t *testing.T) {
	input := []string{
		"```",
		`let visible = "visible";`,
		`# let hidden = "hidden";`,
		"```",
		"",
		"```python",
		"# this line is visible",
		"visible = True",
		"```",
	}
	expected := []string{
		"```rust",
		`let visible = "visible";`,
		"```",
		"",
		"```python",
		"# this line is visible",
		"visible = True",
		"```",
	}
	require.Equal(t, expected, transform(t, input, true))
}

func TestTransform_RustFenceVariantsBecomeRust(t *testing.T) {
	variants := []string{
		"```",
		"```rust",
		"```no_run",
		"```ignore",
		"```should_panic",
		"```rust,no_run",
		"```rust,ignore",
		"```rust,should_panic",
	}
	for _, opener := range variants {
		t.Run(opener, func(t *testing.T) {
			out, state := TransformLines([]string{opener, "let x = 1;", "# hidden", "```"}, true)
			require.Equal(t, []string{"```rust", "let x = 1;", "```"}, out)
			require.Equal(t, NoCode, state)
		})
	}
}

func TestTransform_MixedBlocks(t *testing.T) {
	input := []string{
		"```rust",
		`let block = "simple code block";`,
		"```",
		"",
		"```rust,no_run",
		"let run = false;",
		"```",
		"",
		"```ignore",
		"let ignore = true;",
		"```",
		"",
		"```should_panic",
		`panic!("at the disco");`,
		"```",
		"",
		"```C",
		"int i = 0; // no rust code",
		"```",
	}
	expected := []string{
		"```rust",
		`let block = "simple code block";`,
		"```",
		"",
		"```rust",
		"let run = false;",
		"```",
		"",
		"```rust",
		"let ignore = true;",
		"```",
		"",
		"```rust",
		`panic!("at the disco");`,
		"```",
		"",
		"```C",
		"int i = 0; // no rust code",
		"```",
	}
	require.Equal(t, expected, transform(t, input, true))
}

func TestTransform_TextBlockLosesTag(t *testing.T) {
	input := []string{"```text", "this is text", "# not a heading", "```"}
	expected := []string{"```", "this is text", "# not a heading", "```"}
	require.Equal(t, expected, transform(t, input, true))
}

func TestTransform_OtherCodeBlockWithSymbols(t *testing.T) {
	input := []string{
		"```html,django",
		"{% if True %}True{% endif %}",
		"```",
		"",
		"```html+django",
		"{% if True %}True{% endif %}",
		"```",
		"",
		"```C",
		"#include <stdio.h>",
		"# define X",
		"```",
	}
	require.Equal(t, input, transform(t, input, true))
}

func TestTransform_OtherCodeBlockUnicodeTags(t *testing.T) {
	for _, tag := range []string{"Ⅻ", "ⓐ", "a\u200db", "日本語", "é"} {
		t.Run(tag, func(t *testing.T) {
			input := []string{"```" + tag, "# x", "```"}
			require.Equal(t, input, transform(t, input, true))
		})
	}
}

func TestTransform_Headings(t *testing.T) {
	input := []string{
		"# heading 1",
		"some text",
		"## heading 2",
		"some other text",
	}

	t.Run("indent", func(t *testing.T) {
		expected := []string{
			"## heading 1",
			"some text",
			"### heading 2",
			"some other text",
		}
		require.Equal(t, expected, transform(t, input, true))
	})

	t.Run("no indent", func(t *testing.T) {
		require.Equal(t, input, transform(t, input, false))
	})

	t.Run("applied twice", func(t *testing.T) {
		once := transform(t, []string{"# H1"}, true)
		require.Equal(t, []string{"### H1"}, transform(t, once, true))
	})
}

func TestTransform_HeadingsInsideCodeAreUntouched(t *testing.T) {
	input := []string{
		"```rust",
		"#[derive(Debug)]",
		"struct S;",
		"```",
		"```sh",
		"#!/bin/sh",
		"```",
		"# After",
	}
	expected := []string{
		"```rust",
		"#[derive(Debug)]",
		"struct S;",
		"```",
		"```sh",
		"#!/bin/sh",
		"```",
		"## After",
	}
	require.Equal(t, expected, transform(t, input, true))
}

func TestTransform_CanonicalDocumentIsFixedPoint(t *testing.T) {
	canonical := []string{
		"## Examples",
		"",
		"```rust",
		"let x = sum(2, 2);",
		"```",
		"",
		"```toml",
		"[dependencies]",
		"```",
		"",
		"More prose.",
	}
	require.Equal(t, canonical, transform(t, canonical, false))
}

func TestTransform_UnterminatedFence(t *testing.T) {
	out, state := TransformLines([]string{"```rust", "let x = 1;"}, true)
	require.Equal(t, []string{"```rust", "let x = 1;"}, out)
	require.Equal(t, RustCode, state)
}

func TestTransform_HiddenLineAtEndOfInput(t *testing.T) {
	out, state := TransformLines([]string{"```", "# let hidden = 1;", "# let hidden = 2;"}, true)
	require.Equal(t, []string{"```rust"}, out)
	require.Equal(t, RustCode, state)
}

func TestTransform_HiddenLinesBeforeClose(t *testing.T) {
	input := []string{"```", "# use std::io;", "# fn main() {}", "```", "# Heading"}
	expected := []string{"```rust", "```", "## Heading"}
	require.Equal(t, expected, transform(t, input, true))
}

func TestTransform_NotFences(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "trailing space",
			input: []string{"``` ", "# x"},
			want:  []string{"``` ", "## x"},
		},
		{
			name:  "attribute syntax",
			input: []string{"```{.rust}", "# x"},
			want:  []string{"```{.rust}", "## x"},
		},
		{
			name:  "space before tag",
			input: []string{"``` rust", "# x"},
			want:  []string{"``` rust", "## x"},
		},
		{
			name:  "indented fence",
			input: []string{"  ```", "# x"},
			want:  []string{"  ```", "## x"},
		},
		{
			name:  "tagged close is content",
			input: []string{"```C", "```rust", "# x", "```"},
			want:  []string{"```C", "```rust", "# x", "```"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, transform(t, tt.input, true))
		})
	}
}

type countingSource struct {
	lines  []string
	pulled int
}

func (c *countingSource) Next() (string, bool) {
	if c.pulled >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pulled]
	c.pulled++
	return line, true
}

func TestTransformer_PullsLazily(t *testing.T) {
	src := &countingSource{lines: []string{"```", "# a", "# b", "visible", "```", "tail"}}
	tr := NewTransformer(src, true)

	line, ok := tr.Next()
	require.True(t, ok)
	require.Equal(t, "```rust", line)
	require.Equal(t, 1, src.pulled)
	require.Equal(t, RustCode, tr.State())

	line, ok = tr.Next()
	require.True(t, ok)
	require.Equal(t, "visible", line)
	require.Equal(t, 4, src.pulled)

	line, ok = tr.Next()
	require.True(t, ok)
	require.Equal(t, "```", line)
	require.Equal(t, NoCode, tr.State())
}

func TestTransform_SeqStopsEarly(t *testing.T) {
	pulled := 0
	lines := func(yield func(string) bool) {
		for i := 0; i < 100; i++ {
			pulled++
			if !yield("line") {
				return
			}
		}
	}

	var got []string
	for line := range Transform(lines, true) {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []string{"line", "line"}, got)
	require.Equal(t, 2, pulled)
}

func TestTransform_SeqStartsFreshEachIteration(t *testing.T) {
	seq := Transform(slices.Values([]string{"```", "let x = 1;"}), true)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, []string{"```rust", "let x = 1;"}, first)
	require.Equal(t, first, second)
}

func TestTransform_OutputFencesParseAsMarkdown(t *testing.T) {
	input := []string{
		"# Examples",
		"```no_run",
		"let x = 1;",
		"# let y = 2;",
		"```",
		"```text",
		"plain",
		"```",
		"```html+django",
		"{{ value }}",
		"```",
	}
	body := []byte(strings.Join(slices.Collect(Transform(slices.Values(input), true)), "\n"))

	root := goldmark.New().Parser().Parse(text.NewReader(body))
	var langs []string
	var heading int
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.FencedCodeBlock:
			langs = append(langs, string(node.Language(body)))
		case *gmast.Heading:
			heading = node.Level
		}
		return gmast.WalkContinue, nil
	})
	require.Equal(t, []string{"rust", "", "html+django"}, langs)
	require.Equal(t, 2, heading)
	require.NotContains(t, string(body), "let y")
}
