package readme

import (
	"iter"
	"regexp"
	"strings"
)

// FenceState records whether the transformer is inside a fenced code block
// and, if so, what kind.
type FenceState int

const (
	// NoCode means the current line is prose.
	NoCode FenceState = iota
	// RustCode means the current line is inside a Rust sample block, where
	// hidden lines are stripped.
	RustCode
	// OtherCode means the current line is inside a block in any other
	// language, including text blocks.
	OtherCode
)

func (s FenceState) String() string {
	switch s {
	case NoCode:
		return "none"
	case RustCode:
		return "rust"
	case OtherCode:
		return "other"
	default:
		return "unknown"
	}
}

const (
	fence     = "```"
	rustFence = "```rust"
)

// wordChars is a Unicode word character: alphabetic (letters, letter numbers
// and the circled and squared letters), marks, decimal digits, connector
// punctuation and the zero-width joiners.
const wordChars = `\p{L}\p{Nl}\x{24B6}-\x{24E9}\x{1F130}-\x{1F149}\x{1F150}-\x{1F169}\x{1F170}-\x{1F189}` +
	`\p{M}\p{Nd}\p{Pc}\x{200C}\x{200D}`

var (
	reCodeRust  = regexp.MustCompile("^```(rust|((rust,)?(no_run|ignore|should_panic)))?$")
	reCodeText  = regexp.MustCompile("^```text$")
	reCodeOther = regexp.MustCompile("^```[" + wordChars + "][" + wordChars + ",+]*$")
)

// LineSource yields documentation lines one at a time. The second result is
// false once the source is exhausted.
type LineSource interface {
	Next() (string, bool)
}

// SliceSource is a LineSource over an in-memory slice.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource returns a LineSource reading lines in order.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Next implements LineSource.
func (s *SliceSource) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

// Transformer rewrites rustdoc lines into Markdown lines. It pulls from its
// source only when asked for output and holds no more than the fence state
// between calls, so callers may stop at any point.
type Transformer struct {
	src            LineSource
	indentHeadings bool
	state          FenceState
}

// NewTransformer returns a Transformer reading from src. When indentHeadings
// is set, headings outside code blocks are demoted by one level.
func NewTransformer(src LineSource, indentHeadings bool) *Transformer {
	return &Transformer{src: src, indentHeadings: indentHeadings}
}

// State reports the fence state after the most recently produced line.
func (t *Transformer) State() FenceState {
	return t.state
}

// Next returns the next output line. It returns false when the source is
// exhausted; an open code block at that point is left open.
func (t *Transformer) Next() (string, bool) {
	for {
		line, ok := t.src.Next()
		if !ok {
			return "", false
		}
		if out, emit := t.rewrite(line); emit {
			return out, true
		}
	}
}

// rewrite applies the per-line rules. A false result drops the line.
func (t *Transformer) rewrite(line string) (string, bool) {
	if t.state == RustCode && strings.HasPrefix(line, "# ") {
		return "", false
	}
	switch {
	case t.indentHeadings && t.state == NoCode && strings.HasPrefix(line, "#"):
		return "#" + line, true
	case t.state == NoCode && reCodeRust.MatchString(line):
		t.state = RustCode
		return rustFence, true
	case t.state == NoCode && reCodeText.MatchString(line):
		t.state = OtherCode
		return fence, true
	case t.state == NoCode && reCodeOther.MatchString(line):
		t.state = OtherCode
	case t.state != NoCode && line == fence:
		t.state = NoCode
	}
	return line, true
}

// Transform lazily rewrites lines. Each iteration of the returned sequence
// starts with fresh fence state.
func Transform(lines iter.Seq[string], indentHeadings bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		t := &Transformer{indentHeadings: indentHeadings}
		for line := range lines {
			out, emit := t.rewrite(line)
			if !emit {
				continue
			}
			if !yield(out) {
				return
			}
		}
	}
}

// TransformLines drains a Transformer over lines and reports the fence state
// at the end of input.
func TransformLines(lines []string, indentHeadings bool) ([]string, FenceState) {
	t := NewTransformer(NewSliceSource(lines), indentHeadings)
	out := make([]string, 0, len(lines))
	for {
		line, ok := t.Next()
		if !ok {
			break
		}
		out = append(out, line)
	}
	return out, t.State()
}
