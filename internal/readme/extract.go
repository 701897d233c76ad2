package readme

import (
	"bufio"
	"io"
	"strings"
)

const (
	lineDocMarker  = "//!"
	blockDocOpen   = "/*!"
	blockDocClose  = "*/"
	maxSourceLine  = 1 << 20
	initialLineBuf = 64 * 1024
)

// ExtractDocs returns the crate-level documentation of a Rust source file as
// plain lines with comment markers removed. Either `//!` line comments or a
// single `/*! ... */` block is recognised, whichever appears first; the two
// styles are not mixed.
func ExtractDocs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuf), maxSourceLine)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, lineDocMarker):
			lines = extractLineDocs(trimmed, scanner)
		case strings.HasPrefix(trimmed, blockDocOpen):
			lines = extractBlockDocs(trimmed, scanner)
		default:
			continue
		}
		break
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return trimBlankLines(lines), nil
}

func extractLineDocs(first string, scanner *bufio.Scanner) []string {
	lines := []string{stripLineMarker(first)}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, lineDocMarker) {
			break
		}
		lines = append(lines, stripLineMarker(strings.TrimRight(scanner.Text(), " \t\r")))
	}
	return lines
}

func stripLineMarker(line string) string {
	line = strings.TrimLeft(line, " \t")
	line = strings.TrimPrefix(line, lineDocMarker)
	return strings.TrimPrefix(line, " ")
}

func extractBlockDocs(first string, scanner *bufio.Scanner) []string {
	var head []string
	rest := strings.TrimPrefix(first, blockDocOpen)
	if idx := strings.Index(rest, blockDocClose); idx >= 0 {
		if content := strings.TrimSpace(rest[:idx]); content != "" {
			head = append(head, content)
		}
		return head
	}
	if content := strings.TrimSpace(rest); content != "" {
		head = append(head, content)
	}
	var body []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if idx := strings.Index(line, blockDocClose); idx >= 0 {
			if content := strings.TrimRight(line[:idx], " \t"); strings.TrimSpace(content) != "" {
				body = append(body, content)
			}
			break
		}
		body = append(body, line)
	}
	return append(head, dedentLines(body)...)
}

func dedentLines(lines []string) []string {
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return lines
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return lines
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			count++
			continue
		}
		break
	}
	return count
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
