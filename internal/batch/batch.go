// Package batch reads batch files: one text to speak per line.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one text to convert
type Entry struct {
	// Label names the output file (label.wav). Empty means a generated name.
	Label string
	Text  string
	Line  int
}

// ReadBatchFile reads texts from a file. Supported lines:
// - plain text: "Salom dunyo"
// - labelled text: "greeting = Salom dunyo" (saved as greeting.wav)
// - comments starting with '#', and blank lines, are skipped
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return Parse(string(content)), nil
}

// Parse parses batch file content
func Parse(content string) []Entry {
	var entries []Entry

	for i, line := range splitLines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Text: line, Line: i + 1}
		if label, text, ok := strings.Cut(line, "="); ok && isLabel(strings.TrimSpace(label)) {
			text = strings.TrimSpace(text)
			if text == "" {
				// "label =" has nothing to say
				continue
			}
			entry.Label = strings.TrimSpace(label)
			entry.Text = text
		}

		entries = append(entries, entry)
	}

	return entries
}

// splitLines splits on \n and drops \r so Windows files parse the same
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r", ""), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isLabel accepts a single word of letters, digits, '-' and '_'. Anything
// else means the '=' belongs to the text.
func isLabel(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
