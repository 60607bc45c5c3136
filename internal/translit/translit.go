package translit

import (
	"strings"
	"unicode"
)

// WordLimitHint is the soft limit shown to users. Nothing enforces it.
const WordLimitHint = 500

// Result is the outcome of Normalize
type Result struct {
	Text           string
	Transliterated bool
}

// Normalize collapses newlines and transliterates the text to Cyrillic
// unless it already contains a Cyrillic character.
func Normalize(text string) Result {
	collapsed := CollapseNewlines(text)
	if collapsed == "" || ContainsCyrillic(collapsed) {
		return Result{Text: collapsed}
	}

	return Result{
		Text:           ToCyrillic(collapsed),
		Transliterated: true,
	}
}

// CollapseNewlines replaces every newline with a single space
func CollapseNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

// ContainsCyrillic reports whether any rune lies in U+0400..U+04FF
func ContainsCyrillic(text string) bool {
	for _, r := range text {
		if isCyrillic(r) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ExceedsWordLimit reports whether the text is longer than WordLimitHint
func ExceedsWordLimit(text string) bool {
	return WordCount(text) > WordLimitHint
}

func isCyrillic(r rune) bool {
	return r >= '\u0400' && r <= '\u04ff'
}

// applyCase returns s upper-cased when upper is set. For multi-letter
// outputs (Latin digraphs) only the first letter is raised unless all
// is set as well.
func applyCase(s string, upper, all bool) string {
	if !upper {
		return s
	}
	if all {
		return strings.ToUpper(s)
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
