package translit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinToCyrillic maps single lowercase Latin letters. Digraphs, the
// apostrophe letters and 'e' are handled in ToCyrillic.
var latinToCyrillic = map[rune]string{
	'a': "а", 'b': "б", 'c': "с", 'd': "д", 'f': "ф",
	'g': "г", 'h': "ҳ", 'i': "и", 'j': "ж", 'k': "к",
	'l': "л", 'm': "м", 'n': "н", 'o': "о", 'p': "п",
	'q': "қ", 'r': "р", 's': "с", 't': "т", 'u': "у",
	'v': "в", 'w': "в", 'x': "х", 'y': "й", 'z': "з",
}

// yDigraphs maps the second letter of a y-digraph
var yDigraphs = map[rune]string{
	'o': "ё",
	'u': "ю",
	'a': "я",
	'e': "е",
}

// isApostrophe matches the characters people type for the Uzbek okina
func isApostrophe(r rune) bool {
	switch r {
	case '\'', 'ʻ', 'ʼ', '‘', '’', '`', '´':
		return true
	}
	return false
}

// newFolder returns a transformer that composes the text and folds every
// apostrophe variant into ASCII '\''. Transformers keep state, so callers
// get a fresh one each time.
func newFolder() transform.Transformer {
	return transform.Chain(norm.NFC, runes.Map(func(r rune) rune {
		if isApostrophe(r) {
			return '\''
		}
		return r
	}))
}

// ToCyrillic transliterates Uzbek Latin text into Uzbek Cyrillic
func ToCyrillic(text string) string {
	folded, _, err := transform.String(newFolder(), text)
	if err != nil {
		folded = text
	}

	src := []rune(folded)
	var b strings.Builder
	b.Grow(len(folded))

	for i := 0; i < len(src); i++ {
		r := src[i]
		lower := unicode.ToLower(r)
		upper := unicode.IsUpper(r)
		next := runeAt(src, i+1)
		nextLower := unicode.ToLower(next)

		switch {
		case (lower == 'o' || lower == 'g') && next == '\'':
			out := "ў"
			if lower == 'g' {
				out = "ғ"
			}
			b.WriteString(applyCase(out, upper, false))
			i++

		case lower == 's' && nextLower == 'h':
			b.WriteString(applyCase("ш", upper, false))
			i++

		case lower == 'c' && nextLower == 'h':
			b.WriteString(applyCase("ч", upper, false))
			i++

		case lower == 'y' && yDigraphs[nextLower] != "":
			// yo' is й followed by ў, not ё
			if nextLower == 'o' && runeAt(src, i+2) == '\'' {
				b.WriteString(applyCase("й", upper, false))
				continue
			}
			b.WriteString(applyCase(yDigraphs[nextLower], upper, false))
			i++

		case lower == 'e':
			out := "е"
			if startsSyllable(src, i) {
				out = "э"
			}
			b.WriteString(applyCase(out, upper, false))

		case r == '\'':
			prev := unicode.ToLower(runeAt(src, i-1))
			switch {
			case (prev == 's' || prev == 'c') && nextLower == 'h':
				// separator as in Is'hoq, no sound of its own
			case isLatinLetter(prev) && unicode.IsLetter(next):
				b.WriteString("ъ")
			default:
				b.WriteRune(r)
			}

		default:
			if out, ok := latinToCyrillic[lower]; ok {
				b.WriteString(applyCase(out, upper, false))
			} else {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}

// startsSyllable reports whether the 'e' at i opens a word or follows a vowel
func startsSyllable(src []rune, i int) bool {
	prev := unicode.ToLower(runeAt(src, i-1))
	if !unicode.IsLetter(prev) {
		return true
	}
	return strings.ContainsRune("aeiou", prev)
}

func isLatinLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func runeAt(src []rune, i int) rune {
	if i < 0 || i >= len(src) {
		return 0
	}
	return src[i]
}
