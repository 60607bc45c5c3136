package translit

import (
	"strings"
	"unicode"
)

var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'ғ': "g'",
	'д': "d", 'е': "e", 'ё': "yo", 'ж': "j", 'з': "z",
	'и': "i", 'й': "y", 'к': "k", 'қ': "q", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r",
	'с': "s", 'т': "t", 'у': "u", 'ў': "o'", 'ф': "f",
	'х': "x", 'ҳ': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh",
	'щ': "sh", 'ъ': "'", 'ь': "", 'ы': "i", 'э': "e",
	'ю': "yu", 'я': "ya",
}

// ToLatin renders Uzbek Cyrillic text in Uzbek Latin orthography. It is the
// reading shown next to processed text and is not used on the request path.
func ToLatin(text string) string {
	src := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range src {
		lower := unicode.ToLower(r)
		out, ok := cyrillicToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}

		// е opening a word is pronounced ye
		if lower == 'е' && startsCyrillicSyllable(src, i) {
			out = "ye"
		}

		upper := unicode.IsUpper(r)
		all := upper && unicode.IsUpper(runeAt(src, i+1))
		b.WriteString(applyCase(out, upper, all))
	}

	return b.String()
}

func startsCyrillicSyllable(src []rune, i int) bool {
	prev := unicode.ToLower(runeAt(src, i-1))
	if !unicode.IsLetter(prev) {
		return true
	}
	return strings.ContainsRune("аеёиоуўэюя", prev)
}
