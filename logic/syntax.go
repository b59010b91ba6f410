package logic

import (
	"strings"
	"unicode"

	"github.com/brunokim/rewrite-search/runes"
)

// IsVar returns whether text is a valid var name.
func IsVar(text string) bool {
	ch, ok := runes.First(text)
	if !ok || !runes.IsVarFirst(ch) {
		return false
	}
	return runes.AllIdents(text)
}

// IsPlainAtom returns whether text can be written as an atom without quotes.
func IsPlainAtom(text string) bool {
	ch, ok := runes.First(text)
	if !ok {
		return false
	}
	if unicode.IsLower(ch) {
		return runes.AllIdents(text)
	}
	return runes.AllSymbols(text)
}

var escapeChars = map[rune]string{
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	'\'': `\'`,
	'\\': `\\`,
}

// FormatAtom returns the atom name, quoted if it can't be read back as a plain atom.
func FormatAtom(text string) string {
	if IsPlainAtom(text) {
		return text
	}
	var b strings.Builder
	b.WriteRune('\'')
	for _, ch := range text {
		if exp, ok := escapeChars[ch]; ok {
			b.WriteString(exp)
		} else {
			b.WriteRune(ch)
		}
	}
	b.WriteRune('\'')
	return b.String()
}
