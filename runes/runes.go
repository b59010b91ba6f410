// Package runes contains rune classification shared by the term printer and the parser.
package runes

import (
	"unicode"
	"unicode/utf8"
)

// First returns the first rune of s. If the string is empty or not proper UTF-8, returns false.
func First(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size < 2 {
		return 0, false
	}
	return r, true
}

// IsIdent returns whether ch may appear after the first rune of a plain atom or var.
func IsIdent(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// IsVarFirst returns whether ch starts a variable name.
func IsVarFirst(ch rune) bool {
	return ch == '_' || unicode.IsUpper(ch)
}

// IsSyntactic returns whether ch is reserved by the term syntax.
func IsSyntactic(ch rune) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', ',', '.', '\'', '"', '%', '_', '|':
		return true
	}
	return false
}

// IsSymbol returns whether ch may be part of a symbolic atom, like '+' or '=<'.
func IsSymbol(ch rune) bool {
	if IsSyntactic(ch) {
		return false
	}
	return unicode.IsSymbol(ch) || unicode.IsPunct(ch)
}

// AllIdents returns whether every rune of s is an ident rune.
func AllIdents(s string) bool {
	for _, ch := range s {
		if !IsIdent(ch) {
			return false
		}
	}
	return true
}

// AllSymbols returns whether s is a non-empty run of symbol runes.
func AllSymbols(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !IsSymbol(ch) {
			return false
		}
	}
	return true
}
