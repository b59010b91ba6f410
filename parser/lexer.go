package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brunokim/rewrite-search/runes"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokAtom
	tokVar
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokInt:
		return "int"
	case tokAtom:
		return "atom"
	case tokVar:
		return "var"
	case tokPunct:
		return "punctuation"
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	text string
	// spaced is true if whitespace or a comment precedes the token.
	spaced    bool
	line, col int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

type lexer struct {
	text      []rune
	pos       int
	line, col int
}

func newLexer(text string) *lexer {
	return &lexer{text: []rune(text), line: 1, col: 1}
}

func (l *lexer) peekRune(offset int) (rune, bool) {
	if l.pos+offset >= len(l.text) {
		return 0, false
	}
	return l.text[l.pos+offset], true
}

func (l *lexer) advance() rune {
	ch := l.text[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) errorf(line, col int, format string, args ...interface{}) {
	panic(&SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

// skipSpace consumes whitespace and '%' line comments, returning whether anything was skipped.
func (l *lexer) skipSpace() bool {
	skipped := false
	for {
		ch, ok := l.peekRune(0)
		if !ok {
			return skipped
		}
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '%':
			for ok && ch != '\n' {
				l.advance()
				ch, ok = l.peekRune(0)
			}
		default:
			return skipped
		}
		skipped = true
	}
}

func (l *lexer) next() token {
	spaced := l.skipSpace()
	tok := token{spaced: spaced, line: l.line, col: l.col}
	ch, ok := l.peekRune(0)
	if !ok {
		tok.kind = tokEOF
		return tok
	}
	switch {
	case ch == '(' || ch == ')' || ch == ',' || ch == '.':
		l.advance()
		tok.kind, tok.text = tokPunct, string(ch)
	case ch == '\'':
		tok.kind, tok.text = tokAtom, l.quoted()
	case unicode.IsDigit(ch):
		tok.kind, tok.text = tokInt, l.digits()
	case ch == '-' && l.nextIsDigit():
		l.advance()
		tok.kind, tok.text = tokInt, "-"+l.digits()
	case runes.IsVarFirst(ch):
		tok.kind, tok.text = tokVar, l.idents()
	case unicode.IsLetter(ch):
		tok.kind, tok.text = tokAtom, l.idents()
	case runes.IsSymbol(ch):
		tok.kind, tok.text = tokAtom, l.symbols()
	default:
		l.errorf(l.line, l.col, "unexpected character %q", ch)
	}
	return tok
}

func (l *lexer) nextIsDigit() bool {
	ch, ok := l.peekRune(1)
	return ok && unicode.IsDigit(ch)
}

func (l *lexer) digits() string {
	return l.takeWhile(unicode.IsDigit)
}

func (l *lexer) idents() string {
	return l.takeWhile(runes.IsIdent)
}

// symbols reads a run of symbol runes. The run stops before a '-' followed by a digit,
// so that "X=-1" reads as X, '=' and -1.
func (l *lexer) symbols() string {
	start := l.pos
	for {
		ch, ok := l.peekRune(0)
		if !ok || !runes.IsSymbol(ch) {
			break
		}
		if ch == '-' && l.pos > start && l.nextIsDigit() {
			break
		}
		l.advance()
	}
	return string(l.text[start:l.pos])
}

func (l *lexer) takeWhile(pred func(rune) bool) string {
	start := l.pos
	for {
		ch, ok := l.peekRune(0)
		if !ok || !pred(ch) {
			break
		}
		l.advance()
	}
	return string(l.text[start:l.pos])
}

var unescape = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\'': '\'',
	'\\': '\\',
}

func (l *lexer) quoted() string {
	line, col := l.line, l.col
	l.advance() // opening quote
	var b strings.Builder
	for {
		ch, ok := l.peekRune(0)
		if !ok || ch == '\n' {
			l.errorf(line, col, "unterminated quoted atom")
		}
		l.advance()
		switch ch {
		case '\'':
			return b.String()
		case '\\':
			esc, ok := l.peekRune(0)
			if !ok {
				l.errorf(line, col, "unterminated quoted atom")
			}
			r, known := unescape[esc]
			if !known {
				l.errorf(l.line, l.col, "unknown escape sequence \\%c", esc)
			}
			l.advance()
			b.WriteRune(r)
		default:
			b.WriteRune(ch)
		}
	}
}
