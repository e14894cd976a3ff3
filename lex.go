package tablets

import (
	"strconv"
	"unicode"
)

// Operators contains the bytes which are binary operators.
const Operators = "+-*/^"

// eof is returned by peek past the end of the input.
const eof rune = -1

// lexer is a cursor over an expression with all whitespace removed. The parser
// backs up by saving and restoring pos, so scanning never fails; a scan that
// doesn't match leaves the cursor where it was.
type lexer struct {
	src []rune
	pos int
}

func lex(s string) *lexer {
	src := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			src = append(src, r)
		}
	}
	return &lexer{src: src}
}

// peek returns the rune at the cursor, or eof.
func (l *lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune k places past the cursor, or eof.
func (l *lexer) peekAt(k int) rune {
	if l.pos+k >= len(l.src) {
		return eof
	}
	return l.src[l.pos+k]
}

func (l *lexer) advance() {
	if l.pos < len(l.src) {
		l.pos++
	}
}

// accept advances past r if it is the next rune.
func (l *lexer) accept(r rune) bool {
	if l.peek() != r {
		return false
	}
	l.pos++
	return true
}

// peekOp returns the operator at the cursor, if there is one.
func (l *lexer) peekOp() (byte, bool) {
	switch r := l.peek(); r {
	case '+', '-', '*', '/', '^':
		return byte(r), true
	}
	return 0, false
}

// scanNum scans digits with at most one decimal point. If there are no
// digits, the result is "" and the cursor doesn't move.
func (l *lexer) scanNum() string {
	start := l.pos
	var dig, dot bool
	for {
		r := l.peek()
		switch {
		case isDigit(r):
			dig = true
		case r == '.' && !dot:
			dot = true
		default:
			if !dig {
				l.pos = start
				return ""
			}
			return string(l.src[start:l.pos])
		}
		l.pos++
	}
}

// scanIdent scans a letter followed by letters, digits, and underscores. If
// the cursor isn't at a letter, the result is "".
func (l *lexer) scanIdent() string {
	start := l.pos
	if !unicode.IsLetter(l.peek()) {
		return ""
	}
	l.pos++
	for {
		r := l.peek()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return string(l.src[start:l.pos])
		}
		l.pos++
	}
}

// scanRepeat scans a repeat suffix ^[n] with n a positive integer. If the
// suffix is absent or malformed, the cursor doesn't move.
func (l *lexer) scanRepeat() (int, bool) {
	start := l.pos
	if !l.accept('^') || !l.accept('[') {
		l.pos = start
		return 0, false
	}
	digits := l.pos
	for isDigit(l.peek()) {
		l.pos++
	}
	n, err := strconv.Atoi(string(l.src[digits:l.pos]))
	if err != nil || n < 1 || !l.accept(']') {
		l.pos = start
		return 0, false
	}
	return n, true
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
