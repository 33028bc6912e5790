package syntax

import (
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIllegal
	tokIdent  // constructor: lowercase start
	tokName   // named variable: uppercase or '_' start
	tokAnon   // '_'
	tokInt    // raw variable index
	tokQVar   // '?' followed by an integer
	tokLParen // (
	tokRParen // )
	tokComma  // ,
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "constructor"
	case tokName, tokAnon, tokInt, tokQVar:
		return "variable"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "illegal token"
	}
}

type token struct {
	typ     tokenType
	literal string
	pos     int // byte offset
}

type lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.readPosition = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += w
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

func (l *lexer) next() token {
	l.skipWhitespace()

	start := l.position
	switch {
	case l.position >= len(l.input):
		return token{typ: tokEOF, pos: len(l.input)}
	case l.ch == '(':
		l.readChar()
		return token{typ: tokLParen, literal: "(", pos: start}
	case l.ch == ')':
		l.readChar()
		return token{typ: tokRParen, literal: ")", pos: start}
	case l.ch == ',':
		l.readChar()
		return token{typ: tokComma, literal: ",", pos: start}
	case l.ch == '?':
		l.readChar()
		if !isDigit(l.ch) {
			return token{typ: tokIllegal, literal: "?", pos: start}
		}
		digits := l.readWhile(isDigit)
		return token{typ: tokQVar, literal: digits, pos: start}
	case isDigit(l.ch):
		return token{typ: tokInt, literal: l.readWhile(isDigit), pos: start}
	case l.ch == '_' || unicode.IsLetter(l.ch):
		first := l.ch
		lit := l.readWhile(isIdentChar)
		switch {
		case lit == "_":
			return token{typ: tokAnon, literal: lit, pos: start}
		case first == '_' || unicode.IsUpper(first):
			return token{typ: tokName, literal: lit, pos: start}
		default:
			return token{typ: tokIdent, literal: lit, pos: start}
		}
	default:
		ch := l.ch
		l.readChar()
		return token{typ: tokIllegal, literal: string(ch), pos: start}
	}
}

func (l *lexer) readWhile(ok func(rune) bool) string {
	start := l.position
	for l.position < len(l.input) && ok(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
