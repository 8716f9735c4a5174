// Package lexer tokenizes region-language source text.
//
// It implements the deterministic maximal-munch automaton described by the
// specification: at every character the machine is conceptually in Start,
// Accepting(T), or Error(s). When a character cannot extend the current
// accept, the accepted token is emitted, the machine resets to Start, and
// the character is re-dispatched (the "boundary protocol").
package lexer

import (
	"fmt"
	"strings"

	"github.com/regionc/regionc/internal/token"
)

// Error is a single lexical error: an unconsumable character encountered
// while building a token candidate.
type Error struct {
	Pos     token.Position
	Partial string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s while parsing token: %s", e.Pos, e.Partial)
}

// Lexer scans region-language source text into a stream of tokens.
type Lexer struct {
	filename string
	input    string
	lines    []string

	position     int
	readPosition int
	ch           byte
	line         int
	column       int

	tokenBuffer []token.Token
	errors      []*Error
}

// New creates a Lexer over input, attributing positions to filename.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    input,
		lines:    strings.Split(input, "\n"),
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// Errors returns all lexical errors accumulated so far.
func (l *Lexer) Errors() []*Error { return l.errors }

func (l *Lexer) addError(pos token.Position, partial string) {
	l.errors = append(l.errors, &Error{Pos: pos, Partial: partial})
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) currentLineContent() string {
	if l.line-1 >= 0 && l.line-1 < len(l.lines) {
		return l.lines[l.line-1]
	}
	return ""
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Filename:    l.filename,
		Line:        l.line,
		Column:      l.column,
		LineContent: l.currentLineContent(),
	}
}

// Peek returns the token n positions ahead without consuming it. Peek(0)
// is the same token NextToken() would return next.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.nextTokenInternal())
	}
	return l.tokenBuffer[n]
}

// NextToken returns the next token, draining the lookahead buffer first.
func (l *Lexer) NextToken() token.Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.nextTokenInternal()
}

// All drains the lexer to completion and returns every token, including
// the trailing token.EOF. It is the parser's usual entry point: the parser
// operates on a fixed token slice rather than pulling from the lexer
// incrementally, which makes production backtracking a matter of restoring
// an index.
func (l *Lexer) All() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			if l.ch == '\n' {
				l.line++
				l.column = 0
			}
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func isLetter(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// twoCharOperators lists operator extensions recognized by maximal munch:
// the lead character maps to the possible second characters and the
// resulting token type.
var twoCharOperators = map[byte]map[byte]token.Type{
	'<': {'=': token.LE},
	'>': {'=': token.GE},
}

var singleCharOperators = map[byte]token.Type{
	'+': token.PLUS,
	'*': token.ASTERISK,
	'/': token.SLASH,
	'=': token.ASSIGN,
	'<': token.LT,
	'>': token.GT,
	'.': token.DOT,
}

var singleCharPunctuation = map[byte]token.Type{
	'{': token.LBRACE,
	'}': token.RBRACE,
	'(': token.LPAREN,
	')': token.RPAREN,
	';': token.SEMICOLON,
	',': token.COMMA,
	'[': token.LBRACK,
	']': token.RBRACK,
}

// nextTokenInternal runs the maximal-munch automaton for exactly one token.
func (l *Lexer) nextTokenInternal() token.Token {
	l.skipWhitespaceAndComments()
	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.New(token.EOF, "", pos)

	case l.ch == '-':
		return l.lexMinus(pos)

	case isLetter(l.ch):
		return l.lexIdentifierOrKeyword(pos)

	case isDigit(l.ch):
		return l.lexNumber(pos)

	default:
		if ext, ok := twoCharOperators[l.ch]; ok {
			if tt, ok2 := ext[l.peekChar()]; ok2 {
				lit := string(l.ch) + string(l.peekChar())
				l.readChar()
				l.readChar()
				return token.New(tt, lit, pos)
			}
		}
		if tt, ok := singleCharOperators[l.ch]; ok {
			lit := string(l.ch)
			l.readChar()
			return token.New(tt, lit, pos)
		}
		if tt, ok := singleCharPunctuation[l.ch]; ok {
			lit := string(l.ch)
			l.readChar()
			return token.New(tt, lit, pos)
		}

		partial := string(l.ch)
		l.addError(pos, partial)
		l.readChar()
		return token.New(token.ILLEGAL, partial, pos)
	}
}

// lexMinus handles '-': a plain MINUS operator, unless immediately followed
// by a digit, in which case it becomes the lead of a negative number
// literal ("-1" lexes as NUMBER per the specification).
func (l *Lexer) lexMinus(pos token.Position) token.Token {
	if isDigit(l.peekChar()) {
		start := l.position
		l.readChar() // consume '-'
		for isDigit(l.ch) || l.ch == '.' {
			l.readChar()
		}
		return token.New(token.NUMBER, l.input[start:l.position], pos)
	}
	l.readChar()
	return token.New(token.MINUS, "-", pos)
}

// lexIdentifierOrKeyword reads a maximal identifier and classifies it.
func (l *Lexer) lexIdentifierOrKeyword(pos token.Position) token.Token {
	start := l.position
	for isAlphaNumeric(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]
	return token.New(token.LookupIdent(literal), literal, pos)
}

// lexNumber reads a maximal digit run, including at most one '.'.
func (l *Lexer) lexNumber(pos token.Position) token.Token {
	start := l.position
	sawDot := false
	for isDigit(l.ch) || (l.ch == '.' && !sawDot) {
		if l.ch == '.' {
			sawDot = true
		}
		l.readChar()
	}
	return token.New(token.NUMBER, l.input[start:l.position], pos)
}
