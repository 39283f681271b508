// Package lexer turns plang source text into an EOF-terminated token sequence.
// It only understands ASCII; any byte it cannot classify becomes an Illegal token
// and is left for the parser to report.
package lexer

import (
	"strconv"
	"strings"

	"github.com/c0d3-dump/plang/pkg/token"
)

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte

	line   int
	column int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Tokenize lexes the whole input, including the trailing EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Stream lexes input into a queue ready for the parser.
func Stream(input string) *token.Stream {
	return token.NewStream(Tokenize(input))
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
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

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) NextToken() token.Token {
	l.skipIgnored()

	pos := token.Position{Line: l.line, Column: l.column}
	if l.atEnd() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	var tok token.Token
	switch l.ch {
	case '=':
		tok = l.either('=', token.Equals, token.Assign)
	case '!':
		tok = l.either('=', token.NotEquals, token.Bang)
	case '<':
		tok = l.either('=', token.LessThanOrEquals, token.LessThan)
	case '>':
		tok = l.either('=', token.GreaterThanOrEquals, token.GreaterThan)
	case '&':
		tok = l.either('&', token.And, token.Illegal)
	case '|':
		tok = l.either('|', token.Or, token.Illegal)
	case '+':
		tok = l.single(token.Plus)
	case '-':
		tok = l.single(token.Minus)
	case '*':
		tok = l.single(token.Asterisk)
	case '/':
		tok = l.single(token.Slash)
	case '%':
		tok = l.single(token.Percent)
	case ',':
		tok = l.single(token.Comma)
	case ':':
		tok = l.single(token.Colon)
	case '.':
		tok = l.single(token.Dot)
	case '(':
		tok = l.single(token.LeftParen)
	case ')':
		tok = l.single(token.RightParen)
	case '{':
		tok = l.single(token.LeftBrace)
	case '}':
		tok = l.single(token.RightBrace)
	case '[':
		tok = l.single(token.LeftBracket)
	case ']':
		tok = l.single(token.RightBracket)
	case '"':
		tok = l.readString()
		tok.Pos = pos
		return tok
	default:
		if isIdentStart(l.ch) {
			word := l.readIdentifier()
			return token.Token{Kind: token.LookupIdent(word), Literal: word, Pos: pos}
		}
		if isDigit(l.ch) {
			tok = l.readNumber()
			tok.Pos = pos
			return tok
		}
		tok = l.single(token.Illegal)
	}

	tok.Pos = pos
	l.readChar()
	return tok
}

func (l *Lexer) single(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Literal: string(l.ch)}
}

// either consumes a two-character operator when the next byte is second,
// otherwise it yields the one-character fallback.
func (l *Lexer) either(second byte, double, fallback token.Kind) token.Token {
	if l.peekChar() == second {
		first := l.ch
		l.readChar()
		return token.Token{Kind: double, Literal: string([]byte{first, l.ch})}
	}
	return l.single(fallback)
}

// skipIgnored skips whitespace, ';' separators, and "--" line comments.
func (l *Lexer) skipIgnored() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == ';':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for !l.atEnd() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	literal := l.input[start:l.position]
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return token.Token{Kind: token.Illegal, Literal: literal}
	}
	return token.Token{Kind: token.Number, Literal: literal, Number: value}
}

func (l *Lexer) readString() token.Token {
	start := l.position
	l.readChar()
	var b strings.Builder
	for {
		if l.atEnd() {
			return token.Token{Kind: token.Illegal, Literal: l.input[start:]}
		}
		switch l.ch {
		case '"':
			l.readChar()
			return token.Token{Kind: token.String, Literal: b.String()}
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(l.ch)
			case 0:
				continue
			default:
				b.WriteByte('\\')
				b.WriteByte(l.ch)
			}
		default:
			b.WriteByte(l.ch)
		}
		l.readChar()
	}
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '?'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
