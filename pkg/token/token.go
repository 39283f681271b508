package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Identifier
	Number
	String

	True
	False
	Let
	Fn
	If
	Elif
	Else
	Loop
	Return
	Break
	Continue

	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket

	Plus
	Minus
	Asterisk
	Slash
	Percent

	Assign
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessThanOrEquals
	GreaterThanOrEquals

	And
	Or

	Comma
	Colon
	Bang
	Dot
)

var kindNames = map[Kind]string{
	Illegal:             "illegal",
	EOF:                 "end of input",
	Identifier:          "identifier",
	Number:              "number",
	String:              "string",
	True:                "true",
	False:               "false",
	Let:                 "let",
	Fn:                  "fn",
	If:                  "if",
	Elif:                "elif",
	Else:                "else",
	Loop:                "loop",
	Return:              "return",
	Break:               "break",
	Continue:            "continue",
	LeftParen:           "(",
	RightParen:          ")",
	LeftBrace:           "{",
	RightBrace:          "}",
	LeftBracket:         "[",
	RightBracket:        "]",
	Plus:                "+",
	Minus:               "-",
	Asterisk:            "*",
	Slash:               "/",
	Percent:             "%",
	Assign:              "=",
	Equals:              "==",
	NotEquals:           "!=",
	LessThan:            "<",
	GreaterThan:         ">",
	LessThanOrEquals:    "<=",
	GreaterThanOrEquals: ">=",
	And:                 "&&",
	Or:                  "||",
	Comma:               ",",
	Colon:               ":",
	Bang:                "!",
	Dot:                 ".",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

var keywords = map[string]Kind{
	"let":      Let,
	"fn":       Fn,
	"if":       If,
	"elif":     Elif,
	"else":     Else,
	"loop":     Loop,
	"return":   Return,
	"break":    Break,
	"continue": Continue,
	"true":     True,
	"false":    False,
}

// LookupIdent resolves reserved words, falling back to Identifier.
func LookupIdent(word string) Kind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return Identifier
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Number carries the parsed value for Number tokens.
type Token struct {
	Kind    Kind
	Literal string
	Number  float64
	Pos     Position
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("identifier %q", t.Literal)
	case Number:
		return "number " + strconv.FormatFloat(t.Number, 'f', -1, 64)
	case String:
		return fmt.Sprintf("string %q", t.Literal)
	case Illegal:
		return fmt.Sprintf("illegal %q", t.Literal)
	case EOF:
		return t.Kind.String()
	default:
		return fmt.Sprintf("'%s'", t.Kind)
	}
}
