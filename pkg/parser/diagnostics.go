package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c0d3-dump/plang/pkg/token"
)

// ErrorKind distinguishes a malformed program from an internal parser fault.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	Unreachable
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case Unreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("error_kind_%d", int(k))
	}
}

// ParseError names the offending token and, when known, what was expected instead.
type ParseError struct {
	Kind    ErrorKind
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parser: ")
	if e.Token.Pos.Line > 0 {
		fmt.Fprintf(&b, "%s: ", e.Token.Pos)
	}
	switch e.Kind {
	case Unreachable:
		b.WriteString("entered unreachable code")
		if e.Message != "" {
			fmt.Fprintf(&b, " (%s)", e.Message)
		}
	default:
		fmt.Fprintf(&b, "unexpected token %s", e.Token)
		if e.Message != "" {
			fmt.Fprintf(&b, ": %s", e.Message)
		}
	}
	return b.String()
}

// Location reports where the error was detected.
func (e *ParseError) Location() token.Position {
	return e.Token.Pos
}

func (p *Parser) unexpected(format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    UnexpectedToken,
		Token:   p.current,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *Parser) unreachable(format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    Unreachable,
		Token:   p.current,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsIncomplete reports whether err is a parse error raised at the end of input,
// meaning more source could still complete the program.
func IsIncomplete(err error) bool {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Kind == UnexpectedToken && perr.Token.Is(token.EOF)
}
