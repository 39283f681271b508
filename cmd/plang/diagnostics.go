package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/c0d3-dump/plang/pkg/interpreter"
	"github.com/c0d3-dump/plang/pkg/parser"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	noteText     = color.New(color.FgCyan).SprintFunc()
	okText       = color.New(color.FgGreen).SprintFunc()
)

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
}

func reportWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warningLabel("warning:"), fmt.Sprintf(format, args...))
}

// reportParseError prefixes a parse error with the file it came from. An empty
// origin is used for REPL input.
func reportParseError(w io.Writer, origin string, err error) {
	var perr *parser.ParseError
	if origin != "" && errors.As(err, &perr) {
		fmt.Fprintf(w, "%s %s: %v\n", errorLabel("error:"), origin, perr)
		return
	}
	fmt.Fprintf(w, "%s %v\n", errorLabel("error:"), err)
}

// reportRuntimeError prints the message and then the call-stack notes.
func reportRuntimeError(w io.Writer, origin string, err error) {
	text := interpreter.DescribeRuntimeError(err)
	lines := strings.Split(text, "\n")
	message := lines[0]
	if origin != "" {
		message = origin + ": " + message
	}
	fmt.Fprintf(w, "%s %s\n", errorLabel("error:"), message)
	for _, note := range lines[1:] {
		fmt.Fprintf(w, "  %s\n", noteText(note))
	}
}
