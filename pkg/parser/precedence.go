package parser

import (
	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/token"
)

// Precedence is the binding strength of a token in expression position.
type Precedence int

const (
	PrecLowest Precedence = iota
	PrecStatement
	PrecAssign
	PrecAndOr
	PrecComparison
	PrecEquals
	PrecSum
	PrecProduct
	PrecPrefix
	PrecCall
)

// PrecedenceOf classifies a token kind. Kinds that never continue an expression
// map to PrecLowest.
func PrecedenceOf(kind token.Kind) Precedence {
	switch kind {
	case token.Asterisk, token.Slash, token.Percent:
		return PrecProduct
	case token.Plus, token.Minus:
		return PrecSum
	case token.LeftParen, token.Dot, token.LeftBracket:
		return PrecCall
	case token.LessThan, token.GreaterThan, token.LessThanOrEquals, token.GreaterThanOrEquals:
		return PrecComparison
	case token.Equals, token.NotEquals:
		return PrecEquals
	case token.And, token.Or:
		return PrecAndOr
	case token.Assign:
		return PrecAssign
	case token.LeftBrace:
		return PrecStatement
	default:
		return PrecLowest
	}
}

var infixOperators = map[token.Kind]ast.Operator{
	token.Plus:                ast.OpAdd,
	token.Minus:               ast.OpSubtract,
	token.Asterisk:            ast.OpMultiply,
	token.Slash:               ast.OpDivide,
	token.Percent:             ast.OpModulo,
	token.Equals:              ast.OpEquals,
	token.NotEquals:           ast.OpNotEquals,
	token.LessThan:            ast.OpLessThan,
	token.GreaterThan:         ast.OpGreaterThan,
	token.LessThanOrEquals:    ast.OpLessThanOrEquals,
	token.GreaterThanOrEquals: ast.OpGreaterThanOrEquals,
	token.And:                 ast.OpAnd,
	token.Or:                  ast.OpOr,
}

var prefixOperators = map[token.Kind]ast.Operator{
	token.Minus: ast.OpSubtract,
	token.Bang:  ast.OpNot,
}

// startsExpression reports whether kind can begin a leaf expression.
func startsExpression(kind token.Kind) bool {
	switch kind {
	case token.Number, token.String, token.True, token.False, token.Identifier,
		token.Fn, token.Minus, token.Bang, token.LeftBracket, token.LeftParen:
		return true
	default:
		return false
	}
}
