package ast

import "fmt"

// Operator is the closed set of prefix and infix operators.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEquals
	OpNotEquals
	OpLessThan
	OpGreaterThan
	OpLessThanOrEquals
	OpGreaterThanOrEquals
	OpAnd
	OpOr
	OpNot
)

var operatorSymbols = [...]string{
	OpAdd:                 "+",
	OpSubtract:            "-",
	OpMultiply:            "*",
	OpDivide:              "/",
	OpModulo:              "%",
	OpEquals:              "==",
	OpNotEquals:           "!=",
	OpLessThan:            "<",
	OpGreaterThan:         ">",
	OpLessThanOrEquals:    "<=",
	OpGreaterThanOrEquals: ">=",
	OpAnd:                 "&&",
	OpOr:                  "||",
	OpNot:                 "!",
}

func (o Operator) String() string {
	if int(o) >= 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// OperatorFromSymbol maps source spelling back to an Operator.
func OperatorFromSymbol(symbol string) (Operator, bool) {
	for op, sym := range operatorSymbols {
		if sym == symbol {
			return Operator(op), true
		}
	}
	return 0, false
}
