package ast

import "fmt"

// Literal and identifier helpers.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

// Operator helpers.

func Bin(operator string, left, right Expression) *InfixExpression {
	return NewInfixExpression(left, mustOperator(operator), right)
}

func Un(operator string, operand Expression) *PrefixExpression {
	return NewPrefixExpression(mustOperator(operator), operand)
}

func mustOperator(symbol string) Operator {
	op, ok := OperatorFromSymbol(symbol)
	if !ok {
		panic(fmt.Sprintf("ast: unknown operator %q", symbol))
	}
	return op
}

// Expression helpers.

func Call(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func CallExpr(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), value)
}

func Lambda(params []string, body ...Statement) *FunctionLiteral {
	return NewFunctionLiteral(ids(params), Block(body))
}

func Member(object Expression, name string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(name))
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

// Statement helpers.

func Let(name string, value Expression) *LetStatement {
	return NewLetStatement(ID(name), value)
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), ids(params), Block(body))
}

func If(condition Expression, then Block, otherwise Block) *IfStatement {
	return NewIfStatement(condition, then, otherwise)
}

func ForEach(name string, iterable Expression, body ...Statement) *LoopStatement {
	return NewLoopStatement(&LoopBinding{Name: ID(name), Iterable: iterable}, Block(body))
}

func Forever(body ...Statement) *LoopStatement {
	return NewLoopStatement(nil, Block(body))
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Stmts(statements ...Statement) Block {
	return Block(statements)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

func ids(names []string) []*Identifier {
	out := make([]*Identifier, 0, len(names))
	for _, name := range names {
		out = append(out, ID(name))
	}
	return out
}
