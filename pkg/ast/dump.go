package ast

import (
	"strconv"
	"strings"
)

// Dump renders a node as a compact s-expression, e.g. (+ 1 (* 2 3)).
// Parser tests and the REPL's :ast command rely on this format staying stable.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node)
	return b.String()
}

// DumpBlock renders a statement sequence as {stmt stmt ...}.
func DumpBlock(block Block) string {
	var b strings.Builder
	dumpBlock(&b, block)
	return b.String()
}

func dump(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Program:
		b.WriteString("(program")
		for _, stmt := range n.Statements {
			b.WriteByte(' ')
			dump(b, stmt)
		}
		b.WriteByte(')')
	case *NumberLiteral:
		b.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *Identifier:
		b.WriteString(n.Name)
	case *AssignmentExpression:
		b.WriteString("(= ")
		dump(b, n.Target)
		b.WriteByte(' ')
		dump(b, n.Value)
		b.WriteByte(')')
	case *InfixExpression:
		b.WriteByte('(')
		b.WriteString(n.Operator.String())
		b.WriteByte(' ')
		dump(b, n.Left)
		b.WriteByte(' ')
		dump(b, n.Right)
		b.WriteByte(')')
	case *PrefixExpression:
		b.WriteByte('(')
		b.WriteString(n.Operator.String())
		b.WriteByte(' ')
		dump(b, n.Operand)
		b.WriteByte(')')
	case *CallExpression:
		b.WriteString("(call ")
		dump(b, n.Callee)
		for _, arg := range n.Arguments {
			b.WriteByte(' ')
			dump(b, arg)
		}
		b.WriteByte(')')
	case *ListLiteral:
		b.WriteByte('[')
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteByte(' ')
			}
			dump(b, el)
		}
		b.WriteByte(']')
	case *FunctionLiteral:
		b.WriteString("(fn ")
		dumpParams(b, n.Params)
		b.WriteByte(' ')
		dumpBlock(b, n.Body)
		b.WriteByte(')')
	case *MemberAccessExpression:
		b.WriteString("(. ")
		dump(b, n.Object)
		b.WriteByte(' ')
		b.WriteString(n.Member.Name)
		b.WriteByte(')')
	case *IndexExpression:
		b.WriteString("(index ")
		dump(b, n.Object)
		b.WriteByte(' ')
		dump(b, n.Index)
		b.WriteByte(')')
	case *LetStatement:
		b.WriteString("(let ")
		b.WriteString(n.Name.Name)
		b.WriteByte(' ')
		dump(b, n.Value)
		b.WriteByte(')')
	case *FunctionDeclaration:
		b.WriteString("(fn ")
		b.WriteString(n.Name.Name)
		b.WriteByte(' ')
		dumpParams(b, n.Params)
		b.WriteByte(' ')
		dumpBlock(b, n.Body)
		b.WriteByte(')')
	case *IfStatement:
		b.WriteString("(if ")
		dump(b, n.Condition)
		b.WriteByte(' ')
		dumpBlock(b, n.Then)
		if n.Else != nil {
			b.WriteByte(' ')
			dumpBlock(b, n.Else)
		}
		b.WriteByte(')')
	case *LoopStatement:
		b.WriteString("(loop ")
		if n.Binding != nil {
			b.WriteString(n.Binding.Name.Name)
			b.WriteString(" : ")
			dump(b, n.Binding.Iterable)
			b.WriteByte(' ')
		}
		dumpBlock(b, n.Body)
		b.WriteByte(')')
	case *ReturnStatement:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		b.WriteString("(return ")
		dump(b, n.Value)
		b.WriteByte(')')
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	case *ExpressionStatement:
		dump(b, n.Expression)
	default:
		b.WriteString("<" + string(node.NodeType()) + ">")
	}
}

func dumpParams(b *strings.Builder, params []*Identifier) {
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
}

func dumpBlock(b *strings.Builder, block Block) {
	b.WriteByte('{')
	for i, stmt := range block {
		if i > 0 {
			b.WriteByte(' ')
		}
		dump(b, stmt)
	}
	b.WriteByte('}')
}
