package ast

import "github.com/c0d3-dump/plang/pkg/token"

type NodeType string

const (
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeIdentifier          NodeType = "Identifier"
	NodeAssignment          NodeType = "AssignmentExpression"
	NodeInfixExpression     NodeType = "InfixExpression"
	NodePrefixExpression    NodeType = "PrefixExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeListLiteral         NodeType = "ListLiteral"
	NodeFunctionLiteral     NodeType = "FunctionLiteral"
	NodeMemberAccess        NodeType = "MemberAccessExpression"
	NodeIndexExpression     NodeType = "IndexExpression"
	NodeLetStatement        NodeType = "LetStatement"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeIfStatement         NodeType = "IfStatement"
	NodeLoopStatement       NodeType = "LoopStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeProgram             NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	Pos() token.Position
	isNode()
}

type Expression interface {
	Node
	isExpression()
}

type Statement interface {
	Node
	isStatement()
}

type nodeImpl struct {
	Type NodeType
	pos  token.Position
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType       { return n.Type }
func (n nodeImpl) Pos() token.Position      { return n.pos }
func (nodeImpl) isNode()                    {}
func (n *nodeImpl) SetPos(p token.Position) { n.pos = p }

type expressionMarker struct{}

func (expressionMarker) isExpression() {}

type statementMarker struct{}

func (statementMarker) isStatement() {}

// Block is an ordered statement sequence.
type Block []Statement

// Program is the parsed top-level statement list.
type Program struct {
	nodeImpl

	Statements []Statement
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Expressions

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// AssignmentExpression overwrites an existing variable. The parser only builds it
// with an Identifier target.
type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Target *Identifier
	Value  Expression
}

func NewAssignmentExpression(target *Identifier, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Value: value}
}

type InfixExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression
	Operator Operator
	Right    Expression
}

func NewInfixExpression(left Expression, op Operator, right Expression) *InfixExpression {
	return &InfixExpression{nodeImpl: newNodeImpl(NodeInfixExpression), Left: left, Operator: op, Right: right}
}

type PrefixExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator
	Operand  Expression
}

func NewPrefixExpression(op Operator, operand Expression) *PrefixExpression {
	return &PrefixExpression{nodeImpl: newNodeImpl(NodePrefixExpression), Operator: op, Operand: operand}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression
	Arguments []Expression
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: args}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// FunctionLiteral is an anonymous `fn (params) { ... }` used as a value.
type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Params []*Identifier
	Body   Block
}

func NewFunctionLiteral(params []*Identifier, body Block) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Params: params, Body: body}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker

	Object Expression
	Member *Identifier
}

func NewMemberAccessExpression(object Expression, member *Identifier) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Member: member}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Object Expression
	Index  Expression
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

// Statements

type LetStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier
	Value Expression
}

func NewLetStatement(name *Identifier, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Value: value}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   *Identifier
	Params []*Identifier
	Body   Block
}

func NewFunctionDeclaration(name *Identifier, params []*Identifier, body Block) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

// IfStatement runs Then when Condition is true, otherwise Else (which may be nil).
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      Block
	Else      Block
}

func NewIfStatement(condition Expression, then, otherwise Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: otherwise}
}

// LoopBinding is the `(let name : iterable)` header of a bounded loop.
type LoopBinding struct {
	Name     *Identifier
	Iterable Expression
}

// LoopStatement iterates Binding.Iterable when Binding is set, otherwise it repeats
// Body until a break or return.
type LoopStatement struct {
	nodeImpl
	statementMarker

	Binding *LoopBinding
	Body    Block
}

func NewLoopStatement(binding *LoopBinding, body Block) *LoopStatement {
	return &LoopStatement{nodeImpl: newNodeImpl(NodeLoopStatement), Binding: binding, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}
