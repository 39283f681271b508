package parser

import (
	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Kind {
	case token.Let:
		return p.parseLet()
	case token.Fn:
		if p.peek.Is(token.Identifier) {
			return p.parseFunctionDeclaration()
		}
	case token.If:
		return p.parseIf()
	case token.Loop:
		return p.parseLoop()
	case token.Return:
		return p.parseReturn()
	case token.Break:
		return p.parseBreak()
	case token.Continue:
		return p.parseContinue()
	}

	pos := p.current.Pos
	expr, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewExpressionStatement(expr)
	stmt.SetPos(pos)
	return stmt, nil
}

func (p *Parser) parseLet() (ast.Statement, error) {
	start, err := p.expect(token.Let)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewLetStatement(name, value)
	stmt.SetPos(start.Pos)
	return stmt, nil
}

func (p *Parser) parseFunctionDeclaration() (ast.Statement, error) {
	start, err := p.expect(token.Fn)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewFunctionDeclaration(name, params, body)
	stmt.SetPos(start.Pos)
	return stmt, nil
}

// parseIf handles both `if` and the `elif` continuation; an elif chain becomes a
// nested if inside the else block.
func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.current
	if !start.Is(token.If) && !start.Is(token.Elif) {
		return nil, p.unexpected("expected 'if'")
	}
	p.read()

	condition, err := p.parseExpression(PrecStatement)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var otherwise ast.Block
	switch p.current.Kind {
	case token.Else:
		p.read()
		otherwise, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	case token.Elif:
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		otherwise = ast.Block{nested}
	}

	stmt := ast.NewIfStatement(condition, then, otherwise)
	stmt.SetPos(start.Pos)
	return stmt, nil
}

func (p *Parser) parseLoop() (ast.Statement, error) {
	start, err := p.expect(token.Loop)
	if err != nil {
		return nil, err
	}

	var binding *ast.LoopBinding
	if p.current.Is(token.LeftParen) {
		p.read()
		if _, err := p.expect(token.Let); err != nil {
			return nil, err
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		iterable, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen); err != nil {
			return nil, err
		}
		binding = &ast.LoopBinding{Name: name, Iterable: iterable}
	}

	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewLoopStatement(binding, body)
	stmt.SetPos(start.Pos)
	return stmt, nil
}

// parseReturn only takes a value that starts on the same line as the keyword, so
// a bare `return` followed by another statement stays empty.
func (p *Parser) parseReturn() (ast.Statement, error) {
	start, err := p.expect(token.Return)
	if err != nil {
		return nil, err
	}
	var value ast.Expression
	if startsExpression(p.current.Kind) && p.current.Pos.Line == start.Pos.Line {
		value, err = p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
	}
	stmt := ast.NewReturnStatement(value)
	stmt.SetPos(start.Pos)
	return stmt, nil
}

func (p *Parser) parseBreak() (ast.Statement, error) {
	if p.loopDepth == 0 {
		return nil, p.unexpected("break outside loop")
	}
	start := p.current
	p.read()
	stmt := ast.NewBreakStatement()
	stmt.SetPos(start.Pos)
	return stmt, nil
}

func (p *Parser) parseContinue() (ast.Statement, error) {
	if p.loopDepth == 0 {
		return nil, p.unexpected("continue outside loop")
	}
	start := p.current
	p.read()
	stmt := ast.NewContinueStatement()
	stmt.SetPos(start.Pos)
	return stmt, nil
}
