package parser

import (
	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/token"
)

type positioned interface {
	ast.Expression
	SetPos(token.Position)
}

func at[T positioned](node T, pos token.Position) T {
	node.SetPos(pos)
	return node
}

// parseExpression parses a leaf and then keeps folding operators while the
// current token binds tighter than prec.
func (p *Parser) parseExpression(prec Precedence) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for !p.current.Is(token.EOF) && prec < PrecedenceOf(p.current.Kind) {
		tok := p.current
		switch {
		case tok.Is(token.LeftParen):
			left, err = p.parseCall(left)
		case tok.Is(token.Dot):
			left, err = p.parseMember(left)
		case tok.Is(token.LeftBracket):
			left, err = p.parseIndex(left)
		case tok.Is(token.Assign):
			left, err = p.parseAssignment(left)
		case tok.Is(token.LeftBrace):
			return left, nil
		default:
			op, ok := infixOperators[tok.Kind]
			if !ok {
				return nil, p.unreachable("no infix rule for %s", tok)
			}
			p.read()
			var right ast.Expression
			right, err = p.parseExpression(PrecedenceOf(tok.Kind))
			if err == nil {
				left = at(ast.NewInfixExpression(left, op, right), tok.Pos)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	tok := p.current
	switch tok.Kind {
	case token.Number:
		p.read()
		return at(ast.NewNumberLiteral(tok.Number), tok.Pos), nil
	case token.String:
		p.read()
		return at(ast.NewStringLiteral(tok.Literal), tok.Pos), nil
	case token.True, token.False:
		p.read()
		return at(ast.NewBooleanLiteral(tok.Is(token.True)), tok.Pos), nil
	case token.Identifier:
		p.read()
		return at(ast.NewIdentifier(tok.Literal), tok.Pos), nil
	case token.Fn:
		return p.parseFunctionLiteral()
	case token.Minus, token.Bang:
		p.read()
		operand, err := p.parseExpression(PrecPrefix)
		if err != nil {
			return nil, err
		}
		return at(ast.NewPrefixExpression(prefixOperators[tok.Kind], operand), tok.Pos), nil
	case token.LeftBracket:
		p.read()
		elements, err := p.parseExpressionList(token.RightBracket)
		if err != nil {
			return nil, err
		}
		return at(ast.NewListLiteral(elements), tok.Pos), nil
	case token.LeftParen:
		p.read()
		inner, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.unexpected("expected expression")
	}
}

// parseExpressionList reads comma separated expressions up to and including end.
// A trailing comma is accepted.
func (p *Parser) parseExpressionList(end token.Kind) ([]ast.Expression, error) {
	items := []ast.Expression{}
	for !p.current.Is(end) {
		item, err := p.parseExpression(PrecLowest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.current.Is(token.Comma) {
			p.read()
			continue
		}
		if !p.current.Is(end) {
			return nil, p.unexpected("expected ',' or '%s'", end)
		}
	}
	p.read()
	return items, nil
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, error) {
	start, err := p.expect(token.Fn)
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
	return at(ast.NewFunctionLiteral(params, body), start.Pos), nil
}

// parseCall positions the call at its callee so diagnostics point at the name.
func (p *Parser) parseCall(callee ast.Expression) (ast.Expression, error) {
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	args, err := p.parseExpressionList(token.RightParen)
	if err != nil {
		return nil, err
	}
	return at(ast.NewCallExpression(callee, args), callee.Pos()), nil
}

func (p *Parser) parseMember(object ast.Expression) (ast.Expression, error) {
	start, err := p.expect(token.Dot)
	if err != nil {
		return nil, err
	}
	member, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return at(ast.NewMemberAccessExpression(object, member), start.Pos), nil
}

func (p *Parser) parseIndex(object ast.Expression) (ast.Expression, error) {
	start, err := p.expect(token.LeftBracket)
	if err != nil {
		return nil, err
	}
	index, err := p.parseExpression(PrecLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightBracket); err != nil {
		return nil, err
	}
	return at(ast.NewIndexExpression(object, index), start.Pos), nil
}

// parseAssignment binds the value tighter than `=`, so a chained `a = b = 1`
// reaches here again with an assignment as its target and is rejected.
func (p *Parser) parseAssignment(target ast.Expression) (ast.Expression, error) {
	id, ok := target.(*ast.Identifier)
	if !ok {
		return nil, p.unexpected("invalid assignment target")
	}
	start := p.current
	p.read()
	value, err := p.parseExpression(PrecAssign)
	if err != nil {
		return nil, err
	}
	return at(ast.NewAssignmentExpression(id, value), start.Pos), nil
}
