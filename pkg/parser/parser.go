// Package parser builds plang ASTs from a token stream. It is a recursive-descent
// statement parser with a precedence-climbing expression parser and two tokens of
// lookahead. Parsing stops at the first error; no partial tree is returned.
package parser

import (
	"github.com/c0d3-dump/plang/pkg/ast"
	"github.com/c0d3-dump/plang/pkg/lexer"
	"github.com/c0d3-dump/plang/pkg/token"
)

type Parser struct {
	tokens  *token.Stream
	current token.Token
	peek    token.Token

	// loopDepth counts enclosing loop bodies within the current function body.
	loopDepth int
}

// New primes the current and peek slots from the stream.
func New(tokens *token.Stream) *Parser {
	p := &Parser{tokens: tokens}
	p.read()
	p.read()
	return p
}

// ParseSource lexes and parses a whole program.
func ParseSource(src string) (*ast.Program, error) {
	return ParseProgram(lexer.Stream(src))
}

// ParseProgram consumes the stream up to its end marker.
func ParseProgram(tokens *token.Stream) (*ast.Program, error) {
	p := New(tokens)
	statements := []ast.Statement{}
	for {
		stmt, err := p.Next()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return ast.NewProgram(statements), nil
		}
		statements = append(statements, stmt)
	}
}

// Next parses one top-level statement. It returns (nil, nil) once the end marker
// is reached.
func (p *Parser) Next() (ast.Statement, error) {
	if p.current.Is(token.EOF) {
		return nil, nil
	}
	return p.parseStatement()
}

func (p *Parser) read() {
	p.current = p.peek
	p.peek = p.tokens.Next()
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if !p.current.Is(kind) {
		return token.Token{}, p.unexpected("expected '%s'", kind)
	}
	tok := p.current
	p.read()
	return tok, nil
}

func (p *Parser) expectIdentifier() (*ast.Identifier, error) {
	if !p.current.Is(token.Identifier) {
		return nil, p.unexpected("expected identifier")
	}
	id := ast.NewIdentifier(p.current.Literal)
	id.SetPos(p.current.Pos)
	p.read()
	return id, nil
}

func (p *Parser) parseBlock() (ast.Block, error) {
	if _, err := p.expect(token.LeftBrace); err != nil {
		return nil, err
	}
	block := ast.Block{}
	for !p.current.Is(token.RightBrace) {
		if p.current.Is(token.EOF) {
			return nil, p.unexpected("expected '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
	}
	p.read()
	return block, nil
}

// parseFunctionBody parses a block outside of any loop context so that a bare
// break inside a function nested in a loop is rejected.
func (p *Parser) parseFunctionBody() (ast.Block, error) {
	saved := p.loopDepth
	p.loopDepth = 0
	defer func() { p.loopDepth = saved }()
	return p.parseBlock()
}

func (p *Parser) parseLoopBody() (ast.Block, error) {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.parseBlock()
}

func (p *Parser) parseParameters() ([]*ast.Identifier, error) {
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	params := []*ast.Identifier{}
	for !p.current.Is(token.RightParen) {
		param, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.current.Is(token.Comma) {
			p.read()
			continue
		}
		if !p.current.Is(token.RightParen) {
			return nil, p.unexpected("expected ',' or ')' in parameter list")
		}
	}
	p.read()
	return params, nil
}
