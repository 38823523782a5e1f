package parser

import (
	"strconv"

	"blur/interpreter-go/pkg/ast"
)

func (p *parser) parseStatement() (ast.Statement, error) {
	if p.atType() {
		return p.parseDeclaration()
	}
	switch {
	case p.checkKeyword("if"):
		return p.parseIf()
	case p.checkKeyword("while"):
		return p.parseWhile()
	case p.checkKeyword("sharp"):
		p.advance()
		if !p.checkKeyword("for") {
			return nil, p.errorf("expected \"for\" after \"sharp\", found %s", p.current())
		}
		return p.parseFor(true)
	case p.checkKeyword("for"):
		return p.parseFor(false)
	case p.checkPunct("{"):
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(body), nil
	case p.checkKeyword("print"):
		return p.parsePrint()
	case p.checkKeyword("return"):
		return p.parseReturn()
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

// parseDeclaration handles `T name [= e];` and `T name[N] [= {e, ...}];`.
func (p *parser) parseDeclaration() (ast.Statement, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.acceptPunct("[") {
		return p.parseArrayDeclaration(typ, name)
	}
	var init ast.Expression
	if p.acceptPunct("=") {
		if init, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewVariableDeclaration(typ, name, init), nil
}

func (p *parser) parseArrayDeclaration(elem ast.Type, name *ast.Identifier) (ast.Statement, error) {
	tok := p.current()
	if tok.kind != tokInt {
		return nil, p.errorf("expected array size, found %s", tok)
	}
	size, err := strconv.Atoi(tok.text)
	if err != nil {
		return nil, p.errorf("invalid array size %s", tok.text)
	}
	p.advance()
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	var (
		elements []ast.Expression
		hasInit  bool
	)
	if p.acceptPunct("=") {
		hasInit = true
		if err := p.expectPunct("{"); err != nil {
			return nil, err
		}
		if elements, err = p.parseExpressionList("}"); err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewArrayDeclaration(elem, name, size, elements, hasInit), nil
}

func (p *parser) parseIf() (ast.Statement, error) {
	p.advance()
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var otherwise ast.Statement
	if p.checkKeyword("else") {
		p.advance()
		if otherwise, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(cond, then, otherwise), nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	p.advance()
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body), nil
}

func (p *parser) parseParenCondition() (ast.Expression, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseFor expects the current token to be `for`. Every clause of the header
// is optional.
func (p *parser) parseFor(sharp bool) (ast.Statement, error) {
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	var (
		init   ast.Statement
		cond   ast.Expression
		update ast.Expression
		err    error
	)
	switch {
	case p.acceptPunct(";"):
	case p.atType():
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if p.acceptPunct("=") {
			if value, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		init = ast.NewVariableDeclaration(typ, name, value)
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		init = ast.NewExpressionStatement(expr)
	}

	if !p.acceptPunct(";") {
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
	}
	if !p.checkPunct(")") {
		if update, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(init, cond, update, body, sharp), nil
}

func (p *parser) parsePrint() (ast.Statement, error) {
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	args, err := p.parseExpressionList(")")
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(args), nil
}

func (p *parser) parseReturn() (ast.Statement, error) {
	p.advance()
	var value ast.Expression
	if !p.checkPunct(";") {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(value), nil
}
