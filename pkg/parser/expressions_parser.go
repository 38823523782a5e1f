package parser

import (
	"strconv"
	"unicode/utf8"

	"blur/interpreter-go/pkg/ast"
)

var assignmentOperators = map[string]ast.AssignmentOperator{
	"=":  ast.AssignmentAssign,
	"+=": ast.AssignmentAdd,
	"-=": ast.AssignmentSub,
	"*=": ast.AssignmentMul,
	"/=": ast.AssignmentDiv,
	"%=": ast.AssignmentMod,
}

// Binary precedence levels, loosest first. Every level is left-associative.
var infixOperatorSets = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

// parseExpression is the entry point; assignment binds loosest and groups to
// the right.
func (p *parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	tok := p.current()
	op, ok := assignmentOperators[tok.text]
	if tok.kind != tokPunct || !ok {
		return left, nil
	}
	target, ok := left.(ast.AssignmentTarget)
	if !ok {
		return nil, p.errorf("invalid assignment target before %q", tok.text)
	}
	p.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewAssignmentExpression(op, target, right), nil
}

func (p *parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(infixOperatorSets) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchInfix(infixOperatorSets[level])
		if !ok {
			return left, nil
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		if lit, isLit := left.(*ast.StringLiteral); isLit && op == "*" {
			left = ast.NewStringRepeat(lit, right)
			continue
		}
		left = ast.NewBinaryExpression(op, left, right)
	}
}

func (p *parser) matchInfix(ops []string) (string, bool) {
	tok := p.current()
	if tok.kind != tokPunct {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			p.advance()
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseUnary() (ast.Expression, error) {
	switch {
	case p.acceptPunct("-"):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOperatorNegate, operand), nil
	case p.acceptPunct("!"):
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOperatorNot, operand), nil
	case p.checkPunct("++"), p.checkPunct("--"):
		op := ast.UpdateOperator(p.advance().text)
		target, err := p.parseUpdateTarget()
		if err != nil {
			return nil, err
		}
		return ast.NewUpdateExpression(op, target, true), nil
	}
	return p.parsePostfix()
}

// parseUpdateTarget reads `name` or `name[index]` after a prefix ++/--.
func (p *parser) parseUpdateTarget() (ast.AssignmentTarget, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if !p.acceptPunct("[") {
		return name, nil
	}
	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return ast.NewIndexExpression(name, index), nil
}

func (p *parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if id, ok := expr.(*ast.Identifier); ok && p.acceptPunct("[") {
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		expr = ast.NewIndexExpression(id, index)
	}
	if target, ok := expr.(ast.AssignmentTarget); ok && (p.checkPunct("++") || p.checkPunct("--")) {
		op := ast.UpdateOperator(p.advance().text)
		return ast.NewUpdateExpression(op, target, false), nil
	}
	return expr, nil
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.current()
	switch tok.kind {
	case tokInt:
		value, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, p.errorf("integer literal %s out of range", tok.text)
		}
		p.advance()
		return ast.NewIntegerLiteral(value), nil
	case tokFloat:
		value, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %s", tok.text)
		}
		p.advance()
		return ast.NewFloatLiteral(value), nil
	case tokChar:
		r, _ := utf8.DecodeRuneInString(tok.text)
		p.advance()
		return ast.NewCharLiteral(r), nil
	case tokString:
		p.advance()
		return ast.NewStringLiteral(tok.text), nil
	case tokKeyword:
		switch tok.text {
		case "true", "false":
			p.advance()
			return ast.NewBooleanLiteral(tok.text == "true"), nil
		}
	case tokIdent:
		p.advance()
		name := ast.NewIdentifier(tok.text)
		if !p.acceptPunct("(") {
			return name, nil
		}
		args, err := p.parseExpressionList(")")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(name, args), nil
	case tokPunct:
		if tok.text == "(" {
			p.advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return expr, nil
		}
	}
	if tok.kind == tokEOF {
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unexpected token %s", tok)
}

// parseExpressionList reads comma-separated expressions up to and including
// the closing delimiter.
func (p *parser) parseExpressionList(closing string) ([]ast.Expression, error) {
	var list []ast.Expression
	if p.acceptPunct(closing) {
		return nil, nil
	}
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.acceptPunct(",") {
			break
		}
	}
	if err := p.expectPunct(closing); err != nil {
		return nil, err
	}
	return list, nil
}
