package parser

import (
	"fmt"

	"blur/interpreter-go/pkg/ast"
)

// SyntaxError reports the first token the parser could not accept.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Msg)
}

type parser struct {
	tokens []token
	pos    int
}

func newParser(src string) (*parser, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

// ParseProgram parses a sequence of top-level function definitions.
func ParseProgram(src string) (*ast.Program, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	var functions []*ast.FunctionDefinition
	for !p.atEOF() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	return ast.NewProgram(functions), nil
}

// ParseStatements parses a bare statement list, as typed at a prompt or
// passed on the command line.
func ParseStatements(src string) ([]ast.Statement, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) current() token {
	return p.tokens[p.pos]
}

func (p *parser) atEOF() bool {
	return p.current().kind == tokEOF
}

func (p *parser) advance() token {
	tok := p.current()
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) checkPunct(text string) bool {
	return p.current().is(tokPunct, text)
}

func (p *parser) checkKeyword(word string) bool {
	return p.current().is(tokKeyword, word)
}

func (p *parser) acceptPunct(text string) bool {
	if p.checkPunct(text) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectPunct(text string) error {
	if p.acceptPunct(text) {
		return nil
	}
	return p.errorf("expected %q, found %s", text, p.current())
}

func (p *parser) expectKeyword(word string) error {
	if p.checkKeyword(word) {
		p.advance()
		return nil
	}
	return p.errorf("expected %q, found %s", word, p.current())
}

func (p *parser) expectIdentifier() (*ast.Identifier, error) {
	tok := p.current()
	if tok.kind != tokIdent {
		return nil, p.errorf("expected identifier, found %s", tok)
	}
	p.advance()
	return ast.NewIdentifier(tok.text), nil
}

func (p *parser) errorf(format string, args ...any) error {
	tok := p.current()
	return &SyntaxError{Line: tok.line, Column: tok.column, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) atType() bool {
	tok := p.current()
	if tok.kind != tokKeyword {
		return false
	}
	_, ok := ast.TypeFromKeyword(tok.text)
	return ok
}

func (p *parser) parseType() (ast.Type, error) {
	tok := p.current()
	if tok.kind == tokKeyword {
		if typ, ok := ast.TypeFromKeyword(tok.text); ok {
			p.advance()
			return typ, nil
		}
	}
	return ast.Type{}, p.errorf("expected type, found %s", tok)
}

func (p *parser) parseFunction() (*ast.FunctionDefinition, error) {
	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []*ast.FunctionParameter
	if !p.checkPunct(")") {
		for {
			paramType, err := p.parseType()
			if err != nil {
				return nil, err
			}
			paramName, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			params = append(params, ast.NewFunctionParameter(paramType, paramName))
			if !p.acceptPunct(",") {
				break
			}
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name, params, returnType, body), nil
}

// parseBlockBody consumes `{ stmt* }`.
func (p *parser) parseBlockBody() ([]ast.Statement, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.checkPunct("}") {
		if p.atEOF() {
			return nil, p.errorf("expected \"}\", found %s", p.current())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.advance()
	return body, nil
}
