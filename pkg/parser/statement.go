package parser

import (
	"fmt"

	"sl/pkg/ast"
	"sl/pkg/lexer"
)

// parseStatement dispatches on the leading token of a statement
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.current().Type {
	case lexer.LET:
		return p.parseLet()
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.IF:
		return p.parseIf()
	case lexer.LBRACE:
		at := p.current().Pos
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.Scope{Body: body, At: at}, nil
	case lexer.FUNC:
		return p.parseFunc()
	case lexer.MODEL:
		return p.parseModel()
	case lexer.EOF:
		return nil, p.unexpected("statement")
	default:
		return p.parseSimpleStatement()
	}
}

// parseBlock parses `{ stmt* }`
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	body := []ast.Stmt{}
	for !p.at(lexer.RBRACE) {
		if p.at(lexer.EOF) {
			return nil, p.missing(lexer.RBRACE)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.nextToken()

	return body, nil
}

// let id = expr ;
func (p *Parser) parseLet() (ast.Stmt, error) {
	at := p.nextToken().Pos

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.Let{Name: name, Value: value, At: at}, nil
}

// print expr ;
func (p *Parser) parsePrint() (ast.Stmt, error) {
	at := p.nextToken().Pos

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.Print{Value: value, At: at}, nil
}

// return expr? ;
func (p *Parser) parseReturn() (ast.Stmt, error) {
	at := p.nextToken().Pos

	if p.accept(lexer.SEMICOLON) {
		return &ast.Return{At: at}, nil
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.Return{Value: value, At: at}, nil
}

// for id : expr { body }
func (p *Parser) parseFor() (ast.Stmt, error) {
	at := p.nextToken().Pos

	iter, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	count, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.For{Iter: iter, Count: count, Body: body, At: at}, nil
}

// while expr { body }
func (p *Parser) parseWhile() (ast.Stmt, error) {
	at := p.nextToken().Pos

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.While{Cond: cond, Body: body, At: at}, nil
}

// if expr { body } (else if ... | else { body })?
func (p *Parser) parseIf() (ast.Stmt, error) {
	at := p.nextToken().Pos

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{Cond: cond, Then: then, At: at}
	if !p.accept(lexer.ELSE) {
		return stmt, nil
	}

	if p.at(lexer.IF) {
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = []ast.Stmt{nested}
		return stmt, nil
	}

	stmt.Else, err = p.parseBlock()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// func id ( params ) { body }
func (p *Parser) parseFunc() (ast.Stmt, error) {
	at := p.nextToken().Pos

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	params := []string{}
	seen := map[string]bool{}
	for !p.at(lexer.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, p.missing(lexer.RPAREN)
			}
		}
		param, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if seen[param] {
			return nil, &SyntaxError{
				Msg: fmt.Sprintf("Duplicate parameter `%s` in function `%s`", param, name),
				Pos: p.peek(-1).Pos,
				Err: ErrDuplicateArg,
			}
		}
		seen[param] = true
		params = append(params, param)
	}
	p.nextToken()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDef{Name: name, Params: params, Body: body, At: at}, nil
}

// model id { field (: type)? (, field (: type)?)* ,? }
func (p *Parser) parseModel() (ast.Stmt, error) {
	at := p.nextToken().Pos

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	fields := []string{}
	seen := map[string]bool{}
	for !p.at(lexer.RBRACE) {
		fieldTok := p.current()
		field, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if seen[field] {
			return nil, &SyntaxError{
				Msg: fmt.Sprintf("Duplicate field `%s` in model `%s`", field, name),
				Pos: fieldTok.Pos,
				Err: ErrDuplicateField,
			}
		}
		seen[field] = true
		fields = append(fields, field)

		// type annotations are accepted and ignored
		if p.accept(lexer.COLON) {
			if _, err := p.expectIdent(); err != nil {
				return nil, err
			}
		}

		if !p.accept(lexer.COMMA) {
			break
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}

	return &ast.ModelDef{Name: name, Fields: fields, At: at}, nil
}

// parseSimpleStatement parses an assignment or an expression statement
func (p *Parser) parseSimpleStatement() (ast.Stmt, error) {
	at := p.current().Pos

	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if !p.at(lexer.ASSIGN) {
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: lhs, At: at}, nil
	}

	var stmt *ast.Assign
	switch target := lhs.(type) {
	case *ast.Identifier:
		stmt = &ast.Assign{Target: target.Name, At: at}
	case *ast.Member:
		stmt = &ast.Assign{Target: target.Base, Path: target.Path, At: at}
	default:
		return nil, p.errorAt(ErrUnexpectedToken, "Invalid assignment target")
	}
	p.nextToken()

	stmt.Value, err = p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return stmt, nil
}
