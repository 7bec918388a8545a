package parser

import (
	"fmt"
	"strconv"

	"sl/pkg/ast"
	"sl/pkg/lexer"
)

// Binary operator levels, loosest first
var (
	orOps         = map[lexer.TokenType]ast.BinaryOp{lexer.OR: ast.OpOr}
	andOps        = map[lexer.TokenType]ast.BinaryOp{lexer.AND: ast.OpAnd}
	equalityOps   = map[lexer.TokenType]ast.BinaryOp{lexer.EQ: ast.OpEq, lexer.NE: ast.OpNe}
	comparisonOps = map[lexer.TokenType]ast.BinaryOp{lexer.LT: ast.OpLt, lexer.GT: ast.OpGt, lexer.LE: ast.OpLe, lexer.GE: ast.OpGe}
	additiveOps   = map[lexer.TokenType]ast.BinaryOp{lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub}
	multOps       = map[lexer.TokenType]ast.BinaryOp{lexer.MULT: ast.OpMul, lexer.DIV: ast.OpDiv, lexer.MOD: ast.OpMod}
)

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseBinary(orOps, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseBinary(andOps, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinary(equalityOps, p.parseComparison)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseBinary(comparisonOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinary(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinary(multOps, p.parseUnary)
}

// parseBinary parses a left-associative chain of operators from ops over operands from next
func (p *Parser) parseBinary(ops map[lexer.TokenType]ast.BinaryOp, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.current().Type]
		if !ok {
			return left, nil
		}
		at := p.nextToken().Pos

		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right, At: at}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	var op ast.UnaryOp
	switch p.current().Type {
	case lexer.NOT:
		op = ast.OpNot
	case lexer.MINUS:
		op = ast.OpNeg
	case lexer.TYPEOF:
		op = ast.OpTypeof
	default:
		return p.parseAtom()
	}
	at := p.nextToken().Pos

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, Operand: operand, At: at}, nil
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.INT:
		p.nextToken()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Msg: fmt.Sprintf("Integer literal %s out of range", tok.Lexeme), Pos: tok.Pos, Err: ErrInvalidLiteral}
		}
		return &ast.Literal{Kind: ast.LitInt, Int: n, At: tok.Pos}, nil

	case lexer.FLOAT:
		p.nextToken()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &SyntaxError{Msg: fmt.Sprintf("Float literal %s out of range", tok.Lexeme), Pos: tok.Pos, Err: ErrInvalidLiteral}
		}
		return &ast.Literal{Kind: ast.LitFloat, Float: f, At: tok.Pos}, nil

	case lexer.STRING:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitString, Str: tok.Literal, At: tok.Pos}, nil

	case lexer.TRUE, lexer.FALSE:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitBool, Bool: tok.Type == lexer.TRUE, At: tok.Pos}, nil

	case lexer.NIL:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitNil, At: tok.Pos}, nil

	case lexer.EXCEL, lexer.EMPTY, lexer.EXILE:
		p.nextToken()
		teer := map[lexer.TokenType]ast.Teer{lexer.EXCEL: ast.Excel, lexer.EMPTY: ast.Empty, lexer.EXILE: ast.Exile}[tok.Type]
		return &ast.Literal{Kind: ast.LitTeer, Teer: teer, At: tok.Pos}, nil

	case lexer.NEW:
		p.nextToken()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		return &ast.New{Model: name, At: tok.Pos}, nil

	case lexer.ID:
		p.nextToken()
		switch p.current().Type {
		case lexer.DOT:
			return p.parseMember(tok)
		case lexer.LPAREN:
			return p.parseCall(tok)
		default:
			return &ast.Identifier{Name: tok.Literal, At: tok.Pos}, nil
		}

	case lexer.LPAREN:
		p.nextToken()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Paren{Inner: inner, At: tok.Pos}, nil
	}

	return nil, p.unexpected("expression")
}

// parseMember parses the `.field` chain following base
func (p *Parser) parseMember(base lexer.Token) (ast.Expr, error) {
	member := &ast.Member{Base: base.Literal, At: base.Pos}
	for p.accept(lexer.DOT) {
		field, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		member.Path = append(member.Path, field)
	}
	return member, nil
}

// parseCall parses the argument list following the callee name
func (p *Parser) parseCall(name lexer.Token) (ast.Expr, error) {
	p.nextToken() // (

	call := &ast.Call{Name: name.Literal, Args: []ast.Expr{}, At: name.Pos}
	for !p.at(lexer.RPAREN) {
		if len(call.Args) > 0 {
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, p.missing(lexer.RPAREN)
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	p.nextToken() // )

	return call, nil
}
