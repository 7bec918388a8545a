package parser

import (
	"sl/pkg/ast"
	"sl/pkg/lexer"
)

type Parser struct {
	tokens []lexer.Token // token stream, always terminated by EOF
	cur    int           // index of the current token
	err    error         // tokenizer error, reported by Parse
}

// NewParser creates a new parser instance over the whole token stream of l
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{}

	tokens, err := l.Tokenize()
	if err != nil {
		p.err = err
		tokens = []lexer.Token{lexer.NewToken(lexer.EOF, "", "", lexer.Position{})}
	}
	p.tokens = tokens

	return p
}

// Parse parses the input program. It stops at the first syntax error.
func (p *Parser) Parse() (*ast.Program, error) {
	if p.err != nil {
		return nil, p.err
	}

	program := &ast.Program{}
	for !p.at(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Stmts = append(program.Stmts, stmt)
	}

	return program, nil
}

// ParseSource is a shorthand for lexing and parsing a whole source string
func ParseSource(src string) (*ast.Program, error) {
	return NewParser(lexer.NewLexer(src)).Parse()
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	return p.tokens[p.cur]
}

// peek returns the token n positions ahead, clamped to EOF
func (p *Parser) peek(n int) lexer.Token {
	if p.cur+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.cur+n]
}

// nextToken advances to the next token, never moving past EOF
func (p *Parser) nextToken() lexer.Token {
	tok := p.current()
	if tok.Type != lexer.EOF {
		p.cur++
	}
	return tok
}

func (p *Parser) at(t lexer.TokenType) bool {
	return p.current().Type == t
}

// accept consumes the current token if it has type t
func (p *Parser) accept(t lexer.TokenType) bool {
	if p.at(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes a token of type t or reports what is missing
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.at(t) {
		return p.nextToken(), nil
	}
	return lexer.Token{}, p.missing(t)
}

func (p *Parser) expectIdent() (string, error) {
	tok, err := p.expect(lexer.ID)
	if err != nil {
		return "", err
	}
	return tok.Literal, nil
}
