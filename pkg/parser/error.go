package parser

import (
	"errors"
	"fmt"

	"sl/pkg/lexer"
)

var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrInvalidLiteral  = errors.New("invalid literal")
	ErrDuplicateArg    = errors.New("function has duplicate arguments")
	ErrDuplicateField  = errors.New("model has duplicate fields")
)

// SyntaxError is a parse failure at a source position.
type SyntaxError struct {
	Msg string
	Pos lexer.Position
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at Line: %d, Column %d", e.Msg, e.Pos.Line, e.Pos.Column)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// errorAt builds a SyntaxError at the current token. Running into EOF always
// wraps ErrUnexpectedEOF.
func (p *Parser) errorAt(kind error, msg string) error {
	tok := p.current()
	if tok.Type == lexer.EOF && kind == ErrUnexpectedToken {
		kind = ErrUnexpectedEOF
	}
	return &SyntaxError{Msg: msg, Pos: tok.Pos, Err: kind}
}

// missing reports that the current token is not the expected one
func (p *Parser) missing(expected lexer.TokenType) error {
	return p.errorAt(ErrUnexpectedToken, p.categorizeError(expected, p.current()))
}

// unexpected reports a token that cannot start the construct being parsed
func (p *Parser) unexpected(context string) error {
	tok := p.current()
	if tok.Type == lexer.EOF {
		return p.errorAt(ErrUnexpectedEOF, fmt.Sprintf("Unexpected end of input in %s", context))
	}
	return p.errorAt(ErrUnexpectedToken, fmt.Sprintf("Unexpected token '%s' in %s", tok.Lexeme, context))
}

// categorizeError provides a specific error message based on expected symbol and current token
func (p *Parser) categorizeError(expected lexer.TokenType, current lexer.Token) string {
	// Delimiters
	switch expected {
	case lexer.RPAREN:
		return "Missing closing parenthesis"
	case lexer.RBRACE:
		return "Missing closing brace"
	case lexer.LBRACE:
		if current.Type == lexer.LPAREN {
			return "Wrong bracket type - expected brace"
		}
		return "Missing opening brace"
	case lexer.SEMICOLON:
		return "Missing semicolon"
	case lexer.ASSIGN:
		return "Missing assignment operator"
	case lexer.COLON:
		return "Missing colon"
	case lexer.LPAREN:
		if current.Type == lexer.LBRACE {
			return "Wrong bracket type - expected parenthesis"
		}
		return "Missing opening parenthesis"
	}

	// Identifiers
	if expected == lexer.ID {
		if current.Type == lexer.ASSIGN || current.Type == lexer.SEMICOLON {
			return "Missing identifier"
		}
		if current.Type.GetCategory() == lexer.KEYWORD {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	}

	return fmt.Sprintf("Expected '%s', found '%s'", expected, current.Type)
}
