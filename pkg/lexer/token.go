package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	LET    // let
	FUNC   // func
	TYPEOF // typeof
	IF     // if
	ELSE   // else
	MODEL  // model
	PRINT  // print
	FOR    // for
	WHILE  // while
	RETURN // return
	NEW    // new
	AND    // and
	OR     // or
	NOT    // not
	TRUE   // true
	FALSE  // false
	NIL    // nil
	EXCEL  // excel
	EMPTY  // empty
	EXILE  // exile

	ID     // id (identifier)
	INT    // integer literal
	FLOAT  // float literal
	STRING // string literal

	ASSIGN // =
	PLUS   // +
	MINUS  // -
	MULT   // *
	DIV    // /
	MOD    // %
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	EQ     // ==
	NE     // !=
	DOT    // .

	SEMICOLON // ;
	COMMA     // ,
	COLON     // :
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LSBRACE   // [
	RSBRACE   // ]

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"let":    LET,
	"func":   FUNC,
	"typeof": TYPEOF,
	"if":     IF,
	"else":   ELSE,
	"model":  MODEL,
	"print":  PRINT,
	"for":    FOR,
	"while":  WHILE,
	"return": RETURN,
	"new":    NEW,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"excel":  EXCEL,
	"empty":  EMPTY,
	"exile":  EXILE,
}

var tokenNames = map[TokenType]string{
	LET:       "let",
	FUNC:      "func",
	TYPEOF:    "typeof",
	IF:        "if",
	ELSE:      "else",
	MODEL:     "model",
	PRINT:     "print",
	FOR:       "for",
	WHILE:     "while",
	RETURN:    "return",
	NEW:       "new",
	AND:       "and",
	OR:        "or",
	NOT:       "not",
	TRUE:      "true",
	FALSE:     "false",
	NIL:       "nil",
	EXCEL:     "excel",
	EMPTY:     "empty",
	EXILE:     "exile",
	ID:        "id",
	INT:       "int",
	FLOAT:     "float",
	STRING:    "string",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	MULT:      "*",
	DIV:       "/",
	MOD:       "%",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	EQ:        "==",
	NE:        "!=",
	DOT:       ".",
	SEMICOLON: ";",
	COMMA:     ",",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LSBRACE:   "[",
	RSBRACE:   "]",
	ILLEGAL:   "illegal",
	EOF:       "$",
}

// TokenToString converts a TokenType to its string representation
func (t Token) TokenToString() (string, bool) {
	str, ok := tokenNames[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case LET, FUNC, TYPEOF, IF, ELSE, MODEL, PRINT, FOR, WHILE, RETURN, NEW,
		AND, OR, NOT, TRUE, FALSE, NIL, EXCEL, EMPTY, EXILE:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case INT, FLOAT, STRING:
		return LITERAL
	case ASSIGN, PLUS, MINUS, MULT, DIV, MOD, LT, GT, LE, GE, EQ, NE, DOT:
		return OPERATOR
	case SEMICOLON, COMMA, COLON, LPAREN, RPAREN, LBRACE, RBRACE, LSBRACE, RSBRACE:
		return DELIMITER
	default:
		return NONE
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}
