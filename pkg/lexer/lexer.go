package lexer

import (
	"fmt"
	"strconv"
)

type Lexer struct {
	input    string // input string to be tokenized
	length   int    // length of the input string
	position int    // current position in the input string
	line     int    // current line number for error reporting
	column   int    // current column number for error reporting
}

// IllegalTokenError reports a character sequence no token pattern accepts.
type IllegalTokenError struct {
	Lexeme string
	Pos    Position
}

func (e *IllegalTokenError) Error() string {
	return fmt.Sprintf("illegal token %q at Line: %d, Column %d", e.Lexeme, e.Pos.Line, e.Pos.Column)
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:    s,
		length:   len(s),
		position: 0,
		line:     1,
		column:   1,
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	// End of input
	if l.position >= l.length {
		return NewToken(EOF, "", "", l.currentPosition())
	}

	pos := l.currentPosition()
	remaining := l.input[l.position:]
	tokenType, lexeme, matched := MatchToken(remaining)

	if !matched {
		l.advance(1)
		return NewToken(ILLEGAL, lexeme, "", pos)
	}

	var literal string
	switch tokenType {
	case INT, FLOAT:
		literal = lexeme
	case STRING:
		// Remove the surrounding quotes and resolve escapes
		unquoted, err := strconv.Unquote(lexeme)
		if err != nil {
			l.advance(len(lexeme))
			return NewToken(ILLEGAL, lexeme, "", pos)
		}
		literal = unquoted
	case ID:
		literal = lexeme
	}

	l.advance(len(lexeme))
	return NewToken(tokenType, lexeme, literal, pos)
}

// Tokenize drains the lexer, returning every token up to and including EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			return nil, &IllegalTokenError{Lexeme: tok.Lexeme, Pos: tok.Pos}
		}

		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol

	return token
}

// Check if there are more characters to read
func (l *Lexer) HasMore() bool {
	return l.position < l.length
}

// Skip whitespace and comments. Both '#' and '//' run to the end of the line.
func (l *Lexer) skipWhitespace() {
	for l.position < l.length {
		ch := l.input[l.position]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			l.advance(1)
		} else if ch == '#' || (ch == '/' && l.position+1 < l.length && l.input[l.position+1] == '/') {
			for l.position < l.length && l.input[l.position] != '\n' {
				l.advance(1)
			}
		} else {
			break
		}
	}
}

// Advance the lexer position by n characters
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}
