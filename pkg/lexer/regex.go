package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

func newTokenRegex(raw string) tokenRegex {
	return tokenRegex{regexp.MustCompile(raw), raw}
}

// Token regex patterns. Keywords are matched as ID and resolved through Keywords.
var tokenRegexes = map[TokenType]tokenRegex{
	LE: newTokenRegex(`^<=`),
	GE: newTokenRegex(`^>=`),
	EQ: newTokenRegex(`^==`),
	NE: newTokenRegex(`^!=`),

	ASSIGN: newTokenRegex(`^=`),
	PLUS:   newTokenRegex(`^\+`),
	MINUS:  newTokenRegex(`^-`),
	MULT:   newTokenRegex(`^\*`),
	DIV:    newTokenRegex(`^/`),
	MOD:    newTokenRegex(`^%`),
	LT:     newTokenRegex(`^<`),
	GT:     newTokenRegex(`^>`),
	DOT:    newTokenRegex(`^\.`),

	SEMICOLON: newTokenRegex(`^;`),
	COMMA:     newTokenRegex(`^,`),
	COLON:     newTokenRegex(`^:`),
	LPAREN:    newTokenRegex(`^\(`),
	RPAREN:    newTokenRegex(`^\)`),
	LBRACE:    newTokenRegex(`^\{`),
	RBRACE:    newTokenRegex(`^\}`),
	LSBRACE:   newTokenRegex(`^\[`),
	RSBRACE:   newTokenRegex(`^\]`),

	FLOAT:  newTokenRegex(`^\d+\.\d+([eE][+-]?\d+)?`),
	INT:    newTokenRegex(`^\d+`),
	STRING: newTokenRegex(`^"([^"\\\n]|\\.)*"`),
	ID:     newTokenRegex(`^[a-zA-Z_][a-zA-Z0-9_]*`),
}

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	LE, GE, EQ, NE, ASSIGN, PLUS, MINUS, MULT, DIV, MOD, LT, GT,
	SEMICOLON, COMMA, COLON, LPAREN, RPAREN, LBRACE, RBRACE, LSBRACE, RSBRACE,
	FLOAT, INT, DOT, STRING, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// MatchToken matches the first token at the start of the string.
// Identifiers that spell a keyword come back as that keyword.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				if tokenType == ID {
					if kw, ok := IsKeyword(match); ok {
						return kw, match, true
					}
				}
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
