package lexer_test

import (
	"errors"
	"sl/pkg/lexer"
	"testing"
)

func TestTokens(t *testing.T) {
	input := "model Pt { x, y }\n" +
		"func main() {\n" +
		"	let p = new Pt;\n" +
		"	p.x = 3.5;\n" +
		"	for i : 10 { print i % 2 == 0 and not false; }\n" +
		"	if p.x >= 1.0 { return excel; } else { return nil; }\n" +
		"}"
	mylexer := lexer.NewLexer(input)

	expectedTokens := []lexer.TokenType{
		lexer.MODEL, lexer.ID, lexer.LBRACE, lexer.ID, lexer.COMMA, lexer.ID, lexer.RBRACE,
		lexer.FUNC, lexer.ID, lexer.LPAREN, lexer.RPAREN, lexer.LBRACE,
		lexer.LET, lexer.ID, lexer.ASSIGN, lexer.NEW, lexer.ID, lexer.SEMICOLON,
		lexer.ID, lexer.DOT, lexer.ID, lexer.ASSIGN, lexer.FLOAT, lexer.SEMICOLON,
		lexer.FOR, lexer.ID, lexer.COLON, lexer.INT, lexer.LBRACE,
		lexer.PRINT, lexer.ID, lexer.MOD, lexer.INT, lexer.EQ, lexer.INT, lexer.AND, lexer.NOT, lexer.FALSE, lexer.SEMICOLON,
		lexer.RBRACE,
		lexer.IF, lexer.ID, lexer.DOT, lexer.ID, lexer.GE, lexer.FLOAT, lexer.LBRACE,
		lexer.RETURN, lexer.EXCEL, lexer.SEMICOLON, lexer.RBRACE,
		lexer.ELSE, lexer.LBRACE, lexer.RETURN, lexer.NIL, lexer.SEMICOLON, lexer.RBRACE,
		lexer.RBRACE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     lexer.TokenType
		literal string
	}{
		{"0", lexer.INT, "0"},
		{"42", lexer.INT, "42"},
		{"3.14", lexer.FLOAT, "3.14"},
		{"1.5e10", lexer.FLOAT, "1.5e10"},
		{"2.0E-3", lexer.FLOAT, "2.0E-3"},
	}

	for _, tt := range tests {
		tok := lexer.NewLexer(tt.input).NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.literal {
			t.Errorf("%q: expected %s %q, got %s %q", tt.input, tt.typ, tt.literal, tok.Type, tok.Literal)
		}
	}
}

func TestStrings(t *testing.T) {
	tok := lexer.NewLexer(`"hello\n\"sl\""`).NextToken()
	if tok.Type != lexer.STRING {
		t.Fatalf("expected string, got %s", tok.Type)
	}
	if tok.Literal != "hello\n\"sl\"" {
		t.Errorf("unexpected literal %q", tok.Literal)
	}
}

func TestComments(t *testing.T) {
	input := "# leading comment\nlet x = 1; // trailing\n# another\nx"
	toks, err := lexer.NewLexer(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []lexer.TokenType{lexer.LET, lexer.ID, lexer.ASSIGN, lexer.INT, lexer.SEMICOLON, lexer.ID, lexer.EOF}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(toks), toks)
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Errorf("Token %d: expected %s, got %s", i, typ, toks[i].Type)
		}
	}

	if toks[5].Pos.Line != 4 || toks[5].Pos.Column != 1 {
		t.Errorf("expected x at 4:1, got %s", toks[5].Pos)
	}
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	for _, input := range []string{"letter", "newer", "iffy", "models", "nil_"} {
		tok := lexer.NewLexer(input).NextToken()
		if tok.Type != lexer.ID || tok.Literal != input {
			t.Errorf("%q: expected identifier, got %s", input, tok.Type)
		}
	}
}

func TestIllegalToken(t *testing.T) {
	_, err := lexer.NewLexer("let x = 1 @ 2;").Tokenize()

	var illegal *lexer.IllegalTokenError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTokenError, got %v", err)
	}
	if illegal.Lexeme != "@" || illegal.Pos.Column != 11 {
		t.Errorf("unexpected error detail: %+v", illegal)
	}
}

func TestPeek(t *testing.T) {
	l := lexer.NewLexer("let x")
	if l.Peek().Type != lexer.LET {
		t.Fatal("Peek should see let")
	}
	if l.NextToken().Type != lexer.LET {
		t.Fatal("Peek must not consume")
	}
	if l.NextToken().Type != lexer.ID {
		t.Fatal("expected identifier after let")
	}
	if l.HasMore() {
		t.Error("lexer should be exhausted")
	}
}
