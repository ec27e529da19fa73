package lexer_test

import (
	"strings"
	"testing"

	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/token"
)

// tokenize asserts the input lexes without errors.
func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, errs := lexer.Tokenize(input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("unexpected lex errors:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return tokens
}

func TestNextTokenSequence(t *testing.T) {
	input := `let x = 1 |> inc`

	want := []struct {
		typ       token.TokenType
		lexeme    string
		offset    int
		endOffset int
	}{
		{token.LET, "let", 0, 3},
		{token.IDENT, "x", 4, 5},
		{token.ASSIGN, "=", 6, 7},
		{token.INT, "1", 8, 9},
		{token.PIPE, "|>", 10, 12},
		{token.IDENT, "inc", 13, 16},
		{token.EOF, "", 16, 16},
	}

	tokens := tokenize(t, input)
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Type != w.typ {
			t.Errorf("token %d: expected type %s, got %s", i, w.typ, tok.Type)
		}
		if tok.Lexeme != w.lexeme {
			t.Errorf("token %d: expected lexeme %q, got %q", i, w.lexeme, tok.Lexeme)
		}
		if tok.Offset != w.offset || tok.EndOffset != w.endOffset {
			t.Errorf("token %d (%s): expected span %d..%d, got %d..%d",
				i, w.lexeme, w.offset, w.endOffset, tok.Offset, tok.EndOffset)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / == != < > <= >= -> |> = : ,`
	want := []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ, token.GT_EQ,
		token.ARROW, token.PIPE, token.ASSIGN, token.COLON, token.COMMA,
		token.EOF,
	}

	tokens := tokenize(t, input)
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d: expected %s, got %s", i, w, tokens[i].Type)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `let fn true false todo panic fnord`
	want := []token.TokenType{
		token.LET, token.FN, token.TRUE, token.FALSE,
		token.TODO, token.PANIC, token.IDENT, token.EOF,
	}

	tokens := tokenize(t, input)
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d: expected %s, got %s", i, w, tokens[i].Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	tokens := tokenize(t, `1 42 3.14 0.5`)
	want := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.INT, "1"},
		{token.INT, "42"},
		{token.FLOAT, "3.14"},
		{token.FLOAT, "0.5"},
		{token.EOF, ""},
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Lexeme != w.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q", i, w.typ, w.lexeme, tokens[i].Type, tokens[i].Lexeme)
		}
	}
}

func TestNumberDotWithoutDigitsIsNotFloat(t *testing.T) {
	// `1.` is an INT followed by an illegal dot, not a float.
	tokens, errs := lexer.Tokenize(`1.`)
	if tokens[0].Type != token.INT {
		t.Errorf("expected INT, got %s", tokens[0].Type)
	}
	if tokens[1].Type != token.ILLEGAL {
		t.Errorf("expected ILLEGAL, got %s", tokens[1].Type)
	}
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrL001 {
		t.Errorf("expected one L001 error, got %v", errs)
	}
}

func TestBarAloneIsIllegal(t *testing.T) {
	tokens, errs := lexer.Tokenize(`a | b`)
	if tokens[1].Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for bare |, got %s", tokens[1].Type)
	}
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrL001 {
		t.Fatalf("expected one L001 error, got %v", errs)
	}
}

// The step variable the analyzer binds is spelled with a leading dollar sign,
// which the lexer rejects. This is what keeps user code from naming it.
func TestDollarIsIllegal(t *testing.T) {
	tokens, errs := lexer.Tokenize(`$pipe`)
	if tokens[0].Type != token.ILLEGAL || tokens[0].Lexeme != "$" {
		t.Fatalf("expected ILLEGAL %q, got %s %q", "$", tokens[0].Type, tokens[0].Lexeme)
	}
	if tokens[1].Type != token.IDENT || tokens[1].Lexeme != "pipe" {
		t.Fatalf("expected IDENT %q after the dollar, got %s %q", "pipe", tokens[1].Type, tokens[1].Lexeme)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
}

func TestString(t *testing.T) {
	tokens := tokenize(t, `"hello"`)
	tok := tokens[0]
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Lexeme != `"hello"` {
		t.Errorf("expected raw lexeme %q, got %q", `"hello"`, tok.Lexeme)
	}
	if tok.Literal != "hello" {
		t.Errorf("expected decoded literal %q, got %q", "hello", tok.Literal)
	}
	if tok.Offset != 0 || tok.EndOffset != 7 {
		t.Errorf("expected span 0..7, got %d..%d", tok.Offset, tok.EndOffset)
	}
}

func TestStringEscapes(t *testing.T) {
	tokens := tokenize(t, `"a\nb\t\"c\\"`)
	if got, want := tokens[0].Literal, "a\nb\t\"c\\"; got != want {
		t.Errorf("expected literal %q, got %q", want, got)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, errs := lexer.Tokenize(`"abc`)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	if errs[0].Code != diagnostics.ErrL001 {
		t.Errorf("expected L001, got %s", errs[0].Code)
	}
	if !strings.Contains(errs[0].Message, "unterminated") {
		t.Errorf("expected unterminated message, got %q", errs[0].Message)
	}
}

func TestUnknownEscapeKeepsCharacter(t *testing.T) {
	tokens, errs := lexer.Tokenize(`"a\qb"`)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	if tokens[0].Type != token.STRING || tokens[0].Literal != "aqb" {
		t.Errorf("expected STRING %q, got %s %q", "aqb", tokens[0].Type, tokens[0].Literal)
	}
}

func TestCommentsRunToEndOfLine(t *testing.T) {
	tokens := tokenize(t, "1 # ignored |> let\n2")
	want := []token.TokenType{token.INT, token.NEWLINE, token.INT, token.EOF}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d: expected %s, got %s", i, w, tokens[i].Type)
		}
	}
}

func TestNewlinesAreTokens(t *testing.T) {
	tokens := tokenize(t, "a\n\nb")
	want := []token.TokenType{token.IDENT, token.NEWLINE, token.NEWLINE, token.IDENT, token.EOF}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Errorf("token %d: expected %s, got %s", i, w, tokens[i].Type)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	input := "let a = 1\nlet b = 2"
	tokens := tokenize(t, input)

	// tokens: let a = 1 NL let b = 2 EOF
	checks := []struct {
		idx    int
		lexeme string
		line   int
		column int
	}{
		{0, "let", 1, 1},
		{1, "a", 1, 5},
		{3, "1", 1, 9},
		{5, "let", 2, 1},
		{6, "b", 2, 5},
	}
	for _, c := range checks {
		tok := tokens[c.idx]
		if tok.Lexeme != c.lexeme {
			t.Fatalf("token %d: expected lexeme %q, got %q", c.idx, c.lexeme, tok.Lexeme)
		}
		if tok.Line != c.line || tok.Column != c.column {
			t.Errorf("token %q: expected %d:%d, got %d:%d", c.lexeme, c.line, c.column, tok.Line, tok.Column)
		}
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	tokens := tokenize(t, "héllo")
	if tokens[0].Type != token.IDENT || tokens[0].Lexeme != "héllo" {
		t.Errorf("expected IDENT %q, got %s %q", "héllo", tokens[0].Type, tokens[0].Lexeme)
	}
	// é is two bytes; the span is byte-based
	if tokens[0].EndOffset != 6 {
		t.Errorf("expected byte end offset 6, got %d", tokens[0].EndOffset)
	}
}
