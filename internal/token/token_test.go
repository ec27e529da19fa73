package token_test

import (
	"testing"

	"github.com/funvibe/funpipe/internal/token"
)

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		ident string
		want  token.TokenType
	}{
		{"let", token.LET},
		{"fn", token.FN},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"todo", token.TODO},
		{"panic", token.PANIC},
		{"letx", token.IDENT},
		{"x", token.IDENT},
		{"_", token.IDENT},
	}
	for _, tc := range cases {
		if got := token.LookupIdent(tc.ident); got != tc.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tc.ident, got, tc.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := token.Span{Start: 5, End: 10}
	b := token.Span{Start: 8, End: 20}

	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Errorf("Cover = %+v, want {5 20}", got)
	}

	// Cover is symmetric
	got = b.Cover(a)
	if got.Start != 5 || got.End != 20 {
		t.Errorf("Cover reversed = %+v, want {5 20}", got)
	}

	// Covering a contained span changes nothing
	inner := token.Span{Start: 6, End: 9}
	got = a.Cover(inner)
	if got != a {
		t.Errorf("Cover contained = %+v, want %+v", got, a)
	}
}

func TestTokenSpan(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Lexeme: "abc", Offset: 4, EndOffset: 7}
	if got := tok.Span(); got.Start != 4 || got.End != 7 {
		t.Errorf("Span = %+v, want {4 7}", got)
	}
}
