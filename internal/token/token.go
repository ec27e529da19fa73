package token

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	LT       TokenType = "<"
	GT       TokenType = ">"
	LT_EQ    TokenType = "<="
	GT_EQ    TokenType = ">="
	PIPE     TokenType = "|>"
	ARROW    TokenType = "->"

	// Delimiters
	COMMA  TokenType = ","
	COLON  TokenType = ":"
	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	LET   TokenType = "LET"
	FN    TokenType = "FN"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	TODO  TokenType = "TODO"
	PANIC TokenType = "PANIC"
)

var keywords = map[string]TokenType{
	"let":   LET,
	"fn":    FN,
	"true":  TRUE,
	"false": FALSE,
	"todo":  TODO,
	"panic": PANIC,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexeme with its source position. Lexeme holds the raw
// source text, Literal the decoded value (they differ for strings, where
// Lexeme keeps the quotes and escapes). Offset and EndOffset are byte
// positions into the source; synthetic tokens made by the analyzer may carry
// positions that do not match the lexeme length.
type Token struct {
	Type      TokenType
	Lexeme    string
	Literal   string
	Line      int
	Column    int
	Offset    int
	EndOffset int
}

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int
	End   int
}

func (t Token) Span() Span {
	return Span{Start: t.Offset, End: t.EndOffset}
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}
