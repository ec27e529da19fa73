package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	errors       []*diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize runs the lexer over input and returns every token up to and
// including EOF, plus any lexical errors.
func Tokenize(input string) ([]token.Token, []*diagnostics.DiagnosticError) {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, l.errors
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// skipWhitespace also discards # comments, which run to end of line. The
// newline itself is kept, since it terminates statements.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine, startColumn := l.line, l.column
	startOffset := l.position

	make1 := func(tt token.TokenType) token.Token {
		lexeme := string(l.ch)
		l.readChar()
		return l.finish(tt, lexeme, startLine, startColumn, startOffset)
	}
	make2 := func(tt token.TokenType) token.Token {
		lexeme := string(l.ch) + string(l.peekChar())
		l.readChar()
		l.readChar()
		return l.finish(tt, lexeme, startLine, startColumn, startOffset)
	}

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: startLine, Column: startColumn, Offset: startOffset, EndOffset: startOffset}
	case '\n':
		return make1(token.NEWLINE)
	case '=':
		if l.peekChar() == '=' {
			return make2(token.EQ)
		}
		return make1(token.ASSIGN)
	case '+':
		return make1(token.PLUS)
	case '-':
		if l.peekChar() == '>' {
			return make2(token.ARROW)
		}
		return make1(token.MINUS)
	case '*':
		return make1(token.ASTERISK)
	case '/':
		return make1(token.SLASH)
	case '!':
		if l.peekChar() == '=' {
			return make2(token.NOT_EQ)
		}
		return l.illegal(startLine, startColumn, startOffset)
	case '<':
		if l.peekChar() == '=' {
			return make2(token.LT_EQ)
		}
		return make1(token.LT)
	case '>':
		if l.peekChar() == '=' {
			return make2(token.GT_EQ)
		}
		return make1(token.GT)
	case '|':
		if l.peekChar() == '>' {
			return make2(token.PIPE)
		}
		return l.illegal(startLine, startColumn, startOffset)
	case ',':
		return make1(token.COMMA)
	case ':':
		return make1(token.COLON)
	case '(':
		return make1(token.LPAREN)
	case ')':
		return make1(token.RPAREN)
	case '{':
		return make1(token.LBRACE)
	case '}':
		return make1(token.RBRACE)
	case '"':
		return l.readString(startLine, startColumn, startOffset)
	default:
		if isLetter(l.ch) {
			lexeme := l.readIdentifier()
			return l.finish(token.LookupIdent(lexeme), lexeme, startLine, startColumn, startOffset)
		}
		if isDigit(l.ch) {
			return l.readNumber(startLine, startColumn, startOffset)
		}
		return l.illegal(startLine, startColumn, startOffset)
	}
}

func (l *Lexer) finish(tt token.TokenType, lexeme string, line, column, offset int) token.Token {
	return token.Token{
		Type:      tt,
		Lexeme:    lexeme,
		Literal:   lexeme,
		Line:      line,
		Column:    column,
		Offset:    offset,
		EndOffset: l.position,
	}
}

func (l *Lexer) illegal(line, column, offset int) token.Token {
	lexeme := string(l.ch)
	l.readChar()
	tok := l.finish(token.ILLEGAL, lexeme, line, column, offset)
	l.errors = append(l.errors, diagnostics.NewErrorf(diagnostics.ErrL001, tok, "unexpected character %q", lexeme))
	return tok
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber(line, column, offset int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	tt := token.INT
	if l.ch == '.' && isDigit(l.peekChar()) {
		tt = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.finish(tt, l.input[start:l.position], line, column, offset)
}

func (l *Lexer) readString(line, column, offset int) token.Token {
	var value []rune
	l.readChar() // consume opening quote

	for {
		switch l.ch {
		case '"':
			l.readChar() // consume closing quote
			tok := l.finish(token.STRING, l.input[offset:l.position], line, column, offset)
			tok.Literal = string(value)
			return tok
		case 0, '\n':
			tok := l.finish(token.ILLEGAL, l.input[offset:l.position], line, column, offset)
			l.errors = append(l.errors, diagnostics.NewError(diagnostics.ErrL001, tok, "unterminated string literal"))
			return tok
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case 'r':
				value = append(value, '\r')
			case '\\':
				value = append(value, '\\')
			case '"':
				value = append(value, '"')
			default:
				esc := fmt.Sprintf("\\%c", l.ch)
				tok := token.Token{Type: token.ILLEGAL, Lexeme: esc, Literal: esc, Line: l.line, Column: l.column, Offset: l.position - 1, EndOffset: l.position + 1}
				l.errors = append(l.errors, diagnostics.NewErrorf(diagnostics.ErrL001, tok, "unknown escape sequence %q", esc))
				value = append(value, l.ch)
			}
			l.readChar()
		default:
			value = append(value, l.ch)
			l.readChar()
		}
	}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
