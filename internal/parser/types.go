package parser

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

// parseType parses a type annotation with the parser on its first token,
// leaving it on the last one.
//
//	Int
//	fn(Int, Int) -> Bool
func (p *Parser) parseType() ast.Type {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.FN:
		return p.parseFunctionType()
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
			diagnostics.ErrP001,
			p.curToken,
			"unexpected %s, expected a type", describeToken(p.curToken),
		))
		return nil
	}
}

func (p *Parser) parseFunctionType() ast.Type {
	ft := &ast.FunctionType{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		for {
			p.nextToken()
			param := p.parseType()
			if param == nil {
				return nil
			}
			ft.Parameters = append(ft.Parameters, param)

			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	ft.ReturnType = p.parseType()
	if ft.ReturnType == nil {
		return nil
	}

	return ft
}
