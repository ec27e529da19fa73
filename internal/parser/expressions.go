package parser

import (
	"strconv"

	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP003,
			p.curToken,
			"expression too complex: recursion depth limit exceeded",
		))
		// Skip the rest of the statement to avoid a cascade of errors.
		p.skipToStatementBoundary()
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for {
		// A newline usually ends the expression, unless the next line
		// continues it with a pipe.
		if p.peekTokenIs(token.NEWLINE) {
			if !p.hasContinuationOperator() {
				break
			}
			for p.peekTokenIs(token.NEWLINE) {
				p.nextToken()
			}
		}

		if precedence >= p.peekPrecedence() {
			break
		}

		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

// hasContinuationOperator looks past newlines for an operator that continues
// the current expression on the next line.
func (p *Parser) hasContinuationOperator() bool {
	for i := p.pos + 1; i < len(p.tokens); i++ {
		if p.tokens[i].Type == token.NEWLINE {
			continue
		}
		return p.tokens[i].Type == token.PIPE
	}
	return false
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
			diagnostics.ErrP002,
			p.curToken,
			"could not parse %q as integer", p.curToken.Lexeme,
		))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Lexeme, 64)
	if err != nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewErrorf(
			diagnostics.ErrP002,
			p.curToken,
			"could not parse %q as float", p.curToken.Lexeme,
		))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseTodo() ast.Expression {
	return &ast.Todo{Token: p.curToken}
}

func (p *Parser) parsePanic() ast.Expression {
	return &ast.Panic{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	// Allow newline after operator (e.g. a + \n b)
	p.skipNewlines()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

// parsePipeExpression folds chained pipes into one flat Pipeline node, so
// `a |> b |> c` has all three elements side by side. A parenthesized
// pipeline keeps its own chain and becomes a single element of the outer one.
func (p *Parser) parsePipeExpression(left ast.Expression) ast.Expression {
	opToken := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	p.skipNewlines()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	if pl, ok := left.(*ast.Pipeline); ok && !pl.Parenthesized {
		pl.Expressions = append(pl.Expressions, right)
		return pl
	}
	return &ast.Pipeline{Token: opToken, Expressions: []ast.Expression{left, right}}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	p.skipNewlines()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if pl, ok := exp.(*ast.Pipeline); ok {
		pl.Parenthesized = true
	}
	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}

	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	exp.Arguments = args
	exp.RParenToken = p.curToken

	return exp
}

// parseCallArguments parses a call argument list, leaving the parser on the
// closing parenthesis. Arguments may carry a label: f(limit: 10).
func (p *Parser) parseCallArguments() ([]*ast.CallArgument, bool) {
	args := []*ast.CallArgument{}

	// Move past LPAREN
	p.nextToken()
	p.skipNewlines()

	if p.curTokenIs(token.RPAREN) {
		return args, true
	}

	for {
		p.skipNewlines()
		if p.curTokenIs(token.RPAREN) {
			break
		}

		arg := &ast.CallArgument{}
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
			arg.Label = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
			p.nextToken() // consume label
			p.nextToken() // consume :
			p.skipNewlines()
		}

		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil, false
		}
		arg.Value = value
		args = append(args, arg)

		// Skip newlines before checking for comma
		for p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
		}

		if p.peekTokenIs(token.COMMA) {
			p.nextToken() // move to comma
			p.nextToken() // move past comma
			continue
		}
		break
	}

	if p.curTokenIs(token.RPAREN) {
		return args, true
	}
	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	lit.Parameters = params

	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // move to ->
		p.nextToken() // move to type
		lit.ReturnType = p.parseType()
		if lit.ReturnType == nil {
			return nil
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	lit.Body = p.parseBlockStatement()
	if lit.Body == nil {
		return nil
	}

	return lit
}

// parseFunctionParameters parses `(a, b: Int)` with the parser on the opening
// parenthesis, leaving it on the closing one.
func (p *Parser) parseFunctionParameters() ([]*ast.FunctionParameter, bool) {
	params := []*ast.FunctionParameter{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := &ast.FunctionParameter{
			Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken() // move to :
			p.nextToken() // move to type
			param.TypeAnnotation = p.parseType()
			if param.TypeAnnotation == nil {
				return nil, false
			}
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}
