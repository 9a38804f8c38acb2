package expr

import "strconv"

type node interface{}

type literalNode struct {
	value any // nil, bool, float64 or string
}

type pathNode struct {
	path string
}

type wholeNode struct{} // `$`: the entire input value

type callNode struct {
	name string
	arg  node
}

type unaryNode struct {
	op    tokenType
	right node
}

type binaryNode struct {
	op    tokenType
	left  node
	right node
}

type parserState struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	state := parserState{tokens: tokens}
	if state.current().typ == tokenEOF {
		return nil, expressionError("expression is empty")
	}

	root, err := state.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := state.current(); tok.typ != tokenEOF {
		return nil, expressionError("unexpected token at position %d", tok.pos)
	}

	return root, nil
}

func (p *parserState) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF}
	}

	return p.tokens[p.pos]
}

func (p *parserState) advance() token {
	tok := p.current()
	p.pos++

	return tok
}

func (p *parserState) parseExpression() (node, error) {
	return p.parseOr()
}

func (p *parserState) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenOr {
		op := p.advance().typ

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseAnd() (node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenAnd {
		op := p.advance().typ

		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		left = binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseEquality() (node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenEqual || p.current().typ == tokenNotEqual {
		op := p.advance().typ

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().typ {
		case tokenGreater, tokenGreaterEq, tokenLess, tokenLessEq:
			op := p.advance().typ

			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}

			left = binaryNode{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parserState) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenPlus || p.current().typ == tokenMinus {
		op := p.advance().typ

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().typ {
		case tokenStar, tokenSlash, tokenPercent:
			op := p.advance().typ

			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}

			left = binaryNode{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parserState) parseUnary() (node, error) {
	switch p.current().typ {
	case tokenNot:
		p.advance()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return unaryNode{op: tokenNot, right: right}, nil
	case tokenMinus:
		p.advance()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return unaryNode{op: tokenMinus, right: right}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *parserState) parsePrimary() (node, error) {
	tok := p.advance()

	switch tok.typ {
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.literal, 64)
		if err != nil {
			return nil, expressionError("invalid number %q", tok.literal)
		}

		return literalNode{value: f}, nil
	case tokenString:
		return literalNode{value: tok.literal}, nil
	case tokenTrue:
		return literalNode{value: true}, nil
	case tokenFalse:
		return literalNode{value: false}, nil
	case tokenNull:
		return literalNode{value: nil}, nil
	case tokenDollar:
		return wholeNode{}, nil
	case tokenPath:
		if p.current().typ == tokenLParen {
			if _, ok := builtins[tok.literal]; !ok {
				return nil, expressionError("unknown function %q", tok.literal)
			}

			p.advance() // '('

			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			if p.current().typ != tokenRParen {
				return nil, expressionError("missing ')' after %s(...)", tok.literal)
			}

			p.advance()

			return callNode{name: tok.literal, arg: arg}, nil
		}

		return pathNode{path: tok.literal}, nil
	case tokenLParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if p.current().typ != tokenRParen {
			return nil, expressionError("missing closing parenthesis")
		}

		p.advance()

		return inner, nil
	default:
		return nil, expressionError("unexpected token at position %d", tok.pos)
	}
}
