// Package expr implements the restricted expression language used by custom
// workflow steps: path access, arithmetic, comparison, logical operators and
// a small set of builtin functions over the current value. There is no
// dynamic code execution; evaluation is a plain tree walk with a step budget.
package expr

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenPath
	tokenNumber
	tokenString
	tokenTrue
	tokenFalse
	tokenNull
	tokenDollar
	tokenEqual
	tokenNotEqual
	tokenGreater
	tokenGreaterEq
	tokenLess
	tokenLessEq
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	typ     tokenType
	literal string
	pos     int
}

func lex(input string) ([]token, error) {
	tokens := make([]token, 0, len(input)/2)
	pos := 0

	for pos < len(input) {
		r := rune(input[pos])
		if unicode.IsSpace(r) {
			pos++

			continue
		}

		if isPathStart(r) {
			start := pos
			pos++

			for pos < len(input) && isPathPart(rune(input[pos])) {
				pos++
			}

			literal := input[start:pos]
			switch literal {
			case "true":
				tokens = append(tokens, token{typ: tokenTrue, pos: start})
			case "false":
				tokens = append(tokens, token{typ: tokenFalse, pos: start})
			case "null":
				tokens = append(tokens, token{typ: tokenNull, pos: start})
			default:
				tokens = append(tokens, token{typ: tokenPath, literal: literal, pos: start})
			}

			continue
		}

		if unicode.IsDigit(r) {
			numberToken, nextPos, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, numberToken)
			pos = nextPos

			continue
		}

		if input[pos] == '\'' || input[pos] == '"' {
			literal, nextPos, err := lexString(input, pos)
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, token{typ: tokenString, literal: literal, pos: pos})
			pos = nextPos

			continue
		}

		switch input[pos] {
		case '$':
			tokens = append(tokens, token{typ: tokenDollar, pos: pos})
			pos++
		case '=':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenEqual, pos: pos})
				pos += 2

				continue
			}

			return nil, expressionError("unexpected '=' at position %d", pos)
		case '!':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenNotEqual, pos: pos})
				pos += 2

				continue
			}

			tokens = append(tokens, token{typ: tokenNot, pos: pos})
			pos++
		case '>':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenGreaterEq, pos: pos})
				pos += 2

				continue
			}

			tokens = append(tokens, token{typ: tokenGreater, pos: pos})
			pos++
		case '<':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenLessEq, pos: pos})
				pos += 2

				continue
			}

			tokens = append(tokens, token{typ: tokenLess, pos: pos})
			pos++
		case '+':
			tokens = append(tokens, token{typ: tokenPlus, pos: pos})
			pos++
		case '-':
			tokens = append(tokens, token{typ: tokenMinus, pos: pos})
			pos++
		case '*':
			tokens = append(tokens, token{typ: tokenStar, pos: pos})
			pos++
		case '/':
			tokens = append(tokens, token{typ: tokenSlash, pos: pos})
			pos++
		case '%':
			tokens = append(tokens, token{typ: tokenPercent, pos: pos})
			pos++
		case '&':
			if pos+1 < len(input) && input[pos+1] == '&' {
				tokens = append(tokens, token{typ: tokenAnd, pos: pos})
				pos += 2

				continue
			}

			return nil, expressionError("unexpected '&' at position %d", pos)
		case '|':
			if pos+1 < len(input) && input[pos+1] == '|' {
				tokens = append(tokens, token{typ: tokenOr, pos: pos})
				pos += 2

				continue
			}

			return nil, expressionError("unexpected '|' at position %d", pos)
		case '(':
			tokens = append(tokens, token{typ: tokenLParen, pos: pos})
			pos++
		case ')':
			tokens = append(tokens, token{typ: tokenRParen, pos: pos})
			pos++
		case ',':
			tokens = append(tokens, token{typ: tokenComma, pos: pos})
			pos++
		default:
			return nil, expressionError("unexpected character %q at position %d", input[pos], pos)
		}
	}

	return append(tokens, token{typ: tokenEOF, pos: len(input)}), nil
}

func isPathStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isPathPart accepts full dotted/bracketed path text (`a.b[0]`) as a single
// token; the evaluator hands it to the shared accessor.
func isPathPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '[' || r == ']'
}

func lexNumber(input string, pos int) (token, int, error) {
	start := pos

	for pos < len(input) && (unicode.IsDigit(rune(input[pos])) || input[pos] == '.') {
		pos++
	}

	literal := input[start:pos]
	if _, err := strconv.ParseFloat(literal, 64); err != nil {
		return token{}, 0, expressionError("invalid number %q at position %d", literal, start)
	}

	return token{typ: tokenNumber, literal: literal, pos: start}, pos, nil
}

func lexString(input string, pos int) (string, int, error) {
	quote := input[pos]
	var sb strings.Builder

	i := pos + 1
	for i < len(input) {
		switch input[i] {
		case '\\':
			if i+1 >= len(input) {
				return "", 0, expressionError("unterminated escape at position %d", i)
			}

			sb.WriteByte(input[i+1])
			i += 2
		case quote:
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(input[i])
			i++
		}
	}

	return "", 0, expressionError("unterminated string starting at position %d", pos)
}
