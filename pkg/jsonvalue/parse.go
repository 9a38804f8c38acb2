package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseError reports malformed input JSON. Position is the byte offset into
// the input where decoding failed, or -1 when it could not be derived.
type ParseError struct {
	Message  string
	Position int
}

func (e *ParseError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("invalid JSON at offset %d: %s", e.Position, e.Message)
	}

	return "invalid JSON: " + e.Message
}

// Parse decodes a JSON text into a Value, preserving object key order. The
// standard decoder is driven token by token because map-based unmarshalling
// would lose key order.
func Parse(text string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	value, err := parseNext(dec)
	if err != nil {
		return nil, asParseError(err, dec)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{
			Message:  "unexpected content after top-level value",
			Position: int(dec.InputOffset()),
		}
	}

	return value, nil
}

func parseNext(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()

			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}

				key, ok := keyTok.(string)
				if !ok {
					return nil, &ParseError{
						Message:  "object key is not a string",
						Position: int(dec.InputOffset()),
					}
				}

				val, err := parseNext(dec)
				if err != nil {
					return nil, err
				}

				obj.Set(key, val)
			}

			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}

			return obj, nil
		case '[':
			items := []*Value{}

			for dec.More() {
				item, err := parseNext(dec)
				if err != nil {
					return nil, err
				}

				items = append(items, item)
			}

			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}

			return NewArray(items...), nil
		default:
			return nil, &ParseError{
				Message:  fmt.Sprintf("unexpected delimiter %q", t.String()),
				Position: int(dec.InputOffset()),
			}
		}
	case bool:
		return NewBool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, &ParseError{
				Message:  fmt.Sprintf("invalid number %q", t.String()),
				Position: int(dec.InputOffset()),
			}
		}

		return NewNumber(f), nil
	case string:
		return NewString(t), nil
	case nil:
		return Null, nil
	default:
		return nil, &ParseError{
			Message:  fmt.Sprintf("unexpected token %v", tok),
			Position: int(dec.InputOffset()),
		}
	}
}

func asParseError(err error, dec *json.Decoder) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Message: syntaxErr.Error(), Position: int(syntaxErr.Offset)}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{Message: "unexpected end of input", Position: int(dec.InputOffset())}
	}

	return &ParseError{Message: err.Error(), Position: -1}
}
