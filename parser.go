// parser.go
//
// Single-pass s-expression parser. The scanner is a small state machine over
// character positions with five states: scanning nothing, a symbol, a number,
// a string, or a parenthesized list. Lists are not tokenized: the machine
// tracks nesting depth (and an in-string toggle, so parens inside string
// literals do not count) until the matching close paren, then re-parses the
// interior substring recursively into a List atom.
//
// String literals have no escape processing: the text between the quotes is
// taken verbatim. Symbols start with a letter or non-paren ASCII punctuation;
// numbers start with a digit or '.'. All error positions are absolute byte
// offsets into the source handed to Parse, even when raised inside a nested
// list re-parse.
package nlisp

import (
	"fmt"
	"strconv"
	"unicode"
)

// ParseErrorKind discriminates parse failures.
type ParseErrorKind int

const (
	InvalidCharacter ParseErrorKind = iota
	NumberError
	IncompleteString
	IncompleteList
)

// ParseError is a parse failure with an absolute byte offset into the source.
// For NumberError, Err holds the underlying strconv failure.
type ParseError struct {
	Kind ParseErrorKind
	Pos  int
	Err  error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character at offset %d", e.Pos)
	case NumberError:
		return fmt.Sprintf("malformed number at offset %d: %v", e.Pos, e.Err)
	case IncompleteString:
		return fmt.Sprintf("unterminated string starting at offset %d", e.Pos)
	case IncompleteList:
		return fmt.Sprintf("unterminated list starting at offset %d", e.Pos)
	default:
		return fmt.Sprintf("parse error at offset %d", e.Pos)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads whitespace-separated s-expressions from src and returns them as
// a List of top-level atoms. On failure it returns a *ParseError.
func Parse(src string) (List, error) {
	return parseFrom(src, 0)
}

type scanState int

const (
	scanNone scanState = iota
	scanSymbol
	scanNumber
	scanString
	scanList
)

// isASCIIPunct mirrors the ASCII punctuation ranges !-/ :-@ [-` {-~.
func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/',
		r >= ':' && r <= '@',
		r >= '[' && r <= '`',
		r >= '{' && r <= '~':
		return true
	}
	return false
}

func isSymbolPunct(r rune) bool {
	return r != '(' && r != ')' && isASCIIPunct(r)
}

// parseFrom scans src; base is the byte offset of src within the original
// source, threaded through nested list re-parses to keep positions absolute.
func parseFrom(src string, base int) (List, error) {
	var atoms List

	state := scanNone
	start := 0    // byte offset of the current token within src
	depth := 0    // list nesting inside a scanList run
	inString := false

	for pos, c := range src {
		switch state {
		case scanNone:
			switch {
			case unicode.IsSpace(c):
				// stay

			case c == '(':
				state, start, depth, inString = scanList, pos, 0, false

			case c == '"':
				state, start = scanString, pos

			case unicode.IsDigit(c) || c == '.':
				state, start = scanNumber, pos

			case unicode.IsLetter(c) || isSymbolPunct(c):
				state, start = scanSymbol, pos

			default:
				return nil, &ParseError{Kind: InvalidCharacter, Pos: base + pos}
			}

		case scanSymbol:
			switch {
			case unicode.IsLetter(c) || unicode.IsDigit(c) || isSymbolPunct(c):
				// stay
			case unicode.IsSpace(c):
				atoms = append(atoms, Sym(src[start:pos]))
				state = scanNone
			default:
				return nil, &ParseError{Kind: InvalidCharacter, Pos: base + pos}
			}

		case scanNumber:
			switch {
			case unicode.IsDigit(c) || c == '.':
				// stay
			case unicode.IsSpace(c):
				n, err := parseNumber(src[start:pos], base+start)
				if err != nil {
					return nil, err
				}
				atoms = append(atoms, n)
				state = scanNone
			default:
				return nil, &ParseError{Kind: InvalidCharacter, Pos: base + pos}
			}

		case scanString:
			if c == '"' {
				atoms = append(atoms, Str(src[start+1:pos]))
				state = scanNone
			}

		case scanList:
			switch {
			case !inString && depth == 0 && c == ')':
				inner, err := parseFrom(src[start+1:pos], base+start+1)
				if err != nil {
					return nil, err
				}
				atoms = append(atoms, Atom{Tag: ATList, Data: inner})
				state = scanNone
			case !inString && c == '(':
				depth++
			case !inString && c == ')':
				depth--
			case c == '"':
				inString = !inString
			}
		}
	}

	// Flush a trailing symbol or number; open strings and lists are errors.
	switch state {
	case scanSymbol:
		atoms = append(atoms, Sym(src[start:]))
	case scanNumber:
		n, err := parseNumber(src[start:], base+start)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, n)
	case scanString:
		return nil, &ParseError{Kind: IncompleteString, Pos: base + start}
	case scanList:
		return nil, &ParseError{Kind: IncompleteList, Pos: base + start}
	}

	return atoms, nil
}

func parseNumber(text string, pos int) (Atom, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return Nil, &ParseError{Kind: NumberError, Pos: pos, Err: err}
	}
	return Num(float32(v)), nil
}
