package token

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/bitschema/errors"
)

type Category int

const (
	Symbol Category = iota
	Number
	Name
)

func (c Category) String() string {
	switch c {
	case Symbol:
		return "symbol"
	case Number:
		return "number"
	case Name:
		return "name"
	}
	return "unknown"
}

// StringToken is a raw slice of schema text and its byte offset.
type StringToken struct {
	Value    string
	Position int
}

// Token is a classified StringToken. Number holds the parsed value of
// Number tokens.
type Token struct {
	Value    string
	Category Category
	Number   int
	Position int
}

func isSymbol(r rune) bool {
	switch r {
	case '{', '}', '[', ']', '(', ')', '/', '=', ':', ',', ';':
		return true
	}
	return false
}

func isWord(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenize splits schema text into single-character symbols and maximal runs
// of word characters. The whole text is checked against the schema character
// set before any token is produced.
func Tokenize(input string) ([]StringToken, error) {
	for i, r := range input {
		if !isSymbol(r) && !isWord(r) && !unicode.IsSpace(r) {
			return nil, errors.InvalidCharacter(i, r)
		}
	}

	var tokens []StringToken
	for i := 0; i < len(input); {
		r := rune(input[i])
		switch {
		case isSymbol(r):
			tokens = append(tokens, StringToken{Value: input[i : i+1], Position: i})
			i++
		case isWord(r):
			start := i
			for i < len(input) && isWord(rune(input[i])) {
				i++
			}
			tokens = append(tokens, StringToken{Value: input[start:i], Position: start})
		default:
			// whitespace, possibly multi-byte
			_, size := utf8.DecodeRuneInString(input[i:])
			i += size
		}
	}
	return tokens, nil
}

// Lex classifies raw tokens. All-digit text is a Number, other word text is a
// Name, and anything else is a Symbol.
func Lex(tokens []StringToken) ([]Token, error) {
	out := make([]Token, len(tokens))
	for i, st := range tokens {
		tok := Token{Value: st.Value, Position: st.Position}
		switch {
		case allMatch(st.Value, isDigit):
			n, err := strconv.Atoi(st.Value)
			if err != nil {
				return nil, errors.Syntax(st.Position, "number %q out of range", st.Value)
			}
			tok.Category = Number
			tok.Number = n
		case allMatch(st.Value, isWord):
			tok.Category = Name
		default:
			tok.Category = Symbol
		}
		out[i] = tok
	}
	return out, nil
}

func allMatch(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// Scan tokenizes and lexes input in one step.
func Scan(input string) ([]Token, error) {
	raw, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Lex(raw)
}
