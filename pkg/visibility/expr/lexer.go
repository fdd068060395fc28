package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenReference
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenGt
	tokenGte
	tokenLt
	tokenLte
	tokenEmpty
	tokenNotEmpty
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	if isSpace(c) {
		return true
	}
	switch c {
	case '(', ')', '!', '=', '&', '|', '<', '>', '{', '}', '"', '\'':
		return true
	}
	return false
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func(offset int) byte {
		if i+offset >= len(input) {
			return 0
		}
		return input[i+offset]
	}
	emit := func(kind tokenKind, raw string, width int) {
		tokens = append(tokens, token{kind: kind, raw: raw})
		i += width
	}

	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		switch ch {
		case '(':
			emit(tokenLParen, "(", 1)
		case ')':
			emit(tokenRParen, ")", 1)
		case '!':
			if peek(1) == '=' {
				emit(tokenNeq, "!=", 2)
			} else {
				emit(tokenNot, "!", 1)
			}
		case '=':
			if peek(1) == '=' {
				emit(tokenEq, "==", 2)
			} else {
				emit(tokenEq, "=", 1)
			}
		case '<':
			switch peek(1) {
			case '>':
				emit(tokenNeq, "<>", 2)
			case '=':
				emit(tokenLte, "<=", 2)
			default:
				emit(tokenLt, "<", 1)
			}
		case '>':
			if peek(1) == '=' {
				emit(tokenGte, ">=", 2)
			} else {
				emit(tokenGt, ">", 1)
			}
		case '&':
			if peek(1) != '&' {
				return nil, errors.New("visibility/expr: unexpected '&'; use '&&' or 'and'")
			}
			emit(tokenAnd, "&&", 2)
		case '|':
			if peek(1) != '|' {
				return nil, errors.New("visibility/expr: unexpected '|'; use '||' or 'or'")
			}
			emit(tokenOr, "||", 2)
		case '{':
			end := strings.IndexByte(input[i+1:], '}')
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated reference")
			}
			name := strings.TrimSpace(input[i+1 : i+1+end])
			if name == "" {
				return nil, errors.New("visibility/expr: empty reference")
			}
			emit(tokenReference, name, end+2)
		case '}':
			return nil, errors.New("visibility/expr: unexpected '}'")
		case '"', '\'':
			value, width, err := readString(input[i:])
			if err != nil {
				return nil, err
			}
			emit(tokenString, value, width)
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			tokens = append(tokens, word(input[start:i]))
		}
	}

	return tokens, nil
}

// readString decodes the quoted literal at the start of input and returns
// its value and width. Backslash escapes \n and \t; any other escaped
// character stands for itself.
func readString(input string) (string, int, error) {
	quote := input[0]
	var b strings.Builder
	for j := 1; j < len(input); j++ {
		c := input[j]
		switch {
		case c == '\\':
			j++
			if j >= len(input) {
				return "", 0, errors.New("visibility/expr: unterminated string literal")
			}
			switch input[j] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(input[j])
			}
		case c == quote:
			return b.String(), j + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("visibility/expr: unterminated string literal %s", input)
}

func word(raw string) token {
	switch strings.ToLower(raw) {
	case "true", "false":
		return token{kind: tokenBool, raw: strings.ToLower(raw)}
	case "null", "nil":
		return token{kind: tokenNull, raw: "null"}
	case "and":
		return token{kind: tokenAnd, raw: "and"}
	case "or":
		return token{kind: tokenOr, raw: "or"}
	case "not":
		return token{kind: tokenNot, raw: "not"}
	case "empty":
		return token{kind: tokenEmpty, raw: "empty"}
	case "notempty":
		return token{kind: tokenNotEmpty, raw: "notempty"}
	}
	if looksLikeNumber(raw) {
		return token{kind: tokenNumber, raw: raw}
	}
	return token{kind: tokenIdentifier, raw: raw}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}
