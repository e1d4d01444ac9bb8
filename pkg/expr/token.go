// Package expr compiles the embedded field/formula mini-language used in
// filter conditions, formula assignments and summarize specs into
// target-language (pandas) expressions.
package expr

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokField
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex tokenizes a formula string. Symbolic logical operators are
// normalized to their word forms so the parser only sees one spelling.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c >= '0' && c <= '9' || c == '.' && i+1 < len(src) && isDigit(src[i+1]):
			start := i
			seenDot := false
			for i < len(src) && (isDigit(src[i]) || src[i] == '.' && !seenDot) {
				if src[i] == '.' {
					seenDot = true
				}
				i++
			}
			toks = append(toks, token{tokNumber, src[start:i], start})

		case c == '"' || c == '\'':
			text, next, err := lexString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, text, i})
			i = next

		case c == '[':
			text, next, err := lexField(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokField, text, i})
			i = next

		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			switch strings.ToUpper(word) {
			case "AND", "OR", "NOT":
				toks = append(toks, token{tokOp, strings.ToUpper(word), start})
			default:
				toks = append(toks, token{tokIdent, word, start})
			}

		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++

		default:
			op, next, err := lexOperator(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokOp, op, i})
			i = next
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

// lexString scans a quoted string literal with backslash escapes,
// returning the unescaped text.
func lexString(src string, start int) (string, int, error) {
	quote := src[start]
	var sb strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			next := src[i+1]
			switch next {
			case '\\', '\'', '"':
				sb.WriteByte(next)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
			i += 2
			continue
		}
		if c == quote {
			return sb.String(), i + 1, nil
		}
		sb.WriteByte(c)
		i++
	}
	return "", 0, fmt.Errorf("unterminated string literal at position %d", start)
}

// lexField scans a [Field] reference. Any character is allowed except a
// lone ']'; a doubled ']]' is an escaped literal ']'.
func lexField(src string, start int) (string, int, error) {
	var sb strings.Builder
	i := start + 1
	for i < len(src) {
		if src[i] == ']' {
			if i+1 < len(src) && src[i+1] == ']' {
				sb.WriteByte(']')
				i += 2
				continue
			}
			return sb.String(), i + 1, nil
		}
		sb.WriteByte(src[i])
		i++
	}
	return "", 0, fmt.Errorf("unterminated field reference at position %d", start)
}

// lexOperator scans punctuation operators, normalizing alternate
// spellings (==, !=, &&, ||, !) to the canonical forms.
func lexOperator(src string, i int) (string, int, error) {
	two := ""
	if i+1 < len(src) {
		two = src[i : i+2]
	}
	switch two {
	case "<=", ">=", "<>":
		return two, i + 2, nil
	case "==":
		return "=", i + 2, nil
	case "!=":
		return "<>", i + 2, nil
	case "&&":
		return "AND", i + 2, nil
	case "||":
		return "OR", i + 2, nil
	}
	switch src[i] {
	case '=', '<', '>', '+', '-', '*', '/', '%':
		return string(src[i]), i + 1, nil
	case '!':
		return "NOT", i + 1, nil
	}
	return "", 0, fmt.Errorf("unexpected character %q at position %d", src[i], i)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
