// Golang port of Sass
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package script

import (
	"strings"

	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

type kind int8

const (
	tokenLiteral kind = iota
	tokenVariable
	tokenFunction
	tokenOperator
	tokenParensOpen
	tokenParensClose
)

func (k kind) String() string {
	switch k {
	case tokenLiteral:
		return "literal"
	case tokenVariable:
		return "variable"
	case tokenFunction:
		return "function"
	case tokenOperator:
		return "operator"
	case tokenParensOpen:
		return "("
	case tokenParensClose:
		return ")"
	default:
		return "?"
	}
}

type token struct {
	kind kind
	v    Value
	name string
	args []string
	op   *operator
}

type tokens []token

type operator struct {
	symbol     string
	right      bool
	precedence int
	arity      int
}

var operators = map[string]*operator{
	"*":   {symbol: "*", precedence: 9, arity: 2},
	"/":   {symbol: "/", precedence: 9, arity: 2},
	"%":   {symbol: "%", precedence: 9, arity: 2},
	"+":   {symbol: "+", precedence: 8, arity: 2},
	"-":   {symbol: "-", precedence: 8, arity: 2},
	"<<":  {symbol: "<<", precedence: 7, arity: 2},
	">>":  {symbol: ">>", precedence: 7, arity: 2},
	"<=":  {symbol: "<=", precedence: 6, arity: 2},
	">=":  {symbol: ">=", precedence: 6, arity: 2},
	"<":   {symbol: "<", precedence: 6, arity: 2},
	">":   {symbol: ">", precedence: 6, arity: 2},
	"==":  {symbol: "==", precedence: 5, arity: 2},
	"!=":  {symbol: "!=", precedence: 5, arity: 2},
	"&":   {symbol: "&", precedence: 4, arity: 2},
	"|":   {symbol: "|", precedence: 4, arity: 2},
	"^":   {symbol: "^", precedence: 4, arity: 2},
	"~":   {symbol: "~", right: true, precedence: 4, arity: 1},
	"and": {symbol: "and", precedence: 3, arity: 2},
	"or":  {symbol: "or", precedence: 3, arity: 2},
	"xor": {symbol: "xor", precedence: 3, arity: 2},
	"not": {symbol: "not", precedence: 3, arity: 1},
	"!":   {symbol: "not", precedence: 3, arity: 1},
	"=":   {symbol: "=", right: true, precedence: 2, arity: 2},
}

var negate = &operator{symbol: "neg", right: true, precedence: 10, arity: 1}

// symbols are probed longest first.
var symbols = []string{
	"<<", ">>", "<=", ">=", "==", "!=",
	"*", "/", "%", "+", "-", "<", ">", "&", "|", "^", "~", "=", "!",
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWordChar(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// consumeName reads [\w]+(-[\w]+)* so that "$a-$b" stays a subtraction.
func consumeName(s string) int {
	i := 0
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	for i > 0 && i+1 < len(s) && s[i] == '-' && isWordChar(s[i+1]) {
		i++
		for i < len(s) && isWordChar(s[i]) {
			i++
		}
	}
	return i
}

// consumeIdent reads a CSS identifier including a vendor prefix.
func consumeIdent(s string) int {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) || !isIdentStart(s[i]) {
		return 0
	}
	for i < len(s) && (isWordChar(s[i]) || s[i] == '-' || s[i] == '.') {
		i++
	}
	return i
}

func consumeNumber(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i == 0 {
		return 0
	}
	for i < len(s) && isUnitChar(s[i]) {
		i++
	}
	return i
}

func startsNumber(s string) bool {
	if len(s) == 0 {
		return false
	}
	if isDigit(s[0]) {
		return true
	}
	return len(s) > 1 && s[0] == '.' && isDigit(s[1])
}

func consumeHex(s string) int {
	i := 1
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	return i
}

// consumeQuoted returns the length of the quoted string at the start of s.
func consumeQuoted(s string) (int, error) {
	q := s[0]
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i + 1, nil
		}
	}
	return 0, sassErrors.Newf(sassErrors.BadLiteral, "unterminated string %s", s)
}

// consumeParens returns the offset after the parenthesis that closes the
// one at s[0].
func consumeParens(s string) (int, error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			n, err := consumeQuoted(s[i:])
			if err != nil {
				return 0, err
			}
			i += n - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, sassErrors.Newf(sassErrors.UnmatchedParen, "unmatched ( in %s", s)
}

// SplitTopLevel splits s on sep outside of quotes and parentheses.
func SplitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\'':
			if n, err := consumeQuoted(s[i:]); err == nil {
				i += n - 1
			}
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[last:]))
}

func tokenize(s string) (tokens, error) {
	out := make(tokens, 0, 8)
	expectOperand := true
	spaceBefore := false
	for i := 0; i < len(s); {
		c := s[i]
		if isSpace(c) {
			spaceBefore = true
			i++
			continue
		}
		rest := s[i:]
		var t token
		n := 0
		switch {
		case startsNumber(rest),
			c == '-' && startsNumber(rest[1:]) &&
				(expectOperand || spaceBefore):
			if c == '-' {
				n = 1 + consumeNumber(rest[1:])
			} else {
				n = consumeNumber(rest)
			}
			v, err := NewNumber(rest[:n])
			if err != nil {
				return nil, err
			}
			t = token{kind: tokenLiteral, v: v}
		case c == '#':
			n = consumeHex(rest)
			v, ok := ParseColour(rest[:n])
			if !ok {
				return nil, sassErrors.Newf(
					sassErrors.BadLiteral, "invalid colour %q", rest[:n],
				)
			}
			t = token{kind: tokenLiteral, v: v}
		case c == '"' || c == '\'':
			var err error
			if n, err = consumeQuoted(rest); err != nil {
				return nil, err
			}
			t = token{kind: tokenLiteral, v: parseQuoted(rest[:n])}
		case (c == '$' || c == '!') && len(rest) > 1 && isWordChar(rest[1]):
			n = 1 + consumeName(rest[1:])
			name := rest[1:n]
			if c == '!' && name == "important" {
				t = token{kind: tokenLiteral, v: String{Value: "!important"}}
			} else {
				t = token{kind: tokenVariable, name: name}
			}
		case consumeIdent(rest) > 0 && (c != '-' || expectOperand || spaceBefore):
			n = consumeIdent(rest)
			word := rest[:n]
			if op, ok := operators[strings.ToLower(word)]; ok && isWordChar(word[0]) {
				t = token{kind: tokenOperator, op: op}
				break
			}
			if n < len(rest) && rest[n] == '(' {
				end, err := consumeParens(rest[n:])
				if err != nil {
					return nil, err
				}
				inner := rest[n+1 : n+end-1]
				n += end
				t = token{kind: tokenFunction, name: word}
				if strings.TrimSpace(inner) != "" {
					t.args = SplitTopLevel(inner, ',')
				}
				break
			}
			switch lower := strings.ToLower(word); lower {
			case "true", "false":
				t = token{kind: tokenLiteral, v: Boolean(lower == "true")}
			default:
				if v, ok := ParseColour(word); ok {
					t = token{kind: tokenLiteral, v: v}
				} else {
					t = token{kind: tokenLiteral, v: String{Value: word}}
				}
			}
		case c == '(':
			n = 1
			t = token{kind: tokenParensOpen}
		case c == ')':
			n = 1
			t = token{kind: tokenParensClose}
		default:
			for _, sym := range symbols {
				if strings.HasPrefix(rest, sym) {
					n = len(sym)
					t = token{kind: tokenOperator, op: operators[sym]}
					break
				}
			}
			if n == 0 {
				return nil, sassErrors.Newf(
					sassErrors.BadLiteral, "unable to tokenize %q", rest,
				)
			}
			if expectOperand {
				switch t.op.symbol {
				case "-":
					t.op = negate
				case "+":
					// Unary plus is a no-op.
					i += n
					spaceBefore = false
					continue
				}
			}
		}
		out = append(out, t)
		i += n
		spaceBefore = false
		switch t.kind {
		case tokenOperator, tokenParensOpen:
			expectOperand = true
		default:
			expectOperand = false
		}
	}
	return out, nil
}
