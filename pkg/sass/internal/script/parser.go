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
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

// Expression is a single expression in reverse polish notation.
type Expression struct {
	rpn tokens
}

// Parse tokenizes s and reorders it with the shunting-yard algorithm.
func Parse(s string) (Expression, error) {
	tt, err := tokenize(s)
	if err != nil {
		return Expression{}, err
	}
	rpn, err := toRPN(tt)
	if err != nil {
		return Expression{}, err
	}
	return Expression{rpn: rpn}, nil
}

func toRPN(tt tokens) (tokens, error) {
	out := make(tokens, 0, len(tt))
	stack := make(tokens, 0, 4)
	afterOperand := false
	for _, t := range tt {
		if afterOperand && t.kind != tokenOperator && t.kind != tokenParensClose {
			// Juxtaposed values form a list, which binds loosest.
			for len(stack) > 0 && stack[len(stack)-1].kind != tokenParensOpen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		}
		afterOperand = t.kind != tokenOperator && t.kind != tokenParensOpen
		switch t.kind {
		case tokenParensOpen:
			stack = append(stack, t)
		case tokenParensClose:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokenParensOpen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				return nil, sassErrors.New(
					sassErrors.UnmatchedParen, "unmatched )",
				)
			}
		case tokenOperator:
			if t.op.arity == 1 {
				// Prefix operators have no left operand to wait for.
				stack = append(stack, t)
				continue
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == tokenParensOpen {
					break
				}
				o1, o2 := t.op, top.op
				if o2.precedence < o1.precedence ||
					(o2.precedence == o1.precedence && o1.right) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		default:
			out = append(out, t)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == tokenParensOpen {
			return nil, sassErrors.New(sassErrors.UnmatchedParen, "unmatched (")
		}
		out = append(out, top)
	}
	return out, nil
}
