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

// Scope resolves variables during evaluation.
type Scope interface {
	Get(name string) (Value, bool)
}

// Eval runs the expression against scope.
func (e Expression) Eval(scope Scope, o Options) (Value, error) {
	stack := make([]Value, 0, 4)
	for _, t := range e.rpn {
		switch t.kind {
		case tokenLiteral:
			stack = append(stack, t.v)
		case tokenVariable:
			v, ok := scope.Get(t.name)
			if !ok {
				return nil, sassErrors.Newf(
					sassErrors.UndefinedVariable, "undefined variable %q", t.name,
				)
			}
			stack = append(stack, v)
		case tokenFunction:
			v, err := call(t.name, t.args, scope, o)
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)
		case tokenOperator:
			n := t.op.arity
			if len(stack) < n {
				return nil, sassErrors.Newf(
					sassErrors.ArityMismatch,
					"%s expects %d operands, got %d", t.op.symbol, n, len(stack),
				)
			}
			args := stack[len(stack)-n:]
			v, err := apply(t.op.symbol, args, o)
			if err != nil {
				return nil, err
			}
			stack = append(stack[:len(stack)-n], v)
		}
	}
	switch len(stack) {
	case 0:
		return String{}, nil
	case 1:
		return stack[0], nil
	default:
		// Space separated values, e.g. "1px solid red".
		parts := make([]string, len(stack))
		for i, v := range stack {
			parts[i] = Render(v, o)
		}
		return String{Value: strings.Join(parts, " ")}, nil
	}
}

// Evaluate interpolates s, then evaluates each comma separated expression.
func Evaluate(s string, scope Scope, o Options) (Value, error) {
	s, err := Interpolate(s, scope, o)
	if err != nil {
		return nil, err
	}
	parts := SplitTopLevel(s, ',')
	if len(parts) == 1 {
		return evaluateOne(parts[0], scope, o)
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		v, err2 := evaluateOne(p, scope, o)
		if err2 != nil {
			return nil, err2
		}
		out[i] = Render(v, o)
	}
	return String{Value: strings.Join(out, ", ")}, nil
}

func evaluateOne(s string, scope Scope, o Options) (Value, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return e.Eval(scope, o)
}

// Interpolate replaces every #{expr} in s with the unquoted value of expr.
// A backslash escapes the interpolation.
func Interpolate(s string, scope Scope, o Options) (string, error) {
	if !strings.Contains(s, "#{") {
		return s, nil
	}
	var b strings.Builder
	for {
		i := strings.Index(s, "#{")
		if i == -1 {
			b.WriteString(s)
			return b.String(), nil
		}
		if i > 0 && s[i-1] == '\\' {
			b.WriteString(s[:i-1])
			b.WriteString("#{")
			s = s[i+2:]
			continue
		}
		end := matchingBrace(s[i+2:])
		if end == -1 {
			return "", sassErrors.Newf(
				sassErrors.UnmatchedParen, "unterminated interpolation in %q", s,
			)
		}
		b.WriteString(s[:i])
		v, err := Evaluate(s[i+2:i+2+end], scope, o)
		if err != nil {
			return "", err
		}
		b.WriteString(Unquote(v, o))
		s = s[i+2+end+1:]
	}
}

func matchingBrace(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func apply(op string, args []Value, o Options) (Value, error) {
	a := args[0]
	switch op {
	case "and":
		return Boolean(a.Truthy() && args[1].Truthy()), nil
	case "or":
		return Boolean(a.Truthy() || args[1].Truthy()), nil
	case "xor":
		return Boolean(a.Truthy() != args[1].Truthy()), nil
	case "not":
		return Boolean(!a.Truthy()), nil
	case "=":
		return String{Value: Render(a, o) + "=" + Render(args[1], o)}, nil
	case "neg":
		switch v := a.(type) {
		case Number:
			v.Value = -v.Value
			return v, nil
		case String:
			if !v.Quoted {
				return String{Value: "-" + v.Value}, nil
			}
		}
		return nil, sassErrors.Newf(
			sassErrors.TypeMismatch, "cannot negate %s", a.TypeName(),
		)
	case "~":
		if c, ok := a.(Colour); ok {
			return c.invert(), nil
		}
		return nil, sassErrors.Newf(
			sassErrors.TypeMismatch, "~ is not supported for %s", a.TypeName(),
		)
	}

	b := args[1]
	switch v := a.(type) {
	case Number:
		switch op {
		case "+", "-", "*", "/", "%":
			return v.arithmetic(op, b)
		case "==", "!=", "<", "<=", ">", ">=":
			return v.compare(op, b)
		}
	case Colour:
		switch op {
		case "+", "-", "*", "/", "%", "&", "|", "^":
			return v.arithmetic(op, b)
		case "<<", ">>":
			return v.shift(op, b)
		case "==", "!=", "<", "<=", ">", ">=":
			return v.compare(op, b)
		}
	case String:
		switch op {
		case "+":
			return v.add(b, o)
		case "-":
			return v.subtract(b, o)
		case "==", "!=", "<", "<=", ">", ">=":
			return v.compare(op, b)
		}
	case Boolean:
		switch op {
		case "==":
			w, ok := b.(Boolean)
			return Boolean(ok && w == v), nil
		case "!=":
			w, ok := b.(Boolean)
			return Boolean(!ok || w != v), nil
		}
	}
	return nil, sassErrors.Newf(
		sassErrors.TypeMismatch,
		"%s is not supported for %s", op, a.TypeName(),
	)
}

func (s String) add(other Value, o Options) (Value, error) {
	if n, ok := other.(Number); ok {
		times, err := n.Int()
		if err != nil {
			return nil, err
		}
		if times < 0 {
			return nil, sassErrors.Newf(
				sassErrors.TypeMismatch, "cannot repeat a string %d times", times,
			)
		}
		s.Value = strings.Repeat(s.Value, times)
		return s, nil
	}
	s.Value += Unquote(other, o)
	return s, nil
}

func (s String) subtract(other Value, o Options) (Value, error) {
	if n, ok := other.(Number); ok {
		offset, err := n.Int()
		if err != nil {
			return nil, err
		}
		if offset < 0 {
			offset += len(s.Value)
		}
		switch {
		case offset < 0:
			offset = 0
		case offset > len(s.Value):
			offset = len(s.Value)
		}
		s.Value = s.Value[offset:]
		return s, nil
	}
	s.Value = strings.ReplaceAll(s.Value, Unquote(other, o), "")
	return s, nil
}

func (s String) compare(op string, other Value) (Value, error) {
	o, ok := other.(String)
	if !ok {
		switch op {
		case "==":
			return Boolean(false), nil
		case "!=":
			return Boolean(true), nil
		}
		return nil, sassErrors.Newf(
			sassErrors.TypeMismatch, "cannot compare string and %s", other.TypeName(),
		)
	}
	c := strings.Compare(s.Value, o.Value)
	return compareFloat(op, float64(c), 0), nil
}
