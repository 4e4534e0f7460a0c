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
	"math"
	"strings"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

type function struct {
	arity int
	fn    func(args []Value) (Value, error)
}

var functions map[string]function

func init() {
	functions = map[string]function{
		"rgb":        {arity: 3, fn: rgb},
		"hsl":        {arity: 3, fn: hsl},
		"percentage": {arity: 1, fn: percentage},
		"round":      {arity: 1, fn: numberFn(math.Round)},
		"ceil":       {arity: 1, fn: numberFn(math.Ceil)},
		"floor":      {arity: 1, fn: numberFn(math.Floor)},
		"abs":        {arity: 1, fn: numberFn(math.Abs)},
	}
}

func call(name string, raw []string, scope Scope, o Options) (Value, error) {
	f, ok := functions[name]
	if !ok {
		return passThrough(name, raw, scope, o)
	}
	if len(raw) != f.arity {
		return nil, sassErrors.Newf(
			sassErrors.ArityMismatch,
			"%s() expects %d arguments, got %d", name, f.arity, len(raw),
		)
	}
	args := make([]Value, len(raw))
	for i, s := range raw {
		v, err := evaluateOne(s, scope, o)
		if err != nil {
			return nil, errors.Tag(err, name+"()")
		}
		args[i] = v
	}
	v, err := f.fn(args)
	if err != nil {
		return nil, errors.Tag(err, name+"()")
	}
	return v, nil
}

// passThrough renders unknown functions like url() or attr() back as text.
// Arguments that are not valid expressions are kept verbatim.
func passThrough(name string, raw []string, scope Scope, o Options) (Value, error) {
	out := make([]string, len(raw))
	for i, s := range raw {
		if name == "url" {
			out[i] = s
			continue
		}
		v, err := evaluateOne(s, scope, o)
		if err != nil {
			if sassErrors.Is(err, sassErrors.BadLiteral) ||
				sassErrors.Is(err, sassErrors.UnmatchedParen) ||
				sassErrors.Is(err, sassErrors.ArityMismatch) {
				out[i] = s
				continue
			}
			return nil, err
		}
		out[i] = Render(v, o)
	}
	return String{Value: name + "(" + strings.Join(out, ", ") + ")"}, nil
}

func expectNumber(v Value) (Number, error) {
	n, ok := v.(Number)
	if !ok {
		return Number{}, sassErrors.Newf(
			sassErrors.TypeMismatch, "%s is not a number", v.TypeName(),
		)
	}
	return n, nil
}

func numberFn(f func(float64) float64) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		n, err := expectNumber(args[0])
		if err != nil {
			return nil, err
		}
		n.Value = f(n.Value)
		return n, nil
	}
}

func percentage(args []Value) (Value, error) {
	n, err := expectNumber(args[0])
	if err != nil {
		return nil, err
	}
	if n.HasUnit() {
		return nil, sassErrors.Newf(
			sassErrors.TypeMismatch, "%s is not unitless", n.render(Options{}),
		)
	}
	return Number{Value: n.Value * 100, Unit: "%"}, nil
}

func rgb(args []Value) (Value, error) {
	var c [3]float64
	for i, arg := range args {
		n, err := expectNumber(arg)
		if err != nil {
			return nil, err
		}
		switch n.Unit {
		case "%":
			if n.Value < 0 || n.Value > 100 {
				return nil, sassErrors.Newf(
					sassErrors.TypeMismatch,
					"channel %d must be between 0%% and 100%%", i+1,
				)
			}
			c[i] = math.Round(n.Value * 2.55)
		case "":
			if n.Value < 0 || n.Value > 255 {
				return nil, sassErrors.Newf(
					sassErrors.TypeMismatch,
					"channel %d must be between 0 and 255", i+1,
				)
			}
			c[i] = n.Value
		default:
			return nil, sassErrors.Newf(
				sassErrors.TypeMismatch,
				"channel %d has unexpected unit %s", i+1, n.Unit,
			)
		}
	}
	return RGB(c[0], c[1], c[2]), nil
}

func hsl(args []Value) (Value, error) {
	var x [3]float64
	for i, arg := range args {
		n, err := expectNumber(arg)
		if err != nil {
			return nil, err
		}
		x[i] = n.Value
	}
	h, s, l := x[0], x[1], x[2]
	if s < 0 || s > 100 {
		return nil, sassErrors.New(
			sassErrors.TypeMismatch, "saturation must be between 0% and 100%",
		)
	}
	if l < 0 || l > 100 {
		return nil, sassErrors.New(
			sassErrors.TypeMismatch, "lightness must be between 0% and 100%",
		)
	}
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	s /= 100
	l /= 100

	var m2 float64
	if l <= 0.5 {
		m2 = l * (s + 1)
	} else {
		m2 = l + s - l*s
	}
	m1 := l*2 - m2
	return RGB(
		math.Round(hueToRGB(m1, m2, h+1.0/3)*0xff),
		math.Round(hueToRGB(m1, m2, h)*0xff),
		math.Round(hueToRGB(m1, m2, h-1.0/3)*0xff),
	), nil
}

func hueToRGB(m1, m2, h float64) float64 {
	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	switch {
	case h*6 < 1:
		return m1 + (m2-m1)*h*6
	case h*2 < 1:
		return m2
	case h*3 < 2:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}
