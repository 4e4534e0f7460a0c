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
	"strconv"

	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

const precision = 1e4

var cssUnits = map[string]bool{
	"%":  true,
	"em": true,
	"ex": true,
	"px": true,
	"in": true,
	"cm": true,
	"mm": true,
	"pt": true,
	"pc": true,
}

// unitsPerInch drives conversions between absolute units.
var unitsPerInch = map[string]float64{
	"em": 6,
	"ex": 3,
	"px": 96,
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
	"pc": 6,
}

type Number struct {
	Value float64
	Unit  string
}

func NewNumber(s string) (Number, error) {
	i := len(s)
	for i > 0 && isUnitChar(s[i-1]) {
		i--
	}
	n := Number{Unit: s[i:]}
	if n.Unit != "" && !cssUnits[n.Unit] {
		return Number{}, sassErrors.Newf(
			sassErrors.BadLiteral, "invalid unit %q in %q", n.Unit, s,
		)
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return Number{}, sassErrors.Wrap(sassErrors.BadLiteral, err, s)
	}
	n.Value = v
	return n, nil
}

func isUnitChar(c byte) bool {
	return c == '%' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (n Number) Truthy() bool {
	return n.Value != 0
}

func (n Number) TypeName() string {
	return "number"
}

func (n Number) HasUnit() bool {
	return n.Unit != ""
}

func (n Number) render(Options) string {
	var v float64
	if n.Unit == "px" {
		v = math.Floor(n.Value)
	} else {
		v = math.Round(n.Value*precision) / precision
	}
	if v == 0 {
		// Avoid "-0".
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + n.Unit
}

// align converts other into the unit of n. A unitless n adopts the unit of
// other.
func (n Number) align(other Number) (Number, Number, error) {
	if !other.HasUnit() || other.Unit == n.Unit {
		return n, other, nil
	}
	if !n.HasUnit() {
		n.Unit = other.Unit
		return n, other, nil
	}
	a, okA := unitsPerInch[n.Unit]
	b, okB := unitsPerInch[other.Unit]
	if !okA || !okB {
		return n, other, sassErrors.Newf(
			sassErrors.UnitMismatch,
			"incompatible units: %s and %s", n.Unit, other.Unit,
		)
	}
	other.Value = other.Value * a / b
	other.Unit = n.Unit
	return n, other, nil
}

// In converts n into unit. Unitless numbers and an empty unit keep the value.
func (n Number) In(unit string) (Number, error) {
	_, c, err := Number{Unit: unit}.align(n)
	return c, err
}

func (n Number) arithmetic(op string, other Value) (Value, error) {
	switch o := other.(type) {
	case Colour:
		return n.asColour().arithmetic(op, o)
	case Number:
		a, b, err := n.align(o)
		if err != nil {
			return nil, err
		}
		switch op {
		case "+":
			a.Value += b.Value
		case "-":
			a.Value -= b.Value
		case "*":
			a.Value *= b.Value
		case "/":
			if b.Value == 0 {
				return nil, sassErrors.New(
					sassErrors.TypeMismatch, "division by zero",
				)
			}
			a.Value /= b.Value
			if o.HasUnit() && n.HasUnit() {
				a.Unit = ""
			}
		case "%":
			if b.Value == 0 {
				return nil, sassErrors.New(
					sassErrors.TypeMismatch, "modulo by zero",
				)
			}
			a.Value = math.Mod(a.Value, b.Value)
		}
		return a, nil
	default:
		return nil, sassErrors.Newf(
			sassErrors.TypeMismatch,
			"cannot apply %s to number and %s", op, other.TypeName(),
		)
	}
}

func (n Number) compare(op string, other Value) (Value, error) {
	o, ok := other.(Number)
	if !ok {
		switch op {
		case "==":
			return Boolean(false), nil
		case "!=":
			return Boolean(true), nil
		}
		return nil, sassErrors.Newf(
			sassErrors.TypeMismatch,
			"cannot compare number and %s", other.TypeName(),
		)
	}
	a, b, err := n.align(o)
	if err != nil {
		return nil, err
	}
	return compareFloat(op, a.Value, b.Value), nil
}

func compareFloat(op string, a, b float64) Boolean {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func (n Number) asColour() Colour {
	return Colour{rgb: [3]float64{n.Value, n.Value, n.Value}, set: true}
}

// Int returns the value as integer, rejecting fractions and units.
func (n Number) Int() (int, error) {
	if n.HasUnit() {
		return 0, sassErrors.Newf(
			sassErrors.TypeMismatch, "%s is not unitless", n.render(Options{}),
		)
	}
	if n.Value != math.Trunc(n.Value) {
		return 0, sassErrors.Newf(
			sassErrors.TypeMismatch, "%s is not an integer", n.render(Options{}),
		)
	}
	return int(n.Value), nil
}
