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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

// Colour is either an RGB triple or transparent.
type Colour struct {
	rgb [3]float64
	set bool
}

func RGB(r, g, b float64) Colour {
	return Colour{rgb: [3]float64{r, g, b}, set: true}
}

func Transparent() Colour {
	return Colour{}
}

func colourFromUint32(v uint32) Colour {
	return RGB(float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff))
}

// ParseColour accepts #rgb, #rrggbb, transparent and the SVG names.
func ParseColour(s string) (Colour, bool) {
	s = strings.ToLower(s)
	if s == "transparent" {
		return Transparent(), true
	}
	if v, ok := colourByName[s]; ok {
		return colourFromUint32(v), true
	}
	if len(s) == 0 || s[0] != '#' {
		return Colour{}, false
	}
	h := s[1:]
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return Colour{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Colour{}, false
	}
	return colourFromUint32(uint32(v)), true
}

// Channels returns the raw channel values, ok is false for transparent.
func (c Colour) Channels() ([3]float64, bool) {
	return c.rgb, c.set
}

func (c Colour) Truthy() bool {
	return c.set
}

func (c Colour) TypeName() string {
	return "colour"
}

func normaliseChannel(v float64) uint32 {
	x := math.Round(math.Abs(v))
	if x > 255 {
		x = math.Mod(x, 255)
	}
	return uint32(x)
}

func (c Colour) packed() uint32 {
	return normaliseChannel(c.rgb[0])<<16 |
		normaliseChannel(c.rgb[1])<<8 |
		normaliseChannel(c.rgb[2])
}

func (c Colour) render(o Options) string {
	if !c.set {
		return "transparent"
	}
	v := c.packed()
	names := html4ByRGB
	if o.CSS3Colours {
		names = css3ByRGB
	}
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("#%06x", v)
}

func (c Colour) components(other Value, op string) ([3]float64, error) {
	switch o := other.(type) {
	case Colour:
		return o.rgb, nil
	case Number:
		return o.asColour().rgb, nil
	default:
		return [3]float64{}, sassErrors.Newf(
			sassErrors.TypeMismatch,
			"cannot apply %s to colour and %s", op, other.TypeName(),
		)
	}
}

func (c Colour) arithmetic(op string, other Value) (Value, error) {
	x, err := c.components(other, op)
	if err != nil {
		return nil, err
	}
	if !c.set {
		return c, nil
	}
	if o, ok := other.(Colour); ok && !o.set {
		return o, nil
	}
	out := c
	for i := range out.rgb {
		a, b := out.rgb[i], x[i]
		switch op {
		case "+":
			a += b
		case "-":
			a -= b
		case "*":
			a *= b
		case "/", "%":
			if b == 0 {
				return nil, sassErrors.New(
					sassErrors.TypeMismatch, "division by zero",
				)
			}
			if op == "/" {
				a /= b
			} else {
				a = math.Mod(a, b)
			}
		case "&":
			a = float64(int64(a) & int64(b))
		case "|":
			a = float64(int64(a) | int64(b))
		case "^":
			a = float64(int64(a) ^ int64(b))
		}
		out.rgb[i] = a
	}
	return out, nil
}

func (c Colour) shift(op string, other Value) (Value, error) {
	n, ok := other.(Number)
	if !ok || n.HasUnit() {
		return nil, sassErrors.New(
			sassErrors.TypeMismatch, "shift amount must be a unitless number",
		)
	}
	if !c.set {
		return c, nil
	}
	by := uint(n.Value)
	out := c
	for i, v := range out.rgb {
		if op == "<<" {
			out.rgb[i] = float64(int64(v) << by)
		} else {
			out.rgb[i] = float64(int64(v) >> by)
		}
	}
	return out, nil
}

func (c Colour) invert() Colour {
	if !c.set {
		return c
	}
	out := c
	for i, v := range out.rgb {
		out.rgb[i] = float64(^int64(v))
	}
	return out
}

func (c Colour) compare(op string, other Value) (Value, error) {
	o, ok := other.(Colour)
	eq := ok && o.set == c.set && (!c.set || o.packed() == c.packed())
	switch op {
	case "==":
		return Boolean(eq), nil
	case "!=":
		return Boolean(!eq), nil
	}
	return nil, sassErrors.Newf(
		sassErrors.TypeMismatch, "cannot order colours with %s", op,
	)
}
