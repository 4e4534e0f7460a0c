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
	"strconv"
	"strings"
)

// Value is the result of evaluating an expression. Values are immutable,
// every operation returns a fresh one.
type Value interface {
	Truthy() bool
	TypeName() string
	render(o Options) string
}

// Options control how values are turned into CSS text.
type Options struct {
	// CSS3Colours selects the SVG colour names for rendering, the HTML4
	// names are used otherwise.
	CSS3Colours bool
}

// Render returns the CSS text for v.
func Render(v Value, o Options) string {
	if v == nil {
		return ""
	}
	return v.render(o)
}

// Unquote renders v and strips the quotes of strings, as used for
// interpolation into selectors and property names.
func Unquote(v Value, o Options) string {
	if s, ok := v.(String); ok {
		return s.Value
	}
	return Render(v, o)
}

type String struct {
	Value  string
	Quoted bool
}

func (s String) Truthy() bool {
	return s.Value != ""
}

func (s String) TypeName() string {
	return "string"
}

func (s String) render(Options) string {
	if !s.Quoted {
		return s.Value
	}
	return `"` + strings.ReplaceAll(s.Value, `"`, `\"`) + `"`
}

type Boolean bool

func (b Boolean) Truthy() bool {
	return bool(b)
}

func (b Boolean) TypeName() string {
	return "boolean"
}

func (b Boolean) render(Options) string {
	return strconv.FormatBool(bool(b))
}

func parseQuoted(s string) String {
	q := s[0]
	inner := s[1 : len(s)-1]
	inner = strings.ReplaceAll(inner, `\`+string(q), string(q))
	return String{Value: inner, Quoted: true}
}
