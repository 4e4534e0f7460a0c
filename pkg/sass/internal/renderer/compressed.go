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

package renderer

import (
	"strings"

	"github.com/das7pad/sass-go/pkg/sass/css"
)

type compressed struct{}

func (r compressed) Render(root *css.Root) string {
	var b strings.Builder
	r.block(&b, root.Children)
	return b.String()
}

func (r compressed) block(b *strings.Builder, children []css.Node) {
	inline, nested := css.Split(children)
	first := true
	for _, n := range inline {
		if p, ok := n.(*css.Property); ok {
			if !first {
				b.WriteByte(';')
			}
			first = false
			b.WriteString(p.Name)
			b.WriteByte(':')
			b.WriteString(p.Value)
		}
	}
	if !first && len(nested) > 0 {
		b.WriteByte(';')
	}
	for _, n := range nested {
		r.node(b, n)
	}
}

func (r compressed) node(b *strings.Builder, n css.Node) {
	switch x := n.(type) {
	case *css.Rule:
		inline, nested := css.Split(x.Children)
		if x.HasProperties() {
			b.WriteString(x.JoinSelectors(",", ","))
			b.WriteByte('{')
			r.block(b, inline)
			b.WriteByte('}')
		}
		for _, c := range nested {
			r.node(b, c)
		}
	case *css.Directive:
		b.WriteString(x.Text)
		if statement(x) {
			b.WriteByte(';')
			return
		}
		b.WriteByte('{')
		r.block(b, x.Children)
		b.WriteByte('}')
	}
}
