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

// expanded writes one declaration per line. Rules are not indented by
// nesting, only by enclosing directives.
type expanded struct{}

func (r expanded) Render(root *css.Root) string {
	return joinBlocks(r.blocks(root.Children, ""))
}

func (r expanded) blocks(children []css.Node, indent string) []string {
	var out []string
	for _, n := range children {
		out = append(out, r.node(n, indent)...)
	}
	return out
}

func (r expanded) inline(n css.Node, indent string) string {
	switch x := n.(type) {
	case *css.Property:
		return indent + declaration(x)
	case *css.Comment:
		return comment(x, indent)
	}
	return ""
}

func (r expanded) node(n css.Node, indent string) []string {
	switch x := n.(type) {
	case *css.Rule:
		inline, nested := css.Split(x.Children)
		var out []string
		if x.HasProperties() {
			var b strings.Builder
			b.WriteString(indent)
			b.WriteString(x.JoinSelectors(", ", ",\n"+indent))
			b.WriteString(" {\n")
			for _, c := range inline {
				b.WriteString(r.inline(c, indent+indentUnit))
				b.WriteByte('\n')
			}
			b.WriteString(indent)
			b.WriteByte('}')
			out = append(out, b.String())
		}
		return append(out, r.blocks(nested, indent)...)
	case *css.Directive:
		if statement(x) {
			return []string{indent + x.Text + ";"}
		}
		inline, nested := css.Split(x.Children)
		lines := make([]string, 0, len(x.Children))
		for _, c := range inline {
			lines = append(lines, r.inline(c, indent+indentUnit))
		}
		lines = append(lines, r.blocks(nested, indent+indentUnit)...)
		return []string{
			indent + x.Text + " {\n" + strings.Join(lines, "\n") +
				"\n" + indent + "}",
		}
	default:
		if s := r.inline(n, indent); s != "" {
			return []string{s}
		}
		return nil
	}
}
