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

// nested indents rules by their nesting depth and closes blocks on the
// last declaration line.
type nested struct{}

func (r nested) Render(root *css.Root) string {
	var blocks []string
	for _, n := range root.Children {
		if lines := r.node(n, 0); len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return joinBlocks(blocks)
}

func (r nested) inline(n css.Node, indent string) string {
	switch x := n.(type) {
	case *css.Property:
		return indent + declaration(x)
	case *css.Comment:
		return comment(x, indent)
	}
	return ""
}

func (r nested) node(n css.Node, depth int) []string {
	indent := strings.Repeat(indentUnit, depth)
	switch x := n.(type) {
	case *css.Rule:
		inline, inner := css.Split(x.Children)
		var lines []string
		if x.HasProperties() {
			body := make([]string, len(inline))
			for i, c := range inline {
				body[i] = r.inline(c, indent+indentUnit)
			}
			lines = append(lines,
				indent+x.JoinSelectors(", ", ",\n"+indent)+" {\n"+
					strings.Join(body, "\n")+" }",
			)
		}
		for _, c := range inner {
			lines = append(lines, r.node(c, depth+1)...)
		}
		return lines
	case *css.Directive:
		if statement(x) {
			return []string{indent + x.Text + ";"}
		}
		inline, inner := css.Split(x.Children)
		body := make([]string, 0, len(x.Children))
		for _, c := range inline {
			body = append(body, r.inline(c, indent+indentUnit))
		}
		for _, c := range inner {
			body = append(body, r.node(c, depth+1)...)
		}
		return []string{indent + x.Text + " {\n" + strings.Join(body, "\n") + " }"}
	default:
		if s := r.inline(n, indent); s != "" {
			return []string{s}
		}
		return nil
	}
}
