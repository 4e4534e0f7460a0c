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

// compact puts every rule on a single line.
type compact struct{}

func (r compact) Render(root *css.Root) string {
	var blocks []string
	for _, n := range root.Children {
		if lines := r.node(n); len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return joinBlocks(blocks)
}

func (r compact) inline(n css.Node) string {
	switch x := n.(type) {
	case *css.Property:
		return declaration(x)
	case *css.Comment:
		return comment(x, "")
	}
	return ""
}

func (r compact) node(n css.Node) []string {
	switch x := n.(type) {
	case *css.Rule:
		inline, nested := css.Split(x.Children)
		var lines []string
		if x.HasProperties() {
			parts := make([]string, len(inline))
			for i, c := range inline {
				parts[i] = r.inline(c)
			}
			lines = append(lines, x.JoinSelectors(", ", ", ")+
				" { "+strings.Join(parts, " ")+" }")
		}
		for _, c := range nested {
			lines = append(lines, r.node(c)...)
		}
		return lines
	case *css.Directive:
		if statement(x) {
			return []string{x.Text + ";"}
		}
		inline, nested := css.Split(x.Children)
		parts := make([]string, 0, len(x.Children))
		for _, c := range inline {
			parts = append(parts, r.inline(c))
		}
		for _, c := range nested {
			parts = append(parts, r.node(c)...)
		}
		return []string{x.Text + " { " + strings.Join(parts, " ") + " }"}
	default:
		if s := r.inline(n); s != "" {
			return []string{s}
		}
		return nil
	}
}
