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

type Renderer interface {
	Render(root *css.Root) string
}

const (
	Nested     = "nested"
	Expanded   = "expanded"
	Compact    = "compact"
	Compressed = "compressed"
)

var renderers = map[string]Renderer{
	Nested:     nested{},
	Expanded:   expanded{},
	Compact:    compact{},
	Compressed: compressed{},
}

// Get returns the renderer for style.
func Get(style string) (Renderer, bool) {
	r, ok := renderers[style]
	return r, ok
}

const indentUnit = "  "

func declaration(p *css.Property) string {
	return p.Name + ": " + p.Value + ";"
}

func comment(c *css.Comment, indent string) string {
	return indent + "/* " + strings.Join(c.Lines, "\n"+indent+" * ") + " */"
}

// statement reports whether a directive has no block, e.g. @import.
func statement(d *css.Directive) bool {
	return len(d.Children) == 0
}

// joinBlocks separates top level blocks by a blank line.
func joinBlocks(blocks []string) string {
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
