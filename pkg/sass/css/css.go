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

// Package css holds the static tree, the fully expanded stylesheet that
// the renderers turn into text. Nodes are not modified after evaluation.
package css

import (
	"strings"
)

type Node interface {
	isNode()
}

type Root struct {
	Children []Node
}

// Rule carries its resolved selectors grouped by source line.
type Rule struct {
	Selectors [][]string
	Children  []Node
}

type Property struct {
	Name  string
	Value string
}

type Comment struct {
	Lines []string
}

type Directive struct {
	Text     string
	Children []Node
}

func (*Rule) isNode()      {}
func (*Property) isNode()  {}
func (*Comment) isNode()   {}
func (*Directive) isNode() {}

// Split partitions children into declarations and nested blocks, keeping
// their relative order.
func Split(children []Node) (inline []Node, nested []Node) {
	for _, c := range children {
		switch c.(type) {
		case *Property, *Comment:
			inline = append(inline, c)
		default:
			nested = append(nested, c)
		}
	}
	return inline, nested
}

// HasProperties reports whether a rule emits any declaration of its own.
func (r *Rule) HasProperties() bool {
	for _, c := range r.Children {
		if _, ok := c.(*Property); ok {
			return true
		}
	}
	return false
}

// JoinSelectors renders the selectors, sep joins the selectors of one
// source line and lineSep joins the lines.
func (r *Rule) JoinSelectors(sep, lineSep string) string {
	parts := make([]string, len(r.Selectors))
	for i, line := range r.Selectors {
		parts[i] = strings.Join(line, sep)
	}
	return strings.Join(parts, lineSep)
}
