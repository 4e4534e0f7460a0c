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

package ast

import (
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

// Node is an element of the raw tree. The raw tree is never mutated after
// Parse returns.
type Node interface {
	Pos() sassErrors.Position
	Children() []Node
	add(n Node)
}

type base struct {
	pos      sassErrors.Position
	children []Node
}

func (b *base) Pos() sassErrors.Position {
	return b.pos
}

func (b *base) Children() []Node {
	return b.children
}

func (b *base) add(n Node) {
	b.children = append(b.children, n)
}

type Root struct {
	base
}

// Rule holds the selectors of a rule, one entry per physical source line.
type Rule struct {
	base
	SelectorLines [][]string
}

type Property struct {
	base
	Name  string
	Value string
	// Script values are evaluated as SassScript, others pass through
	// after interpolation.
	Script bool
}

// IsNamespace reports whether the property only prefixes its children.
func (p *Property) IsNamespace() bool {
	return p.Value == ""
}

type Variable struct {
	base
	Name     string
	Expr     string
	Optional bool
}

type Param struct {
	Name       string
	Default    string
	HasDefault bool
}

type MixinDefinition struct {
	base
	Name   string
	Params []Param
}

type MixinCall struct {
	base
	Name string
	Args []string
}

type Import struct {
	base
	URI string
}

// IsCSS reports whether the import is left for the browser to resolve.
func (i *Import) IsCSS() bool {
	return len(i.URI) > 0 && (i.URI[0] == '"' || i.URI[0] == '\'' ||
		len(i.URI) > 4 && i.URI[:4] == "url(")
}

type For struct {
	base
	Var       string
	From      string
	To        string
	Inclusive bool
	Step      string
}

// If is one link of an @if/@else if/@else chain. The trailing @else has
// an empty Cond.
type If struct {
	base
	Cond string
	Else *If
}

func (i *If) last() *If {
	for i.Else != nil {
		i = i.Else
	}
	return i
}

type While struct {
	base
	Cond string
	// Do runs the body before checking Cond.
	Do bool
}

// Directive is any other @-rule, e.g. @media, kept verbatim.
type Directive struct {
	base
	Text string
}

// Comment is a CSS comment, Sass-only comments do not reach the tree.
type Comment struct {
	base
	Lines []string
}
