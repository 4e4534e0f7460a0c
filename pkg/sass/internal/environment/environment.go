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

package environment

import (
	"github.com/das7pad/sass-go/pkg/sass/ast"
	"github.com/das7pad/sass-go/pkg/sass/internal/script"
)

// Env is a chain of scopes, innermost first. Lookups walk outwards, so
// mixin bodies see the variables of their call site.
type Env struct {
	vars   []map[string]script.Value
	mixins []map[string]*ast.MixinDefinition
}

func New() *Env {
	return &Env{
		vars:   []map[string]script.Value{{}},
		mixins: []map[string]*ast.MixinDefinition{{}},
	}
}

// Push returns a child scope of e. Writes to the child do not reach e
// until MergeInto is called.
func (e *Env) Push() *Env {
	return &Env{
		vars:   append([]map[string]script.Value{{}}, e.vars...),
		mixins: append([]map[string]*ast.MixinDefinition{{}}, e.mixins...),
	}
}

func (e *Env) Get(name string) (script.Value, bool) {
	for _, vars := range e.vars {
		if v, ok := vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *Env) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Set binds name in the innermost scope.
func (e *Env) Set(name string, v script.Value) {
	e.vars[0][name] = v
}

func (e *Env) AddMixin(m *ast.MixinDefinition) {
	e.mixins[0][m.Name] = m
}

func (e *Env) GetMixin(name string) (*ast.MixinDefinition, bool) {
	for _, mixins := range e.mixins {
		if m, ok := mixins[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// MergeInto copies the bindings of the innermost scope of e into parent,
// skipping names that parent can resolve already. Shadowed outer
// variables keep their value.
func (e *Env) MergeInto(parent *Env) {
	for name, v := range e.vars[0] {
		if !parent.Has(name) {
			parent.Set(name, v)
		}
	}
	for name, m := range e.mixins[0] {
		if _, ok := parent.GetMixin(name); !ok {
			parent.AddMixin(m)
		}
	}
}
