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

package evaluator

import (
	"strings"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass/ast"
	"github.com/das7pad/sass-go/pkg/sass/css"
	"github.com/das7pad/sass-go/pkg/sass/internal/environment"
	"github.com/das7pad/sass-go/pkg/sass/internal/script"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

// Importer resolves an @import target relative to the importing file and
// returns its raw tree along with the resolved path.
type Importer interface {
	Import(uri, from string) (*ast.Root, string, error)
}

type Options struct {
	Script script.Options
	// VendorProperties emits the listed names ahead of a property, e.g.
	// the -moz- and -webkit- variants of border-radius. The standard name
	// follows the variants unless it is listed itself.
	VendorProperties map[string][]string
	Importer         Importer
	// File is the path of the root tree, used as base for imports.
	File string
}

// Evaluate expands root into a static tree in a fresh environment.
func Evaluate(root *ast.Root, o Options) (*css.Root, error) {
	e := evaluator{o: o}
	f := frame{env: environment.New(), file: o.File}
	if f.file != "" {
		e.importing = []string{f.file}
	}
	children, err := e.children(root, f)
	if err != nil {
		return nil, err
	}
	return &css.Root{Children: children}, nil
}

type evaluator struct {
	o         Options
	importing []string
}

// frame is the context a node is evaluated in.
type frame struct {
	env       *environment.Env
	selectors []string
	namespace string
	file      string
}

func (e *evaluator) children(n ast.Node, f frame) ([]css.Node, error) {
	var out []css.Node
	for _, c := range n.Children() {
		nodes, err := e.node(c, f)
		if err != nil {
			return nil, sassErrors.Locate(err, c.Pos())
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (e *evaluator) node(n ast.Node, f frame) ([]css.Node, error) {
	switch x := n.(type) {
	case *ast.Rule:
		return e.rule(x, f)
	case *ast.Property:
		return e.property(x, f)
	case *ast.Variable:
		if x.Optional && f.env.Has(x.Name) {
			return nil, nil
		}
		v, err := e.eval(x.Expr, f.env)
		if err != nil {
			return nil, err
		}
		f.env.Set(x.Name, v)
		return nil, nil
	case *ast.MixinDefinition:
		f.env.AddMixin(x)
		return nil, nil
	case *ast.MixinCall:
		return e.mixin(x, f)
	case *ast.Import:
		return e.importFile(x, f)
	case *ast.For:
		return e.forLoop(x, f)
	case *ast.If:
		for link := x; link != nil; link = link.Else {
			if link.Cond != "" {
				v, err := e.eval(link.Cond, f.env)
				if err != nil {
					return nil, sassErrors.Locate(err, link.Pos())
				}
				if !v.Truthy() {
					continue
				}
			}
			return e.children(link, f)
		}
		return nil, nil
	case *ast.While:
		return e.while(x, f)
	case *ast.Directive:
		text, err := script.Interpolate(x.Text, f.env, e.o.Script)
		if err != nil {
			return nil, err
		}
		children, err := e.children(x, f)
		if err != nil {
			return nil, err
		}
		return []css.Node{&css.Directive{Text: text, Children: children}}, nil
	case *ast.Comment:
		return []css.Node{&css.Comment{Lines: x.Lines}}, nil
	default:
		return nil, nil
	}
}

func (e *evaluator) eval(s string, scope script.Scope) (script.Value, error) {
	return script.Evaluate(s, scope, e.o.Script)
}

func (e *evaluator) rule(r *ast.Rule, f frame) ([]css.Node, error) {
	lines := make([][]string, 0, len(r.SelectorLines))
	var flat []string
	for _, line := range r.SelectorLines {
		resolved := make([]string, 0, len(line))
		for _, s := range line {
			s, err := script.Interpolate(s, f.env, e.o.Script)
			if err != nil {
				return nil, err
			}
			switch {
			case parentRef(s) != -1:
				if len(f.selectors) == 0 {
					return nil, sassErrors.Newf(
						sassErrors.NoParentSelector,
						"cannot use & in %q without a parent selector", s,
					)
				}
				for _, p := range f.selectors {
					resolved = append(resolved, replaceParentRef(s, p))
				}
			case len(f.selectors) > 0:
				for _, p := range f.selectors {
					resolved = append(resolved, p+" "+s)
				}
			default:
				resolved = append(resolved, s)
			}
		}
		lines = append(lines, resolved)
		flat = append(flat, resolved...)
	}
	inner := f
	inner.selectors = flat
	inner.namespace = ""
	children, err := e.children(r, inner)
	if err != nil {
		return nil, err
	}
	return []css.Node{&css.Rule{Selectors: lines, Children: children}}, nil
}

// parentRef returns the offset of the first & outside of quotes.
func parentRef(s string) int {
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inString = !inString
		case '&':
			if !inString {
				return i
			}
		}
	}
	return -1
}

func replaceParentRef(s, parent string) string {
	var b strings.Builder
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inString = !inString
		case '&':
			if !inString {
				b.WriteString(parent)
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func (e *evaluator) property(p *ast.Property, f frame) ([]css.Node, error) {
	name, err := script.Interpolate(p.Name, f.env, e.o.Script)
	if err != nil {
		return nil, err
	}
	name = f.namespace + name
	var out []css.Node
	if !p.IsNamespace() {
		var value string
		if p.Script {
			v, err2 := e.eval(p.Value, f.env)
			if err2 != nil {
				return nil, err2
			}
			value = script.Render(v, e.o.Script)
		} else {
			value, err = script.Interpolate(p.Value, f.env, e.o.Script)
			if err != nil {
				return nil, err
			}
		}
		listed := false
		for _, variant := range e.o.VendorProperties[name] {
			listed = listed || variant == name
			out = append(out, &css.Property{Name: variant, Value: value})
		}
		if !listed {
			out = append(out, &css.Property{Name: name, Value: value})
		}
	}
	inner := f
	inner.namespace = name + "-"
	children, err := e.children(p, inner)
	if err != nil {
		return nil, err
	}
	return append(out, children...), nil
}

func (e *evaluator) mixin(c *ast.MixinCall, f frame) ([]css.Node, error) {
	m, ok := f.env.GetMixin(c.Name)
	if !ok {
		return nil, sassErrors.Newf(
			sassErrors.UndefinedMixin, "undefined mixin %q", c.Name,
		)
	}
	if len(c.Args) > len(m.Params) {
		return nil, sassErrors.Newf(
			sassErrors.ArityMismatch,
			"mixin %s takes %d arguments, got %d",
			c.Name, len(m.Params), len(c.Args),
		)
	}
	scope := f.env.Push()
	for i, param := range m.Params {
		var v script.Value
		var err error
		switch {
		case i < len(c.Args):
			v, err = e.eval(c.Args[i], f.env)
		case param.HasDefault:
			v, err = e.eval(param.Default, scope)
		default:
			return nil, sassErrors.Newf(
				sassErrors.MissingArgument,
				"mixin %s defined at %s requires argument %q",
				c.Name, m.Pos(), param.Name,
			)
		}
		if err != nil {
			return nil, errors.Tag(err, "mixin "+c.Name)
		}
		scope.Set(param.Name, v)
	}
	inner := f
	inner.env = scope
	out, err := e.children(m, inner)
	if err != nil {
		return nil, err
	}
	scope.MergeInto(f.env)
	return out, nil
}

func (e *evaluator) importFile(i *ast.Import, f frame) ([]css.Node, error) {
	if i.IsCSS() {
		return []css.Node{&css.Directive{Text: "@import " + i.URI}}, nil
	}
	if e.o.Importer == nil {
		return nil, sassErrors.Wrap(
			sassErrors.ImportNotFound, &errors.NotFoundError{},
			"no importer for "+i.URI,
		)
	}
	root, p, err := e.o.Importer.Import(i.URI, f.file)
	if err != nil {
		return nil, err
	}
	for _, active := range e.importing {
		if active == p {
			return nil, sassErrors.Newf(
				sassErrors.ImportNotFound,
				"circular import of %s from %s", p, f.file,
			)
		}
	}
	e.importing = append(e.importing, p)
	defer func() {
		e.importing = e.importing[:len(e.importing)-1]
	}()
	inner := f
	inner.file = p
	return e.children(root, inner)
}

func (e *evaluator) number(s string, env *environment.Env) (script.Number, error) {
	v, err := e.eval(s, env)
	if err != nil {
		return script.Number{}, err
	}
	n, ok := v.(script.Number)
	if !ok {
		return script.Number{}, sassErrors.Newf(
			sassErrors.TypeMismatch, "%q is not a number", s,
		)
	}
	return n, nil
}

func (e *evaluator) forLoop(l *ast.For, f frame) ([]css.Node, error) {
	from, err := e.number(l.From, f.env)
	if err != nil {
		return nil, err
	}
	to, err := e.number(l.To, f.env)
	if err != nil {
		return nil, err
	}
	step, err := e.number(l.Step, f.env)
	if err != nil {
		return nil, err
	}
	// Bounds and step count in the unit of from.
	if to, err = to.In(from.Unit); err != nil {
		return nil, err
	}
	if step, err = step.In(from.Unit); err != nil {
		return nil, err
	}
	if step.Value == 0 {
		return nil, sassErrors.New(sassErrors.TypeMismatch, "step must not be 0")
	}
	dir := 1.0
	if to.Value < from.Value {
		dir = -1
	}
	stepBy := dir * abs(step.Value)
	end := to.Value
	if l.Inclusive {
		end += dir
	}
	var out []css.Node
	for i := from.Value; dir*i < dir*end; i += stepBy {
		inner := f
		inner.env = f.env.Push()
		inner.env.Set(l.Var, script.Number{Value: i, Unit: from.Unit})
		nodes, err2 := e.children(l, inner)
		if err2 != nil {
			return nil, err2
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (e *evaluator) while(w *ast.While, f frame) ([]css.Node, error) {
	var out []css.Node
	for first := true; ; first = false {
		if !(first && w.Do) {
			v, err := e.eval(w.Cond, f.env)
			if err != nil {
				return nil, err
			}
			if !v.Truthy() {
				return out, nil
			}
		}
		nodes, err := e.children(w, f)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
}
