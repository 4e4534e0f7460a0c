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

// Package sass compiles the indented Sass syntax into CSS.
package sass

import (
	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass/ast"
	"github.com/das7pad/sass-go/pkg/sass/css"
	"github.com/das7pad/sass-go/pkg/sass/importer"
	"github.com/das7pad/sass-go/pkg/sass/internal/evaluator"
	"github.com/das7pad/sass-go/pkg/sass/internal/renderer"
	"github.com/das7pad/sass-go/pkg/sass/internal/script"
)

// Importer locates and loads the files referenced by @import. Cache
// validity is up to the implementation.
type Importer interface {
	Resolve(uri, from string) (string, error)
	ReadFile(path string) ([]byte, error)
	GetCached(path string) (*ast.Root, bool)
	PutCached(path string, root *ast.Root)
}

type Compiler struct {
	o        Options
	importer Importer
	renderer renderer.Renderer
}

// New validates o and returns a compiler. A nil importer resolves imports
// on the local file system.
func New(o Options, imp Importer) (*Compiler, error) {
	o.FillFromDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if imp == nil {
		local, err := importer.Local(importer.Options{
			LoadPaths:        o.LoadPaths,
			TemplateLocation: o.TemplateLocation,
		})
		if err != nil {
			return nil, err
		}
		imp = local
	}
	r, _ := renderer.Get(string(o.effectiveStyle()))
	return &Compiler{o: o, importer: imp, renderer: r}, nil
}

// Compile renders source, imports are resolved relative to the working
// directory.
func Compile(source string, o Options) (string, error) {
	c, err := New(o, nil)
	if err != nil {
		return "", err
	}
	return c.Compile(source)
}

// CompileFile renders the file at path.
func CompileFile(path string, o Options) (string, error) {
	c, err := New(o, nil)
	if err != nil {
		return "", err
	}
	return c.CompileFile(path)
}

func (c *Compiler) Options() Options {
	return c.o
}

func (c *Compiler) Compile(source string) (string, error) {
	root, err := ast.ParseString(source, "", c.o.Line, c.astOptions())
	if err != nil {
		return "", err
	}
	return c.run(c.newLoader(), root, "")
}

func (c *Compiler) CompileFile(path string) (string, error) {
	s, _, err := c.CompileFileWithImports(path)
	return s, err
}

// CompileFileWithImports renders the file at path and lists the files that
// were read for it, the entry file first. The list is populated on error
// as well, as far as the compile got.
func (c *Compiler) CompileFileWithImports(path string) (string, []string, error) {
	p, err := c.importer.Resolve(path, "")
	if err != nil {
		return "", nil, err
	}
	l := c.newLoader()
	s, err := c.run(l, nil, p)
	return s, l.files, err
}

// Evaluate expands source into its static tree.
func (c *Compiler) Evaluate(source string) (*css.Root, error) {
	root, err := ast.ParseString(source, "", c.o.Line, c.astOptions())
	if err != nil {
		return nil, err
	}
	l := c.newLoader()
	return evaluator.Evaluate(root, c.evaluatorOptions(l, ""))
}

// Render turns a static tree into CSS text using the configured style.
func (c *Compiler) Render(root *css.Root) string {
	return c.renderer.Render(root)
}

func (c *Compiler) astOptions() ast.Options {
	return ast.Options{PropertySyntax: c.o.PropertySyntax}
}

func (c *Compiler) evaluatorOptions(l *loader, file string) evaluator.Options {
	return evaluator.Options{
		Script:           script.Options{CSS3Colours: c.o.CSS3Colours},
		VendorProperties: c.o.VendorProperties,
		Importer:         l,
		File:             file,
	}
}

func (c *Compiler) run(l *loader, root *ast.Root, file string) (string, error) {
	if root == nil {
		var err error
		if root, err = l.load(file); err != nil {
			return "", err
		}
	}
	static, err := evaluator.Evaluate(root, c.evaluatorOptions(l, file))
	if err != nil {
		return "", err
	}
	out := c.renderer.Render(static)
	l.commit()
	return out, nil
}

func (c *Compiler) newLoader() *loader {
	return &loader{c: c, pending: map[string]*ast.Root{}}
}

// loader parses imported files for a single compile. Fresh trees are
// handed to the cache only once the compile succeeded.
type loader struct {
	c       *Compiler
	pending map[string]*ast.Root
	files   []string
}

func (l *loader) Import(uri, from string) (*ast.Root, string, error) {
	p, err := l.c.importer.Resolve(uri, from)
	if err != nil {
		return nil, "", errors.Tag(err, "import "+uri)
	}
	root, err := l.load(p)
	if err != nil {
		return nil, "", err
	}
	return root, p, nil
}

func (l *loader) load(p string) (*ast.Root, error) {
	if root, ok := l.pending[p]; ok {
		return root, nil
	}
	l.files = append(l.files, p)
	if l.c.o.Cache {
		if root, ok := l.c.importer.GetCached(p); ok {
			l.pending[p] = root
			return root, nil
		}
	}
	blob, err := l.c.importer.ReadFile(p)
	if err != nil {
		return nil, err
	}
	root, err := ast.ParseString(string(blob), p, 1, l.c.astOptions())
	if err != nil {
		return nil, err
	}
	l.pending[p] = root
	return root, nil
}

func (l *loader) commit() {
	if !l.c.o.Cache {
		return
	}
	for p, root := range l.pending {
		l.c.importer.PutCached(p, root)
	}
}
