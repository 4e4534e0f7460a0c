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

// Package importer resolves @import targets on a file system and keeps
// parsed trees around between compiles.
package importer

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2"

	"github.com/das7pad/sass-go/pkg/cache"
	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass/ast"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

const Extension = ".sass"

type Options struct {
	LoadPaths        []string
	TemplateLocation string
	// CacheSize limits the number of parsed trees kept in memory.
	CacheSize int
}

type entry struct {
	root    *ast.Root
	modTime time.Time
}

type FS struct {
	fsys     fs.FS
	prefix   string
	wd       string
	o        Options
	trees    *lru.Cache[string, entry]
	resolved *cache.Limited[string, string]
}

// New returns an importer reading from fsys. Paths are slash separated
// and relative to the root of fsys.
func New(fsys fs.FS, o Options) (*FS, error) {
	return newFS(fsys, "", o)
}

// Local returns an importer for the local file system, taking absolute
// and working directory relative paths.
func Local(o Options) (*FS, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Tag(err, "get working directory")
	}
	f, err := newFS(os.DirFS("/"), "/", o)
	if err != nil {
		return nil, err
	}
	f.wd = wd
	return f, nil
}

func newFS(fsys fs.FS, prefix string, o Options) (*FS, error) {
	if o.CacheSize <= 0 {
		o.CacheSize = 100
	}
	trees, err := lru.New[string, entry](o.CacheSize)
	if err != nil {
		return nil, errors.Tag(err, "create tree cache")
	}
	return &FS{
		fsys:     fsys,
		prefix:   prefix,
		o:        o,
		trees:    trees,
		resolved: cache.NewLimited[string, string](10 * o.CacheSize),
	}, nil
}

func (f *FS) toFS(p string) string {
	if f.wd != "" && !path.IsAbs(p) {
		p = path.Join(f.wd, p)
	}
	return path.Clean(strings.TrimPrefix(p, "/"))
}

func (f *FS) fromFS(p string) string {
	return f.prefix + p
}

func (f *FS) isFile(p string) bool {
	info, err := fs.Stat(f.fsys, p)
	return err == nil && !info.IsDir()
}

// find looks for name in dir and then in its sub directories.
func (f *FS) find(dir, name string) (string, bool) {
	if p := path.Join(dir, name); f.isFile(p) {
		return p, true
	}
	entries, err := fs.ReadDir(f.fsys, dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if p, ok := f.find(path.Join(dir, e.Name()), name); ok {
			return p, true
		}
	}
	return "", false
}

// Resolve finds the file for uri. Candidates are tried in order: uri as
// given, relative to the importing file, inside the load paths and
// finally inside the template location.
func (f *FS) Resolve(uri, from string) (string, error) {
	return f.resolved.GetOrCompute(uri+"\x00"+from, func() (string, error) {
		return f.resolve(uri, from)
	})
}

func (f *FS) resolve(uri, from string) (string, error) {
	name := strings.TrimSpace(uri)
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	if p := f.toFS(name); f.isFile(p) {
		return f.fromFS(p), nil
	}
	if from != "" && !path.IsAbs(name) {
		p := path.Join(path.Dir(f.toFS(from)), name)
		if f.isFile(p) {
			return f.fromFS(p), nil
		}
	}
	roots := f.o.LoadPaths
	if f.o.TemplateLocation != "" {
		roots = append(roots[:len(roots):len(roots)], f.o.TemplateLocation)
	}
	for _, root := range roots {
		if p, ok := f.find(f.toFS(root), name); ok {
			return f.fromFS(p), nil
		}
	}
	return "", sassErrors.Wrap(
		sassErrors.ImportNotFound, &errors.NotFoundError{},
		"unable to find "+name,
	)
}

func (f *FS) ReadFile(p string) ([]byte, error) {
	blob, err := fs.ReadFile(f.fsys, f.toFS(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sassErrors.Wrap(
				sassErrors.ImportNotFound, &errors.NotFoundError{},
				"unable to read "+p,
			)
		}
		return nil, errors.Tag(err, "read "+p)
	}
	return blob, nil
}

// GetCached returns the tree stored for p unless the file has a different
// modification time by now.
func (f *FS) GetCached(p string) (*ast.Root, bool) {
	e, ok := f.trees.Get(p)
	if !ok {
		return nil, false
	}
	t, err := f.ModTime(p)
	if err != nil || !t.Equal(e.modTime) {
		f.trees.Remove(p)
		return nil, false
	}
	return e.root, true
}

func (f *FS) ModTime(p string) (time.Time, error) {
	info, err := fs.Stat(f.fsys, f.toFS(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, &errors.NotFoundError{}
		}
		return time.Time{}, errors.Tag(err, "stat "+p)
	}
	return info.ModTime(), nil
}

func (f *FS) PutCached(p string, root *ast.Root) {
	t, err := f.ModTime(p)
	if err != nil {
		return
	}
	f.trees.Add(p, entry{root: root, modTime: t})
}
