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

package stylesheet

import (
	"context"
	"encoding/json"
	"log"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/pkg/sass/importer"
)

type Manager interface {
	Get(ctx context.Context, name string, style sass.Style) (*Stylesheet, error)
}

type Options struct {
	Sass sass.Options
	// CacheSize limits the number of stylesheets kept in memory.
	CacheSize int
	// RedisTTL is the expiry of stylesheets shared through redis.
	RedisTTL time.Duration
	// RedisMaxEntry skips sharing stylesheets larger than this many bytes.
	RedisMaxEntry int64
}

type Stylesheet struct {
	CSS      string     `json:"css"`
	Style    sass.Style `json:"style"`
	Files    []string   `json:"files"`
	ModTimes []int64    `json:"mod_times"`
	Compiled time.Time  `json:"compiled"`
}

// New returns a manager serving the stylesheets below the template
// location. client may be nil, stylesheets are only cached in memory then.
func New(o Options, imp *importer.FS, client redis.UniversalClient) (Manager, error) {
	o.Sass.FillFromDefaults()
	if o.Sass.TemplateLocation == "" {
		return nil, &errors.ValidationError{Msg: "missing template_location"}
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 100
	}
	if o.RedisTTL <= 0 {
		o.RedisTTL = 24 * time.Hour
	}
	o.Sass.Cache = true
	local, err := lru.New[string, *Stylesheet](o.CacheSize)
	if err != nil {
		return nil, errors.Tag(err, "create stylesheet cache")
	}
	m := &manager{
		o:         o,
		imp:       imp,
		client:    client,
		local:     local,
		compilers: make(map[sass.Style]*sass.Compiler, 4),
	}
	for _, style := range []sass.Style{
		sass.Nested, sass.Expanded, sass.Compact, sass.Compressed,
	} {
		so := o.Sass
		so.Style = style
		if m.compilers[style], err = sass.New(so, imp); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type manager struct {
	o         Options
	imp       *importer.FS
	client    redis.UniversalClient
	local     *lru.Cache[string, *Stylesheet]
	compilers map[sass.Style]*sass.Compiler
	inflight  singleflight.Group
}

func cacheKey(name string, style sass.Style) string {
	return "sass:" + string(style) + ":" + name
}

// resolve maps a request path onto a file below the template location.
func (m *manager) resolve(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	return path.Join(m.o.Sass.TemplateLocation, name+importer.Extension)
}

func (m *manager) Get(ctx context.Context, name string, style sass.Style) (*Stylesheet, error) {
	if style == "" {
		style = m.o.Sass.Style
	}
	c, ok := m.compilers[style]
	if !ok {
		return nil, &errors.ValidationError{Msg: "unknown style: " + string(style)}
	}
	k := cacheKey(name, style)
	if s, found := m.local.Get(k); found && m.isFresh(s) {
		return s, nil
	}
	v, err, _ := m.inflight.Do(k, func() (interface{}, error) {
		if s := m.getShared(ctx, k); s != nil {
			m.local.Add(k, s)
			return s, nil
		}
		s, err := m.compile(c, name)
		if err != nil {
			return nil, err
		}
		m.local.Add(k, s)
		m.putShared(ctx, k, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Stylesheet), nil
}

func (m *manager) compile(c *sass.Compiler, name string) (*Stylesheet, error) {
	s, files, err := c.CompileFileWithImports(m.resolve(name))
	if err != nil {
		return nil, err
	}
	// Stat after compiling, a concurrent change invalidates on next use.
	modTimes := make([]int64, len(files))
	for i, f := range files {
		t, err2 := m.imp.ModTime(f)
		if err2 != nil {
			return nil, errors.Tag(err2, "stat "+f)
		}
		modTimes[i] = t.UnixNano()
	}
	return &Stylesheet{
		CSS:      s,
		Style:    c.Options().Style,
		Files:    files,
		ModTimes: modTimes,
		Compiled: time.Now(),
	}, nil
}

func (m *manager) isFresh(s *Stylesheet) bool {
	if len(s.Files) != len(s.ModTimes) {
		return false
	}
	for i, f := range s.Files {
		t, err := m.imp.ModTime(f)
		if err != nil || t.UnixNano() != s.ModTimes[i] {
			return false
		}
	}
	return true
}

func (m *manager) getShared(ctx context.Context, k string) *Stylesheet {
	if m.client == nil {
		return nil
	}
	blob, err := m.client.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("get %s from redis: %s", k, err)
		}
		return nil
	}
	s := &Stylesheet{}
	if err = json.Unmarshal(blob, s); err != nil {
		log.Printf("decode %s from redis: %s", k, err)
		return nil
	}
	if !m.isFresh(s) {
		return nil
	}
	return s
}

func (m *manager) putShared(ctx context.Context, k string, s *Stylesheet) {
	if m.client == nil {
		return
	}
	if m.o.RedisMaxEntry > 0 && int64(len(s.CSS)) > m.o.RedisMaxEntry {
		return
	}
	blob, err := json.Marshal(s)
	if err != nil {
		log.Printf("encode %s for redis: %s", k, err)
		return
	}
	if err = m.client.Set(ctx, k, blob, m.o.RedisTTL).Err(); err != nil {
		log.Printf("put %s into redis: %s", k, err)
	}
}
