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

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/das7pad/sass-go/pkg/sass"
)

func TestBundle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"theme.sass": "$c: red\na\n  color: $c\n",
		"app.css":    "@import \"./theme.sass\";\nb { color: blue; }\n",
		"bad.sass":   "a\n  color: $nope\n",
	})
	c, err := sass.New(sass.Options{Style: sass.Compressed}, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := bundle(c, []string{filepath.Join(dir, "app.css")}, filepath.Join(dir, "dist"), true, false)
	if len(r.Errors) > 0 {
		t.Fatalf("bundle() errors = %v", r.Errors)
	}
	if len(r.OutputFiles) != 1 {
		t.Fatalf("bundle() output files = %d", len(r.OutputFiles))
	}
	got := string(r.OutputFiles[0].Contents)
	for _, want := range []string{"a{color:red}", "b{color:"} {
		if !strings.Contains(got, want) {
			t.Errorf("bundle() = %q, missing %q", got, want)
		}
	}

	r = bundle(c, []string{filepath.Join(dir, "bad.sass")}, filepath.Join(dir, "dist"), false, false)
	if len(r.Errors) != 1 {
		t.Fatalf("bundle() errors = %v, want one", r.Errors)
	}
	if l := r.Errors[0].Location; l == nil || l.Line != 2 {
		t.Errorf("bundle() error location = %+v", l)
	}
}
