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

package esbuildLoader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/sass-go/pkg/sass"
)

func build(t *testing.T, files map[string]string, entry string) api.BuildResult {
	t.Helper()
	dir := t.TempDir()
	for name, s := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(s), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	c, err := sass.New(sass.Options{Style: sass.Expanded}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return api.Build(api.BuildOptions{
		EntryPoints:      []string{filepath.Join(dir, entry)},
		Bundle:           true,
		MinifyWhitespace: true,
		Outdir:           filepath.Join(dir, "out"),
		Plugins:          []api.Plugin{Plugin(c)},
	})
}

func TestPlugin(t *testing.T) {
	r := build(t, map[string]string{
		"vars.sass":  "$c: red\n",
		"main.sass":  "@import vars\na\n  color: $c\n",
		"entry.css":  "@import \"./main.sass\";\nb{color:blue}\n",
		"other.sass": "x\n  y: z\n",
	}, "entry.css")
	if len(r.Errors) > 0 {
		t.Fatalf("Build() errors = %v", r.Errors)
	}
	if len(r.OutputFiles) != 1 {
		t.Fatalf("Build() output files = %d", len(r.OutputFiles))
	}
	got := string(r.OutputFiles[0].Contents)
	for _, want := range []string{"a{color:red}", "b{color:blue}"} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "y:z") {
		t.Errorf("Build() = %q, includes unrelated file", got)
	}
}

func TestPluginError(t *testing.T) {
	r := build(t, map[string]string{
		"main.sass": "a\n  color: $nope\n",
	}, "main.sass")
	if len(r.Errors) == 0 {
		t.Fatalf("Build() succeeded for broken file")
	}
	l := r.Errors[0].Location
	if l == nil || l.Line != 2 || !strings.HasSuffix(l.File, "main.sass") {
		t.Errorf("Build() error location = %+v", l)
	}
}
