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

package sass

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass/importer"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

func src(lines ...string) string {
	return strings.Join(lines, "\n")
}

func compressed(t *testing.T, source string, o Options) (string, error) {
	t.Helper()
	o.Style = Compressed
	imp, err := importer.New(fstest.MapFS{}, importer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(o, imp)
	if err != nil {
		t.Fatal(err)
	}
	return c.Compile(source)
}

func TestCompile(t *testing.T) {
	type args struct {
		source string
		o      Options
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "unit arithmetic",
			args: args{source: src("a", "  width= 2px + 3px", "  height= 1in + 0")},
			want: "a{width:5px;height:1in}",
		},
		{
			name: "selector nesting",
			args: args{source: src("a", "  b", "    color: red")},
			want: "a b{color:red}",
		},
		{
			name: "parent reference",
			args: args{source: src(".foo", "  &:hover", "    color: blue")},
			want: ".foo:hover{color:blue}",
		},
		{
			name: "parent reference with multiple parents",
			args: args{source: src("a, b", "  &.x, .y &", "    color: blue")},
			want: "a.x,b.x,.y a,.y b{color:blue}",
		},
		{
			name: "own properties before nested rules",
			args: args{source: src("a", "  b", "    color: red", "  margin: 0")},
			want: "a{margin:0}a b{color:red}",
		},
		{
			name: "mixin defaults",
			args: args{source: src(
				"=m($a, $b: 2px)",
				"  width: $a",
				"  height: $b",
				".x",
				"  +m(1px)",
			)},
			want: ".x{width:1px;height:2px}",
		},
		{
			name: "mixin with old syntax",
			args: args{source: src(
				"!pad = 3px",
				"=box(!w, !h = !w * 2)",
				"  :width= !w",
				"  :height= !h",
				"  :padding= !pad",
				".x",
				"  +box(1px)",
			)},
			want: ".x{width:1px;height:2px;padding:3px}",
		},
		{
			name: "mixin resolves & at the call site",
			args: args{source: src(
				"=hover",
				"  &:hover",
				"    color: red",
				".a",
				"  +hover",
			)},
			want: ".a:hover{color:red}",
		},
		{
			name: "mixin writes unbound names back",
			args: args{source: src(
				"=setw",
				"  $w: 5px",
				".a",
				"  +setw",
				"  width: $w",
			)},
			want: ".a{width:5px}",
		},
		{
			name: "mixin keeps shadowed names",
			args: args{source: src(
				"$w: 1px",
				"=setw",
				"  $w: 5px",
				".a",
				"  +setw",
				"  width: $w",
			)},
			want: ".a{width:1px}",
		},
		{
			name: "for to",
			args: args{source: src(
				"@for $i from 1 to 3",
				"  .a-#{$i}",
				"    width: $i * 1px",
			)},
			want: ".a-1{width:1px}.a-2{width:2px}",
		},
		{
			name: "for through",
			args: args{source: src(
				"@for $i from 1 through 3",
				"  .a-#{$i}",
				"    width: $i * 1px",
			)},
			want: ".a-1{width:1px}.a-2{width:2px}.a-3{width:3px}",
		},
		{
			name: "for downwards with step",
			args: args{source: src(
				"@for !i from 5 through 1 step 2",
				"  .a-#{!i}",
				"    z-index= !i",
			)},
			want: ".a-5{z-index:5}.a-3{z-index:3}.a-1{z-index:1}",
		},
		{
			name: "if else chain",
			args: args{source: src(
				"$x: 2",
				"@if $x == 1",
				"  .a",
				"    c: 1",
				"@else if $x == 2",
				"  .b",
				"    c: 2",
				"@else",
				"  .c",
				"    c: 3",
			)},
			want: ".b{c:2}",
		},
		{
			name: "if without match",
			args: args{source: src("@if false", "  .a", "    c: 1")},
			want: "",
		},
		{
			name: "while",
			args: args{source: src(
				"$i: 6",
				"@while $i > 0",
				"  .item-#{$i}",
				"    width: 2em * $i",
				"  $i: $i - 2",
			)},
			want: ".item-6{width:12em}.item-4{width:8em}.item-2{width:4em}",
		},
		{
			name: "do runs at least once",
			args: args{source: src(
				"$i: 0",
				"@do $i > 0",
				"  .once",
				"    x: y",
			)},
			want: ".once{x:y}",
		},
		{
			name: "optional assignment",
			args: args{source: src(
				"$a: 1px",
				"$a: 2px !default",
				"!b ||= 3px",
				".x",
				"  width: $a",
				"  height: $b",
			)},
			want: ".x{width:1px;height:3px}",
		},
		{
			name: "property namespace",
			args: args{source: src(
				"a",
				"  font:",
				"    family: serif",
				"    size: 12px",
			)},
			want: "a{font-family:serif;font-size:12px}",
		},
		{
			name: "vendor properties",
			args: args{
				source: src("a", "  border-radius: 2px"),
				o: Options{VendorProperties: map[string][]string{
					"border-radius": {
						"-moz-border-radius", "border-radius",
					},
				}},
			},
			want: "a{-moz-border-radius:2px;border-radius:2px}",
		},
		{
			name: "html4 colour",
			args: args{source: src("a", "  color= rgb(255, 0, 0)")},
			want: "a{color:red}",
		},
		{
			name: "css3 colour",
			args: args{
				source: src("a", "  color= #f0f8ff"),
				o:      Options{CSS3Colours: true},
			},
			want: "a{color:aliceblue}",
		},
		{
			name: "css import passes through",
			args: args{source: src("@import url(print.css)", "a", "  b: c")},
			want: "@import url(print.css);a{b:c}",
		},
		{
			name: "media directive",
			args: args{source: src("@media print", "  a", "    color: black")},
			want: "@media print{a{color:black}}",
		},
		{
			name: "comments are dropped",
			args: args{source: src("// gone", "/* kept elsewhere", "a", "  b: c")},
			want: "a{b:c}",
		},
		{
			name: "important",
			args: args{source: src("$w: 1px", "a", "  width: $w !important")},
			want: "a{width:1px !important}",
		},
		{
			name: "ugly forces compressed",
			args: args{
				source: src("a", "  b: c"),
				o:      Options{Ugly: true},
			},
			want: "a{b:c}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compressed(t, tt.args.source, tt.args.o)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantKind sassErrors.Kind
		wantLine int
	}{
		{
			name:     "missing argument",
			source:   src("=m($a, $b: 2px)", "  width: $a", ".x", "  +m"),
			wantKind: sassErrors.MissingArgument,
			wantLine: 4,
		},
		{
			name:     "too many arguments",
			source:   src("=m($a)", "  width: $a", ".x", "  +m(1, 2)"),
			wantKind: sassErrors.ArityMismatch,
			wantLine: 4,
		},
		{
			name:     "undefined mixin",
			source:   src(".x", "  +nope"),
			wantKind: sassErrors.UndefinedMixin,
			wantLine: 2,
		},
		{
			name:     "undefined variable",
			source:   src(".x", "", "  width: $nope"),
			wantKind: sassErrors.UndefinedVariable,
			wantLine: 3,
		},
		{
			name:     "unit mismatch",
			source:   src("a", "  width= 1px + 1%"),
			wantKind: sassErrors.UnitMismatch,
			wantLine: 2,
		},
		{
			name:     "no parent selector",
			source:   src("&:hover", "  color: red"),
			wantKind: sassErrors.NoParentSelector,
			wantLine: 1,
		},
		{
			name:     "type mismatch in function",
			source:   src("a", "  width= percentage(1px)"),
			wantKind: sassErrors.TypeMismatch,
			wantLine: 2,
		},
		{
			name:     "error inside mixin body",
			source:   src("=m", "  width: $nope", ".x", "  +m"),
			wantKind: sassErrors.UndefinedVariable,
			wantLine: 2,
		},
		{
			name:     "bad indent",
			source:   src("a", "\tb: c", "  d: e"),
			wantKind: sassErrors.BadIndent,
			wantLine: 3,
		},
		{
			name:     "missing import",
			source:   src("@import nope"),
			wantKind: sassErrors.ImportNotFound,
			wantLine: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compressed(t, tt.source, Options{})
			if got != "" {
				t.Errorf("Compile() produced output %q", got)
			}
			var e *sassErrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("Compile() error = %v, want %s", err, tt.wantKind)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Compile() kind = %s, want %s: %s", e.Kind, tt.wantKind, err)
			}
			if e.Position.Line != tt.wantLine {
				t.Errorf("Compile() line = %d, want %d: %s", e.Position.Line, tt.wantLine, err)
			}
		})
	}
}

const styleSample = `a
  color: red
  b
    margin: 0
    padding: 1px
@media print
  a, p
    color: black`

func TestStyles(t *testing.T) {
	source := "/* header */\n" + styleSample
	tests := []struct {
		style Style
		want  string
	}{
		{
			style: Nested,
			want: "/* header */\n\n" +
				"a {\n  color: red; }\n" +
				"  a b {\n    margin: 0;\n    padding: 1px; }\n\n" +
				"@media print {\n  a, p {\n    color: black; } }\n",
		},
		{
			style: Expanded,
			want: "/* header */\n\n" +
				"a {\n  color: red;\n}\n\n" +
				"a b {\n  margin: 0;\n  padding: 1px;\n}\n\n" +
				"@media print {\n  a, p {\n    color: black;\n  }\n}\n",
		},
		{
			style: Compact,
			want: "/* header */\n\n" +
				"a { color: red; }\n" +
				"a b { margin: 0; padding: 1px; }\n\n" +
				"@media print { a, p { color: black; } }\n",
		},
		{
			style: Compressed,
			want: "a{color:red}a b{margin:0;padding:1px}" +
				"@media print{a,p{color:black}}",
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			c, err := New(Options{Style: tt.style}, nil)
			if err != nil {
				t.Fatal(err)
			}
			got, err := c.Compile(source)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	for _, style := range []Style{Nested, Expanded, Compact, Compressed} {
		c, err := New(Options{Style: style}, nil)
		if err != nil {
			t.Fatal(err)
		}
		static, err := c.Evaluate(styleSample)
		if err != nil {
			t.Fatal(err)
		}
		if a, b := c.Render(static), c.Render(static); a != b {
			t.Errorf("%s: Render() differs between calls: %q vs %q", style, a, b)
		}
	}
}

func TestStylesDenoteTheSameStylesheet(t *testing.T) {
	var want string
	for _, style := range []Style{Compressed, Compact, Expanded, Nested} {
		c, err := New(Options{Style: style}, nil)
		if err != nil {
			t.Fatal(err)
		}
		out, err := c.Compile(styleSample)
		if err != nil {
			t.Fatal(err)
		}
		r := api.Transform(out, api.TransformOptions{
			Loader:           api.LoaderCSS,
			MinifyWhitespace: true,
		})
		if len(r.Errors) > 0 {
			t.Fatalf("%s: esbuild rejected output %q: %v", style, out, r.Errors)
		}
		got := string(r.Code)
		if want == "" {
			want = got
		} else if got != want {
			t.Errorf("%s: normalised output %q, want %q", style, got, want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		o       Options
		wantErr bool
	}{
		{name: "defaults", o: Options{}, wantErr: false},
		{name: "old syntax", o: Options{PropertySyntax: OldSyntax}, wantErr: false},
		{name: "bad style", o: Options{Style: "pretty"}, wantErr: true},
		{name: "bad syntax", o: Options{PropertySyntax: "newest"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.o, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsValidationError(err) {
				t.Errorf("New() error = %v is not a validation error", err)
			}
		})
	}
}

type countingImporter struct {
	*importer.FS
	reads int
}

func (c *countingImporter) ReadFile(p string) ([]byte, error) {
	c.reads++
	return c.FS.ReadFile(p)
}

func newCountingImporter(t *testing.T) *countingImporter {
	t.Helper()
	imp, err := importer.New(fstest.MapFS{
		"main.sass": {Data: []byte("@import part\na\n  b: $x\n")},
		"bad.sass":  {Data: []byte("@import part\na\n  b: $nope\n")},
		"part.sass": {Data: []byte("$x: 1\n")},
	}, importer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return &countingImporter{FS: imp}
}

func TestCompileFileCache(t *testing.T) {
	tests := []struct {
		name      string
		cache     bool
		wantReads int
	}{
		{name: "with cache", cache: true, wantReads: 2},
		{name: "without cache", cache: false, wantReads: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := newCountingImporter(t)
			c, err := New(Options{Style: Compressed, Cache: tt.cache}, imp)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 2; i++ {
				got, err2 := c.CompileFile("main")
				if err2 != nil {
					t.Fatalf("CompileFile() error = %v", err2)
				}
				if got != "a{b:1}" {
					t.Errorf("CompileFile() = %q", got)
				}
			}
			if imp.reads != tt.wantReads {
				t.Errorf("ReadFile() calls = %d, want %d", imp.reads, tt.wantReads)
			}
		})
	}
}

func TestCompileFileFailureIsNotCached(t *testing.T) {
	imp := newCountingImporter(t)
	c, err := New(Options{Style: Compressed, Cache: true}, imp)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.CompileFile("bad.sass")
	var e *sassErrors.Error
	if !errors.As(err, &e) || e.Kind != sassErrors.UndefinedVariable {
		t.Fatalf("CompileFile() error = %v", err)
	}
	if e.Position.File != "bad.sass" || e.Position.Line != 3 {
		t.Errorf("CompileFile() position = %s", e.Position)
	}
	for _, p := range []string{"bad.sass", "part.sass"} {
		if _, ok := imp.GetCached(p); ok {
			t.Errorf("GetCached(%q) hit after failed compile", p)
		}
	}
}

func TestCompileFileMissing(t *testing.T) {
	imp := newCountingImporter(t)
	c, err := New(Options{}, imp)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = c.CompileFile("nope"); !errors.IsNotFoundError(err) {
		t.Errorf("CompileFile() error = %v, want not found", err)
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	write := func(name, s string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(s), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}
	tests := []struct {
		name    string
		content string
		want    Options
		wantErr bool
	}{
		{
			name: "full",
			content: `style: compact
load_paths: [a, b]
template_location: tpl
property_syntax: new
vendor_properties:
  border-radius: [-moz-border-radius, border-radius]
css3_colours: true
cache: true
`,
			want: Options{
				Style:            Compact,
				LoadPaths:        []string{"a", "b"},
				TemplateLocation: "tpl",
				PropertySyntax:   NewSyntax,
				VendorProperties: map[string][]string{
					"border-radius": {"-moz-border-radius", "border-radius"},
				},
				CSS3Colours: true,
				Cache:       true,
			},
		},
		{
			name:    "empty",
			content: "",
			want:    Options{},
		},
		{
			name:    "unknown key",
			content: "colour: red\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadOptions(write(tt.name+".yaml", tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.IsValidationError(err) {
					t.Errorf("LoadOptions() error = %v, want validation error", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
