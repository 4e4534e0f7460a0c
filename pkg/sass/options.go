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
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass/ast"
	"github.com/das7pad/sass-go/pkg/sass/internal/renderer"
)

type Style string

const (
	Nested     Style = renderer.Nested
	Expanded   Style = renderer.Expanded
	Compact    Style = renderer.Compact
	Compressed Style = renderer.Compressed
)

func (s Style) Validate() error {
	if _, ok := renderer.Get(string(s)); !ok {
		return &errors.ValidationError{Msg: "unknown style: " + string(s)}
	}
	return nil
}

type PropertySyntax = ast.PropertySyntax

const (
	EitherSyntax = ast.EitherSyntax
	NewSyntax    = ast.NewSyntax
	OldSyntax    = ast.OldSyntax
)

type Options struct {
	Style Style `yaml:"style"`
	// Ugly forces the compressed style.
	Ugly bool `yaml:"ugly"`
	// Cache keeps parsed trees in the importer between compiles.
	Cache            bool                `yaml:"cache"`
	LoadPaths        []string            `yaml:"load_paths"`
	TemplateLocation string              `yaml:"template_location"`
	PropertySyntax   PropertySyntax      `yaml:"property_syntax"`
	VendorProperties map[string][]string `yaml:"vendor_properties"`
	CSS3Colours      bool                `yaml:"css3_colours"`
	// Line is the number of the first source line.
	Line int `yaml:"line"`
}

func (o *Options) FillFromDefaults() {
	if o.Style == "" {
		o.Style = Nested
	}
	if o.Line == 0 {
		o.Line = 1
	}
}

func (o *Options) Validate() error {
	if err := o.Style.Validate(); err != nil {
		return err
	}
	switch o.PropertySyntax {
	case EitherSyntax, NewSyntax, OldSyntax:
	default:
		return &errors.ValidationError{
			Msg: "unknown property_syntax: " + string(o.PropertySyntax),
		}
	}
	return nil
}

func (o *Options) effectiveStyle() Style {
	if o.Ugly {
		return Compressed
	}
	return o.Style
}

// LoadOptions reads options from a YAML file. Unknown keys are rejected.
func LoadOptions(p string) (Options, error) {
	blob, err := os.ReadFile(p)
	if err != nil {
		return Options{}, errors.Tag(err, "read options")
	}
	d := yaml.NewDecoder(bytes.NewReader(blob))
	d.KnownFields(true)
	var o Options
	if err = d.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, &errors.ValidationError{
			Msg: "malformed options in " + p + ": " + err.Error(),
		}
	}
	return o, nil
}
