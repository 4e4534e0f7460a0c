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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/das7pad/sass-go/pkg/sass"
)

type globalFlags struct {
	config           string
	style            string
	loadPaths        []string
	templateLocation string
	propertySyntax   string
	css3Colours      bool
}

// options loads the config file and applies the flags given explicitly on
// top of it.
func (g *globalFlags) options(cmd *cobra.Command) (sass.Options, error) {
	var o sass.Options
	if g.config != "" {
		var err error
		if o, err = sass.LoadOptions(g.config); err != nil {
			return o, err
		}
	}
	f := cmd.Flags()
	if f.Changed("style") {
		o.Style = sass.Style(g.style)
	}
	if f.Changed("load-path") {
		o.LoadPaths = g.loadPaths
	}
	if f.Changed("template-location") {
		o.TemplateLocation = g.templateLocation
	}
	if f.Changed("property-syntax") {
		o.PropertySyntax = sass.PropertySyntax(g.propertySyntax)
	}
	if f.Changed("css3-colours") {
		o.CSS3Colours = g.css3Colours
	}
	return o, nil
}

func (g *globalFlags) compiler(cmd *cobra.Command) (*sass.Compiler, error) {
	o, err := g.options(cmd)
	if err != nil {
		return nil, err
	}
	o.Cache = true
	return sass.New(o, nil)
}

func newRootCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sassc",
		Short:         "Compile indented Sass into CSS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := cmd.PersistentFlags()
	f.StringVar(&g.config, "config", "", "YAML file with compiler options")
	f.StringVar(&g.style, "style", string(sass.Nested), "Output style: nested, expanded, compact or compressed")
	f.StringSliceVarP(&g.loadPaths, "load-path", "I", nil, "Directories searched for imports")
	f.StringVar(&g.templateLocation, "template-location", "", "Directory searched for imports after the load paths")
	f.StringVar(&g.propertySyntax, "property-syntax", "", "Accepted property syntax: new, old or empty for both")
	f.BoolVar(&g.css3Colours, "css3-colours", false, "Render colours using CSS3 names")

	cmd.AddCommand(newCompileCommand(g))
	cmd.AddCommand(newWatchCommand(g))
	cmd.AddCommand(newCheckCommand(g))
	cmd.AddCommand(newPublishCommand(g))
	cmd.AddCommand(newBundleCommand(g))
	return cmd
}

func main() {
	if err := newRootCommand(&globalFlags{}).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
