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
	"github.com/evanw/esbuild/pkg/api"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

// Plugin lets esbuild load .sass files, from entry points as well as from
// CSS @import statements.
func Plugin(c *sass.Compiler) api.Plugin {
	return api.Plugin{
		Name: "sassLoader",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{
				Filter: "\\.sass$",
			}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return render(c, args)
			})
		},
	}
}

func render(c *sass.Compiler, args api.OnLoadArgs) (api.OnLoadResult, error) {
	s, imports, err := c.CompileFileWithImports(args.Path)
	if err != nil {
		r := api.OnLoadResult{WatchFiles: imports}
		var e *sassErrors.Error
		if errors.As(err, &e) && e.Position.File != "" {
			r.Errors = []api.Message{{
				Text: e.Msg,
				Location: &api.Location{
					File: e.Position.File,
					Line: e.Position.Line,
				},
			}}
			return r, nil
		}
		return r, errors.Tag(err, args.Path)
	}
	return api.OnLoadResult{
		Contents:   &s,
		WatchFiles: imports,
		Loader:     api.LoaderCSS,
	}, nil
}
