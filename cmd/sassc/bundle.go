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
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/cobra"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/pkg/sass/esbuildLoader"
)

func newBundleCommand(g *globalFlags) *cobra.Command {
	var outDir string
	var minify bool
	cmd := &cobra.Command{
		Use:   "bundle [entry points...]",
		Short: "Bundle CSS or JS entry points that import .sass files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.compiler(cmd)
			if err != nil {
				return err
			}
			r := bundle(c, args, outDir, minify, true)
			for _, kind := range []api.MessageKind{api.WarningMessage, api.ErrorMessage} {
				msgs := r.Warnings
				if kind == api.ErrorMessage {
					msgs = r.Errors
				}
				formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{
					Kind: kind,
				})
				_, _ = fmt.Fprint(os.Stderr, strings.Join(formatted, ""))
			}
			if len(r.Errors) > 0 {
				return errors.New(fmt.Sprintf("bundle failed with %d error(s)", len(r.Errors)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "outdir", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify the output")
	return cmd
}

func bundle(c *sass.Compiler, entries []string, outDir string, minify bool, write bool) api.BuildResult {
	return api.Build(api.BuildOptions{
		EntryPoints:       entries,
		Bundle:            true,
		Outdir:            outDir,
		Write:             write,
		MinifyWhitespace:  minify,
		MinifySyntax:      minify,
		MinifyIdentifiers: minify,
		LogLevel:          api.LogLevelSilent,
		Plugins:           []api.Plugin{esbuildLoader.Plugin(c)},
	})
}
