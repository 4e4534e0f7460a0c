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
	"context"
	"log"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/das7pad/sass-go/pkg/fsWatcher"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/pkg/sass/importer"
)

func newWatchCommand(g *globalFlags) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Recompile the files in a directory whenever one changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			c, err := g.compiler(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(
				cmd.Context(), syscall.SIGINT, syscall.SIGTERM,
			)
			defer stop()
			return watch(ctx, c, dir, outDir)
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory, defaults to next to the input")
	return cmd
}

func rebuild(c *sass.Compiler, dir, outDir string) {
	files, _, err := fsWatcher.Collect(dir, importer.Extension)
	if err != nil {
		log.Println("scan", dir, err)
		return
	}
	t0 := time.Now()
	if err = compileAll(c, files, outDir, runtime.NumCPU()); err != nil {
		log.Println(err)
		return
	}
	log.Println("rebuild", time.Since(t0).String())
}

func watch(ctx context.Context, c *sass.Compiler, dir, outDir string) error {
	rebuild(c, dir, outDir)
	return fsWatcher.Watch(
		ctx, dir, importer.Extension, fsWatcher.DefaultDelay,
		func(changed []string) {
			log.Printf("changed: %q", changed)
			rebuild(c, dir, outDir)
		},
	)
}
