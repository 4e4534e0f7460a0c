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
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/pkg/sass/importer"
)

func newCompileCommand(g *globalFlags) *cobra.Command {
	var outDir string
	concurrency := runtime.NumCPU()
	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile files into CSS",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.compiler(cmd)
			if err != nil {
				return err
			}
			t0 := time.Now()
			defer func() {
				log.Println("total", time.Since(t0).String())
			}()
			return compileAll(c, args, outDir, concurrency)
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory, defaults to next to the input")
	cmd.Flags().IntVar(&concurrency, "concurrency", concurrency, "Number of files compiled in parallel")
	return cmd
}

// outputPath returns where the CSS for src goes.
func outputPath(src, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(src), importer.Extension) + ".css"
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outDir, name)
}

// compileAll compiles every file, it reports all failures at once.
func compileAll(c *sass.Compiler, files []string, outDir string, concurrency int) error {
	if concurrency < 1 {
		return &errors.ValidationError{Msg: "concurrency must be at least 1"}
	}
	mu := sync.Mutex{}
	errs := &errors.MergedError{}
	eg := &errgroup.Group{}
	eg.SetLimit(concurrency)
	for _, src := range files {
		eg.Go(func() error {
			if err := compileOne(c, src, outputPath(src, outDir)); err != nil {
				mu.Lock()
				errs.Add(err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()
	return errs.Finalize()
}

func compileOne(c *sass.Compiler, src, dst string) error {
	t0 := time.Now()
	s, err := c.CompileFile(src)
	if err != nil {
		return errors.Tag(err, src)
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Tag(err, "create output directory")
	}
	if err = os.WriteFile(dst, []byte(s), 0o644); err != nil {
		return errors.Tag(err, "write "+dst)
	}
	log.Printf(
		"%s -> %s %s %s",
		src, dst, units.HumanSize(float64(len(s))), time.Since(t0).String(),
	)
	return nil
}
