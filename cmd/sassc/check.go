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
	"io"
	"os"
	"strings"

	"github.com/moby/term"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/sass"
)

var dmp = diffmatchpatch.New()

func newCheckCommand(g *globalFlags) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Verify that the CSS on disk matches a fresh compile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.compiler(cmd)
			if err != nil {
				return err
			}
			stale, err := check(c, args, outDir)
			if err != nil {
				return err
			}
			_, colour := term.GetFdInfo(os.Stdout)
			for _, s := range stale {
				printDiff(cmd.OutOrStdout(), s, colour)
			}
			if len(stale) > 0 {
				return errors.New(fmt.Sprintf("%d stale stylesheet(s)", len(stale)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory, defaults to next to the input")
	return cmd
}

type staleFile struct {
	path  string
	diffs []diffmatchpatch.Diff
}

func check(c *sass.Compiler, files []string, outDir string) ([]staleFile, error) {
	var stale []staleFile
	for _, src := range files {
		s, err := c.CompileFile(src)
		if err != nil {
			return nil, errors.Tag(err, src)
		}
		dst := outputPath(src, outDir)
		blob, err := os.ReadFile(dst)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Tag(err, "read "+dst)
		}
		if string(blob) == s {
			continue
		}
		diffs := dmp.DiffMain(string(blob), s, false)
		stale = append(stale, staleFile{
			path:  dst,
			diffs: dmp.DiffCleanupSemantic(diffs),
		})
	}
	return stale, nil
}

// printDiff uses ANSI colours on terminals and word diff markers otherwise.
func printDiff(w io.Writer, s staleFile, colour bool) {
	_, _ = fmt.Fprintf(w, "--- %s\n", s.path)
	if colour {
		_, _ = fmt.Fprintln(w, dmp.DiffPrettyText(s.diffs))
		return
	}
	var b strings.Builder
	for _, d := range s.diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	_, _ = fmt.Fprintln(w, b.String())
}
