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
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/objectStorage"
	"github.com/das7pad/sass-go/pkg/sass"
)

type publishFlags struct {
	bucket  string
	prefix  string
	link    bool
	storage objectStorage.Options
}

func newPublishCommand(g *globalFlags) *cobra.Command {
	p := &publishFlags{}
	p.storage.Provider = "minio"
	cmd := &cobra.Command{
		Use:   "publish [files...]",
		Short: "Compile files and upload the CSS into a bucket",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.bucket == "" {
				return &errors.ValidationError{Msg: "missing --bucket"}
			}
			c, err := g.compiler(cmd)
			if err != nil {
				return err
			}
			b, err := objectStorage.FromOptions(p.storage)
			if err != nil {
				return err
			}
			return publish(cmd.Context(), c, b, args, p, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.bucket, "bucket", "", "Target bucket")
	f.StringVar(&p.prefix, "prefix", "", "Key prefix inside the bucket")
	f.BoolVar(&p.link, "link", false, "Print a signed download link per file")
	f.StringVar(&p.storage.Provider, "storage-provider", p.storage.Provider, "Object storage provider")
	f.StringVar(&p.storage.Endpoint, "storage-endpoint", "localhost:9000", "Object storage endpoint")
	f.StringVar(&p.storage.Key, "storage-key", "", "Object storage access key")
	f.StringVar(&p.storage.Secret, "storage-secret", "", "Object storage secret key")
	f.BoolVar(&p.storage.Secure, "storage-secure", true, "Use TLS for object storage requests")
	f.DurationVar(&p.storage.SignedURLExpiry, "storage-link-expiry", 0, "Validity of signed links")
	return cmd
}

func objectKey(prefix, src string) string {
	name := filepath.Base(outputPath(src, ""))
	return path.Join(prefix, name)
}

func publish(ctx context.Context, c *sass.Compiler, b objectStorage.Backend, files []string, p *publishFlags, w io.Writer) error {
	links := make([]string, len(files))
	eg, pCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, src := range files {
		eg.Go(func() error {
			s, err := c.CompileFile(src)
			if err != nil {
				return errors.Tag(err, src)
			}
			k := objectKey(p.prefix, src)
			err = b.SendFromStream(pCtx, p.bucket, k, strings.NewReader(s), objectStorage.SendOptions{
				ContentSize: int64(len(s)),
				ContentType: "text/css; charset=utf-8",
			})
			if err != nil {
				return errors.Tag(err, "upload "+k)
			}
			n, err := b.GetObjectSize(pCtx, p.bucket, k)
			if err != nil {
				return errors.Tag(err, "verify "+k)
			}
			if n != int64(len(s)) {
				return errors.New(fmt.Sprintf(
					"verify %s: stored %d bytes, sent %d", k, n, len(s),
				))
			}
			if !p.link {
				links[i] = k
				return nil
			}
			u, err := b.GetRedirectURLForGET(pCtx, p.bucket, k)
			if err != nil {
				return errors.Tag(err, "sign "+k)
			}
			links[i] = u.String()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, l := range links {
		_, _ = fmt.Fprintln(w, l)
	}
	return nil
}
