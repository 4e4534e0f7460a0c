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
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/httpUtils"
	"github.com/das7pad/sass-go/pkg/pubSub/channel"
	"github.com/das7pad/sass-go/pkg/sass/importer"
	"github.com/das7pad/sass-go/services/sassd/pkg/managers/liveReload"
	"github.com/das7pad/sass-go/services/sassd/pkg/managers/stylesheet"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	o := getOptions()
	imp, err := importer.Local(importer.Options{
		LoadPaths:        o.options.Sass.LoadPaths,
		TemplateLocation: o.options.Sass.TemplateLocation,
		CacheSize:        o.options.CacheSize,
	})
	if err != nil {
		panic(err)
	}

	var client redis.UniversalClient
	if o.redisOptions != nil {
		client = redis.NewUniversalClient(o.redisOptions)
		if err = client.Ping(ctx).Err(); err != nil {
			panic(errors.Tag(err, "cannot talk to redis"))
		}
		defer func() { _ = client.Close() }()
	}

	sm, err := stylesheet.New(o.options, imp, client)
	if err != nil {
		panic(err)
	}
	var lr liveReload.Manager
	if o.liveReload {
		var ps channel.Manager
		if client != nil {
			ps = channel.New(client, "sass:changed")
		}
		lr, err = liveReload.New(liveReload.Options{
			TemplateLocation: o.options.Sass.TemplateLocation,
		}, ps)
		if err != nil {
			panic(err)
		}
	}
	handler := newHttpController(sm, lr)

	server := &http.Server{
		Handler:           handler.GetRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	eg := &errgroup.Group{}
	httpUtils.ListenAndServeEach(eg, server, o.addresses)
	if lr != nil {
		eg.Go(func() error {
			return lr.Run(ctx)
		})
	}
	eg.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(
			context.Background(), 10*time.Second,
		)
		defer cancel()
		return server.Shutdown(sctx)
	})
	log.Printf("sassd listening on %q", o.addresses)
	if err = eg.Wait(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
