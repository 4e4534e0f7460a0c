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

package httpUtils

import (
	"context"
	"net"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/das7pad/sass-go/pkg/errors"
)

type Server interface {
	Serve(listener net.Listener) error
	Shutdown(ctx context.Context) error
}

// Listen opens a tcp listener, or a unix socket for addresses starting
// with a slash. A stale socket file is replaced.
func Listen(addr string) (net.Listener, error) {
	if !strings.HasPrefix(addr, "/") {
		return net.Listen("tcp", addr)
	}
	if err := os.Remove(addr); err != nil && !os.IsNotExist(err) {
		return nil, errors.Tag(err, "remove stale socket")
	}
	return net.Listen("unix", addr)
}

func ListenAndServe(server Server, addr string) error {
	l, err := Listen(addr)
	if err != nil {
		return errors.Tag(err, "listen on "+addr)
	}
	return server.Serve(l)
}

// ListenAndServeEach serves on all addresses until one of them fails.
func ListenAndServeEach(eg *errgroup.Group, server Server, each []string) {
	for _, addr := range each {
		eg.Go(func() error {
			return ListenAndServe(server, addr)
		})
	}
}
