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

package objectStorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"
)

type Options struct {
	Provider        string        `yaml:"provider"`
	Endpoint        string        `yaml:"endpoint"`
	Secure          bool          `yaml:"secure"`
	Key             string        `yaml:"key"`
	Secret          string        `yaml:"secret"`
	SignedURLExpiry time.Duration `yaml:"signed_url_expiry"`
}

type SendOptions struct {
	ContentSize     int64
	ContentType     string
	ContentEncoding string
}

type Backend interface {
	SendFromStream(
		ctx context.Context,
		bucket string,
		key string,
		reader io.Reader,
		options SendOptions,
	) error

	GetRedirectURLForGET(
		ctx context.Context,
		bucket string,
		key string,
	) (*url.URL, error)

	GetObjectSize(
		ctx context.Context,
		bucket string,
		key string,
	) (int64, error)
}

func FromOptions(options Options) (Backend, error) {
	switch options.Provider {
	case "minio":
		return initMinioBackend(options)
	}
	return nil, fmt.Errorf("unknown provider: %s", options.Provider)
}
