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

package channel

import (
	"context"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/das7pad/sass-go/pkg/errors"
)

type Writer interface {
	Publish(ctx context.Context, payload []byte) error
}

type Manager interface {
	Writer
	Listen(ctx context.Context) (<-chan string, error)
	Close()
}

type BaseChannel string

func New(client redis.UniversalClient, base BaseChannel) Manager {
	return &manager{
		client: client,
		base:   base,
	}
}

type manager struct {
	client redis.UniversalClient
	p      *redis.PubSub
	base   BaseChannel
}

func (m *manager) Publish(ctx context.Context, payload []byte) error {
	err := m.client.Publish(ctx, string(m.base), payload).Err()
	if err != nil {
		return errors.Tag(err, "cannot send message")
	}
	return nil
}

// Listen subscribes to the channel and forwards message payloads until
// Close is called or ctx is cancelled.
func (m *manager) Listen(ctx context.Context) (<-chan string, error) {
	m.p = m.client.Subscribe(ctx, string(m.base))
	if _, err := m.p.Receive(ctx); err != nil {
		_ = m.p.Close()
		return nil, errors.Tag(err, "cannot subscribe")
	}

	c := make(chan string, 100)
	go func() {
		defer close(c)
		nFailed := 0
		for {
			raw, err := m.p.Receive(ctx)
			if err != nil {
				if err == redis.ErrClosed || ctx.Err() != nil {
					return
				}
				nFailed++
				time.Sleep(time.Duration(math.Min(
					float64(5*time.Second),
					math.Pow(2, float64(nFailed))*float64(time.Millisecond),
				)))
				continue
			}
			nFailed = 0
			if msg, ok := raw.(*redis.Message); ok {
				c <- msg.Payload
			}
		}
	}()
	return c, nil
}

func (m *manager) Close() {
	if m.p != nil {
		_ = m.p.Close()
	}
}
