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
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func unreachable(t *testing.T) redis.UniversalClient {
	c := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:       []string{"127.0.0.1:1"},
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestManager_Unreachable(t *testing.T) {
	m := New(unreachable(t), "sass:changed")
	defer m.Close()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := m.Publish(ctx, []byte("{}")); err == nil {
		t.Errorf("Publish() succeeded without redis")
	}
	if _, err := m.Listen(ctx); err == nil {
		t.Errorf("Listen() succeeded without redis")
	}
}

func TestManager_CloseWithoutListen(t *testing.T) {
	m := New(unreachable(t), "sass:changed")
	m.Close()
}
