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

package redisOptions

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/das7pad/sass-go/pkg/options/env"
)

// Parse reads the redis settings below prefix. It returns nil when no
// <prefix>REDIS_HOST is configured.
func Parse(prefix string) *redis.UniversalOptions {
	addrs := env.GetList(prefix+"REDIS_HOST", nil)
	if len(addrs) == 0 {
		return nil
	}
	return &redis.UniversalOptions{
		Addrs:      addrs,
		Username:   env.GetString(prefix+"REDIS_USERNAME", ""),
		Password:   env.GetString(prefix+"REDIS_PASSWORD", ""),
		MaxRetries: env.GetInt(prefix+"REDIS_MAX_RETRIES_PER_REQUEST", 3),
		PoolSize:   env.GetInt(prefix+"REDIS_POOL_SIZE", 0),
		DB:         env.GetInt(prefix+"REDIS_DB", 0),
		DialTimeout: env.GetDuration(
			prefix+"REDIS_TIMEOUT_DIAL", 5*time.Second,
		),
		ReadTimeout: env.GetDuration(
			prefix+"REDIS_TIMEOUT_READ", time.Second,
		),
		WriteTimeout: env.GetDuration(
			prefix+"REDIS_TIMEOUT_WRITE", time.Second,
		),
		ContextTimeoutEnabled: true,
	}
}
