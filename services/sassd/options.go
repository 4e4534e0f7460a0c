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
	"github.com/redis/go-redis/v9"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/options/env"
	"github.com/das7pad/sass-go/pkg/options/listenAddress"
	"github.com/das7pad/sass-go/pkg/options/redisOptions"
	"github.com/das7pad/sass-go/pkg/sass"
	"github.com/das7pad/sass-go/services/sassd/pkg/managers/stylesheet"
)

type sassdOptions struct {
	addresses    []string
	options      stylesheet.Options
	redisOptions *redis.UniversalOptions
	liveReload   bool
}

func getOptions() *sassdOptions {
	o := &sassdOptions{}
	if p := env.GetString("SASSD_OPTIONS_FILE", ""); p != "" {
		so, err := sass.LoadOptions(p)
		if err != nil {
			panic(errors.Tag(err, "load SASSD_OPTIONS_FILE"))
		}
		o.options.Sass = so
	}
	so := &o.options.Sass
	so.Style = sass.Style(env.GetString("SASSD_STYLE", string(so.Style)))
	so.TemplateLocation = env.GetString(
		"SASSD_TEMPLATE_LOCATION", so.TemplateLocation,
	)
	so.LoadPaths = env.GetList("SASSD_LOAD_PATHS", so.LoadPaths)
	if env.GetBool("SASSD_CSS3_COLOURS") {
		so.CSS3Colours = true
	}
	o.options.CacheSize = env.GetInt("SASSD_CACHE_SIZE", 1000)
	o.options.RedisTTL = env.GetDuration("SASSD_REDIS_TTL", 0)
	o.options.RedisMaxEntry = env.GetBytes("SASSD_REDIS_MAX_ENTRY", 1<<20)

	o.liveReload = env.GetBool("SASSD_LIVE_RELOAD")

	o.addresses = listenAddress.Parse("SASSD_", 3090)
	o.redisOptions = redisOptions.Parse("SASSD_")
	return o
}
