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

package listenAddress

import (
	"fmt"
	"strings"

	"github.com/das7pad/sass-go/pkg/options/env"
)

// Parse reads <prefix>LISTEN_ADDRESS and <prefix>PORT. Addresses without a
// port get the port appended, unix sockets start with a slash.
func Parse(prefix string, port int) []string {
	return parse(
		env.GetList(prefix+"LISTEN_ADDRESS", []string{"localhost"}),
		env.GetInt(prefix+"PORT", port),
	)
}

func parse(addrs []string, port int) []string {
	out := make([]string, len(addrs))
	for i, addr := range addrs {
		if !strings.HasPrefix(addr, "/") && !strings.ContainsRune(addr, ':') {
			addr = fmt.Sprintf("%s:%d", addr, port)
		}
		out[i] = addr
	}
	return out
}
