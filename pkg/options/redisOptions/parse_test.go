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
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Setenv("TEST_REDIS_HOST", "")
	if o := Parse("TEST_"); o != nil {
		t.Fatalf("Parse() = %+v, want nil", o)
	}

	t.Setenv("TEST_REDIS_HOST", "a:6379,b:6379")
	t.Setenv("TEST_REDIS_DB", "2")
	t.Setenv("TEST_REDIS_TIMEOUT_READ", "250ms")
	o := Parse("TEST_")
	if o == nil {
		t.Fatal("Parse() = nil")
	}
	if !reflect.DeepEqual(o.Addrs, []string{"a:6379", "b:6379"}) {
		t.Errorf("Addrs = %q", o.Addrs)
	}
	if o.DB != 2 {
		t.Errorf("DB = %d", o.DB)
	}
	if o.ReadTimeout != 250*time.Millisecond {
		t.Errorf("ReadTimeout = %s", o.ReadTimeout)
	}
	if !o.ContextTimeoutEnabled {
		t.Errorf("ContextTimeoutEnabled = false")
	}
}
