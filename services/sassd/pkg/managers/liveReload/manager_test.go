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

package liveReload

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/das7pad/sass-go/pkg/errors"
)

type fakePubSub struct {
	mu        sync.Mutex
	c         chan string
	published []string
}

func (f *fakePubSub) Publish(_ context.Context, payload []byte) error {
	f.mu.Lock()
	f.published = append(f.published, string(payload))
	f.mu.Unlock()
	f.c <- string(payload)
	return nil
}

func (f *fakePubSub) Listen(context.Context) (<-chan string, error) {
	return f.c, nil
}

func (f *fakePubSub) Close() {}

func newManager(t *testing.T, dir string, ps *fakePubSub) *manager {
	t.Helper()
	o := Options{TemplateLocation: dir, Delay: 20 * time.Millisecond}
	var m Manager
	var err error
	if ps == nil {
		m, err = New(o, nil)
	} else {
		m, err = New(o, ps)
	}
	if err != nil {
		t.Fatal(err)
	}
	return m.(*manager)
}

func TestNew(t *testing.T) {
	_, err := New(Options{}, nil)
	if !errors.IsValidationError(err) {
		t.Errorf("New() error = %v, want validation error", err)
	}
}

func TestManager_event(t *testing.T) {
	m := newManager(t, "/srv/tpl", nil)
	blob, err := m.event([]string{
		"/srv/tpl/themes/dark.sass",
		"/srv/tpl/site.sass",
	})
	if err != nil {
		t.Fatal(err)
	}
	var e Event
	if err = json.Unmarshal(blob, &e); err != nil {
		t.Fatal(err)
	}
	if want := []string{"site", "themes/dark"}; !reflect.DeepEqual(e.Files, want) {
		t.Errorf("event() = %q, want %q", e.Files, want)
	}
}

func TestManager_Subscribe(t *testing.T) {
	m := newManager(t, "/srv/tpl", nil)
	m.o.ClientQueueDepth = 1
	fast, unsubscribeFast := m.Subscribe()
	slow, unsubscribeSlow := m.Subscribe()
	defer unsubscribeSlow()

	m.broadcast([]byte("1"))
	if got := string(<-fast); got != "1" {
		t.Errorf("fast got %q", got)
	}
	m.broadcast([]byte("2"))
	if got := string(<-fast); got != "2" {
		t.Errorf("fast got %q", got)
	}

	if got := string(<-slow); got != "1" {
		t.Errorf("slow got %q", got)
	}
	if _, ok := <-slow; ok {
		t.Errorf("slow client was not dropped")
	}

	unsubscribeFast()
	unsubscribeFast()
	if _, ok := <-fast; ok {
		t.Errorf("channel still open after unsubscribe")
	}
	m.broadcast([]byte("3"))
}

func runAndChange(t *testing.T, m *manager) string {
	t.Helper()
	c, unsubscribe := m.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	p := filepath.Join(m.o.TemplateLocation, "themes", "dark.sass")
	if err := os.WriteFile(p, []byte("a\n  b: c\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case blob := <-c:
		return string(blob)
	case <-time.After(5 * time.Second):
		t.Fatal("no live reload event")
		return ""
	}
}

func templateDir(t *testing.T) string {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o700); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestManager_Run(t *testing.T) {
	m := newManager(t, templateDir(t), nil)
	if got := runAndChange(t, m); got != `{"files":["themes/dark"]}` {
		t.Errorf("event = %s", got)
	}
}

func TestManager_RunWithPubSub(t *testing.T) {
	ps := &fakePubSub{c: make(chan string, 10)}
	m := newManager(t, templateDir(t), ps)
	if got := runAndChange(t, m); got != `{"files":["themes/dark"]}` {
		t.Errorf("event = %s", got)
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.published) == 0 {
		t.Errorf("event was not published")
	}
}
