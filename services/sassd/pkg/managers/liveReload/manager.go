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
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/fsWatcher"
	"github.com/das7pad/sass-go/pkg/pubSub/channel"
	"github.com/das7pad/sass-go/pkg/sass/importer"
)

// Event lists the changed files relative to the template location, using
// forward slashes and no extension.
type Event struct {
	Files []string `json:"files"`
}

type Options struct {
	TemplateLocation string
	Delay            time.Duration
	ClientQueueDepth int
}

type Manager interface {
	// Subscribe registers a client. The returned channel is closed once the
	// client falls behind or unsubscribes.
	Subscribe() (<-chan []byte, func())
	// Run watches the template location until ctx is cancelled.
	Run(ctx context.Context) error
}

// New creates a Manager. With a non-nil pubSub, events are relayed via
// redis so that every instance notifies its clients.
func New(o Options, pubSub channel.Manager) (Manager, error) {
	if o.TemplateLocation == "" {
		return nil, &errors.ValidationError{Msg: "missing template location"}
	}
	if o.Delay <= 0 {
		o.Delay = fsWatcher.DefaultDelay
	}
	if o.ClientQueueDepth <= 0 {
		o.ClientQueueDepth = 10
	}
	return &manager{
		o:       o,
		pubSub:  pubSub,
		clients: make(map[chan []byte]struct{}),
	}, nil
}

type manager struct {
	o      Options
	pubSub channel.Manager

	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

func (m *manager) Subscribe() (<-chan []byte, func()) {
	c := make(chan []byte, m.o.ClientQueueDepth)
	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()
	return c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.drop(c)
	}
}

// drop must be called with mu held.
func (m *manager) drop(c chan []byte) {
	if _, ok := m.clients[c]; ok {
		delete(m.clients, c)
		close(c)
	}
}

func (m *manager) broadcast(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		select {
		case c <- blob:
		default:
			m.drop(c)
		}
	}
}

func (m *manager) event(changed []string) ([]byte, error) {
	files := make([]string, 0, len(changed))
	for _, p := range changed {
		rel, err := filepath.Rel(m.o.TemplateLocation, p)
		if err != nil {
			continue
		}
		rel = strings.TrimSuffix(filepath.ToSlash(rel), importer.Extension)
		files = append(files, rel)
	}
	sort.Strings(files)
	return json.Marshal(Event{Files: files})
}

func (m *manager) Run(ctx context.Context) error {
	if m.pubSub != nil {
		c, err := m.pubSub.Listen(ctx)
		if err != nil {
			return err
		}
		defer m.pubSub.Close()
		go func() {
			for s := range c {
				m.broadcast([]byte(s))
			}
		}()
	}
	return fsWatcher.Watch(
		ctx, m.o.TemplateLocation, importer.Extension, m.o.Delay,
		func(changed []string) {
			blob, err := m.event(changed)
			if err != nil {
				log.Println("encode live reload event:", err)
				return
			}
			if m.pubSub == nil {
				m.broadcast(blob)
				return
			}
			if err = m.pubSub.Publish(ctx, blob); err != nil {
				log.Println("publish live reload event:", err)
			}
		},
	)
}
