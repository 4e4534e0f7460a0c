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

package fsWatcher

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/das7pad/sass-go/pkg/errors"
)

const DefaultDelay = 100 * time.Millisecond

// Collect walks dir, returning its files ending in ext and all directories.
func Collect(dir, ext string) ([]string, []string, error) {
	var files, dirs []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
		} else if filepath.Ext(p) == ext {
			files = append(files, p)
		}
		return nil
	})
	return files, dirs, err
}

// Watch calls fn with batches of changed files ending in ext below dir.
// It blocks until ctx is cancelled.
func Watch(ctx context.Context, dir, ext string, delay time.Duration, fn func(changed []string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Tag(err, "create watcher")
	}
	if err = addAll(w, dir, ext); err != nil {
		_ = w.Close()
		return err
	}
	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	Debounce(w.Events, w.Errors, ext, delay, func(changed []string) {
		// Pick up directories created since the last batch.
		if err2 := addAll(w, dir, ext); err2 != nil {
			log.Println("watcher:", err2)
		}
		fn(changed)
	})
	return nil
}

func addAll(w *fsnotify.Watcher, dir, ext string) error {
	_, dirs, err := Collect(dir, ext)
	if err != nil {
		return errors.Tag(err, "scan "+dir)
	}
	for _, d := range dirs {
		if err = w.Add(d); err != nil {
			return errors.Tag(err, "watch "+d)
		}
	}
	return nil
}

// Debounce collects events for files ending in ext until none arrived for
// delay and then calls fn with the changed paths. It returns once events is
// closed.
func Debounce(events <-chan fsnotify.Event, errs <-chan error, ext string, delay time.Duration, fn func(changed []string)) {
	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}
	var pending []string
	seen := make(map[string]bool)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			if filepath.Ext(e.Name) != ext {
				continue
			}
			if !seen[e.Name] {
				seen[e.Name] = true
				pending = append(pending, e.Name)
			}
			timer.Reset(delay)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Println("watcher:", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := pending
			pending = nil
			clear(seen)
			fn(changed)
		}
	}
}
