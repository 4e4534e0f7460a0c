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
	"bytes"
	"context"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/das7pad/sass-go/pkg/errors"
	"github.com/das7pad/sass-go/pkg/objectStorage"
	"github.com/das7pad/sass-go/pkg/sass"
)

type fakeBackend struct {
	mu      sync.Mutex
	objects map[string]string
	types   map[string]string
	// truncate drops bytes on upload to simulate a partial write.
	truncate int
}

func (f *fakeBackend) SendFromStream(_ context.Context, bucket string, key string, reader io.Reader, options objectStorage.SendOptions) error {
	blob, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if int64(len(blob)) != options.ContentSize {
		return errors.New("content size mismatch")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = string(blob[:len(blob)-f.truncate])
	f.types[bucket+"/"+key] = options.ContentType
	return nil
}

func (f *fakeBackend) GetRedirectURLForGET(_ context.Context, bucket string, key string) (*url.URL, error) {
	return &url.URL{
		Scheme:   "https",
		Host:     "storage.example.com",
		Path:     "/" + bucket + "/" + key,
		RawQuery: "sig=x",
	}, nil
}

func (f *fakeBackend) GetObjectSize(_ context.Context, bucket string, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.objects[bucket+"/"+key]
	if !ok {
		return 0, &errors.NotFoundError{}
	}
	return int64(len(s)), nil
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		objects: make(map[string]string),
		types:   make(map[string]string),
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix string
		src    string
		want   string
	}{
		{prefix: "", src: "a/site.sass", want: "site.css"},
		{prefix: "css/v1", src: "site.sass", want: "css/v1/site.css"},
		{prefix: "css/", src: "/abs/print.sass", want: "css/print.css"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := objectKey(tt.prefix, tt.src); got != tt.want {
				t.Errorf("objectKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"site.sass":  "a\n  color: red\n",
		"print.sass": "b\n  color: black\n",
	})
	files := []string{
		filepath.Join(dir, "site.sass"),
		filepath.Join(dir, "print.sass"),
	}
	c, err := sass.New(sass.Options{Style: sass.Compressed}, nil)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("keys", func(t *testing.T) {
		b := newFakeBackend()
		var out bytes.Buffer
		p := &publishFlags{bucket: "assets", prefix: "css"}
		if err = publish(context.Background(), c, b, files, p, &out); err != nil {
			t.Fatalf("publish() error = %v", err)
		}
		if got := out.String(); got != "css/site.css\ncss/print.css\n" {
			t.Errorf("publish() printed %q", got)
		}
		if got := b.objects["assets/css/site.css"]; got != "a{color:red}" {
			t.Errorf("uploaded site.css = %q", got)
		}
		if got := b.types["assets/css/print.css"]; got != "text/css; charset=utf-8" {
			t.Errorf("content type = %q", got)
		}
	})

	t.Run("links", func(t *testing.T) {
		b := newFakeBackend()
		var out bytes.Buffer
		p := &publishFlags{bucket: "assets", link: true}
		if err = publish(context.Background(), c, b, files[:1], p, &out); err != nil {
			t.Fatalf("publish() error = %v", err)
		}
		want := "https://storage.example.com/assets/site.css?sig=x\n"
		if got := out.String(); got != want {
			t.Errorf("publish() printed %q, want %q", got, want)
		}
	})

	t.Run("size mismatch", func(t *testing.T) {
		b := newFakeBackend()
		b.truncate = 1
		var out bytes.Buffer
		p := &publishFlags{bucket: "assets"}
		err = publish(context.Background(), c, b, files[:1], p, &out)
		if err == nil || !strings.Contains(err.Error(), "verify site.css") {
			t.Fatalf("publish() error = %v, want verify error", err)
		}
		if out.Len() != 0 {
			t.Errorf("publish() printed %q on failure", out.String())
		}
	})

	t.Run("compile error", func(t *testing.T) {
		broken := writeFiles(t, map[string]string{
			"broken.sass": "a\n  color: $nope\n",
		})
		b := newFakeBackend()
		p := &publishFlags{bucket: "assets"}
		err = publish(
			context.Background(), c, b,
			[]string{filepath.Join(broken, "broken.sass")}, p, io.Discard,
		)
		if err == nil {
			t.Fatal("publish() succeeded for broken file")
		}
		if len(b.objects) != 0 {
			t.Errorf("publish() uploaded %d objects", len(b.objects))
		}
	})
}
