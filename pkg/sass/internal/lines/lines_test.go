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

package lines

import (
	"testing"

	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

func TestTokenize(t *testing.T) {
	type args struct {
		source string
	}
	type short struct {
		text   string
		indent int
		number int
		blank  bool
	}
	tests := []struct {
		name    string
		args    args
		want    []short
		wantErr sassErrors.Kind
	}{
		{
			name: "two spaces",
			args: args{source: "a\n  b\n    color: red"},
			want: []short{
				{text: "a", indent: 0, number: 1},
				{text: "b", indent: 1, number: 2},
				{text: "color: red", indent: 2, number: 3},
			},
			wantErr: -1,
		},
		{
			name: "four spaces",
			args: args{source: "a\n    b\n        c: d"},
			want: []short{
				{text: "a", indent: 0, number: 1},
				{text: "b", indent: 1, number: 2},
				{text: "c: d", indent: 2, number: 3},
			},
			wantErr: -1,
		},
		{
			name: "tabs",
			args: args{source: "a\n\tb\n\t\tc: d"},
			want: []short{
				{text: "a", indent: 0, number: 1},
				{text: "b", indent: 1, number: 2},
				{text: "c: d", indent: 2, number: 3},
			},
			wantErr: -1,
		},
		{
			name: "blank lines",
			args: args{source: "a\n\n  b: c\n   \n"},
			want: []short{
				{text: "a", indent: 0, number: 1},
				{number: 2, blank: true},
				{text: "b: c", indent: 1, number: 3},
				{number: 4, blank: true},
				{number: 5, blank: true},
			},
			wantErr: -1,
		},
		{
			name: "crlf",
			args: args{source: "a\r\n  b: c\r\n"},
			want: []short{
				{text: "a", indent: 0, number: 1},
				{text: "b: c", indent: 1, number: 2},
				{number: 3, blank: true},
			},
			wantErr: -1,
		},
		{
			name:    "mixed on first indented line",
			args:    args{source: "a\n \tb: c"},
			wantErr: sassErrors.BadIndent,
		},
		{
			name:    "tab after spaces",
			args:    args{source: "a\n  b\n\t\tc: d"},
			wantErr: sassErrors.BadIndent,
		},
		{
			name:    "odd width",
			args:    args{source: "a\n  b\n   c: d"},
			wantErr: sassErrors.BadIndent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.args.source, "test.sass", 1)
			if tt.wantErr >= 0 {
				if !sassErrors.Is(err, tt.wantErr) {
					t.Fatalf("Tokenize() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() got %d lines, want %d", len(got), len(tt.want))
			}
			for i, l := range got {
				s := short{
					text:   l.Text,
					indent: l.Indent,
					number: l.Number,
					blank:  l.Blank,
				}
				if s != tt.want[i] {
					t.Errorf("Tokenize()[%d] = %+v, want %+v", i, s, tt.want[i])
				}
				if l.File != "test.sass" {
					t.Errorf("Tokenize()[%d].File = %q", i, l.File)
				}
			}
		})
	}
}

func TestTokenizeFirstLine(t *testing.T) {
	got, err := Tokenize("a\n  b: c", "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got[1].Number != 11 {
		t.Errorf("Number = %d, want 11", got[1].Number)
	}
	if p := got[1].Position(); p.Line != 11 || p.Indent != 1 {
		t.Errorf("Position() = %v", p)
	}
}
