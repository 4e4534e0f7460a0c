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

package script

import (
	"testing"

	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

func TestFunctions(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr sassErrors.Kind
	}{
		{name: "rgb", in: "rgb(255, 0, 0)", want: "red", wantErr: noErr},
		{name: "rgb percent", in: "rgb(100%, 0%, 100%)", want: "fuchsia", wantErr: noErr},
		{name: "rgb out of range", in: "rgb(256, 0, 0)", wantErr: sassErrors.TypeMismatch},
		{name: "rgb string", in: `rgb("a", 0, 0)`, wantErr: sassErrors.TypeMismatch},
		{name: "rgb arity", in: "rgb(1, 2)", wantErr: sassErrors.ArityMismatch},
		{name: "hsl red", in: "hsl(0, 100%, 50%)", want: "red", wantErr: noErr},
		{name: "hsl green", in: "hsl(120, 100%, 25%)", want: "green", wantErr: noErr},
		{name: "hsl negative hue", in: "hsl(-240, 100%, 25%)", want: "green", wantErr: noErr},
		{name: "hsl bad saturation", in: "hsl(0, 101%, 50%)", wantErr: sassErrors.TypeMismatch},
		{name: "percentage", in: "percentage(0.25)", want: "25%", wantErr: noErr},
		{name: "percentage unit", in: "percentage(1px)", wantErr: sassErrors.TypeMismatch},
		{name: "percentage string", in: `percentage("x")`, wantErr: sassErrors.TypeMismatch},
		{name: "round", in: "round(2.6em)", want: "3em", wantErr: noErr},
		{name: "ceil", in: "ceil(1.2)", want: "2", wantErr: noErr},
		{name: "floor", in: "floor(1.7)", want: "1", wantErr: noErr},
		{name: "abs", in: "abs(-3pt)", want: "3pt", wantErr: noErr},
		{name: "abs colour", in: "abs(#fff)", wantErr: sassErrors.TypeMismatch},
		{name: "nested", in: "round(percentage(1 / 3))", want: "33%", wantErr: noErr},
		{name: "url passes through", in: "url(http://example.com/a.png)", want: "url(http://example.com/a.png)", wantErr: noErr},
		{name: "unknown function", in: "attr(data-x)", want: "attr(data-x)", wantErr: noErr},
		{name: "unknown function evaluates args", in: "translate(1px + 1px, 0)", want: "translate(2px, 0)", wantErr: noErr},
		{name: "unknown function in list", in: "1px solid darken(red)", want: "1px solid darken(red)", wantErr: noErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.in, fakeScope{}, Options{})
			if tt.wantErr != noErr {
				if !sassErrors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if s := Render(got, Options{}); s != tt.want {
				t.Errorf("Evaluate() = %q, want %q", s, tt.want)
			}
		})
	}
}
