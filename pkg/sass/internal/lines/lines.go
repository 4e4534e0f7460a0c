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
	"strings"

	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

// Line is one physical source line with its indentation resolved.
type Line struct {
	Text   string
	Indent int
	Number int
	File   string
	Blank  bool
}

func (l Line) Position() sassErrors.Position {
	return sassErrors.Position{
		File:   l.File,
		Line:   l.Number,
		Indent: l.Indent,
	}
}

const (
	defaultIndentChar  = ' '
	defaultIndentWidth = 2
)

type indentation struct {
	char  byte
	width int
}

func isIndentChar(c byte) bool {
	return c == ' ' || c == '\t'
}

func detectIndentation(raw []string, file string, first int) (indentation, error) {
	for i, s := range raw {
		if len(strings.TrimSpace(s)) == 0 || !isIndentChar(s[0]) {
			continue
		}
		c := s[0]
		j := 0
		for j < len(s) && s[j] == c {
			j++
		}
		if j < len(s) && isIndentChar(s[j]) {
			return indentation{}, sassErrors.New(
				sassErrors.BadIndent, "mixed indentation is not allowed",
			).At(sassErrors.Position{File: file, Line: first + i})
		}
		if c == '\t' {
			return indentation{char: c, width: 1}, nil
		}
		return indentation{char: c, width: j}, nil
	}
	return indentation{char: defaultIndentChar, width: defaultIndentWidth}, nil
}

func (in indentation) level(s string, p sassErrors.Position) (int, error) {
	n := 0
	for n < len(s) && isIndentChar(s[n]) {
		if s[n] != in.char {
			return 0, sassErrors.New(
				sassErrors.BadIndent, "inconsistent indentation",
			).At(p)
		}
		n++
	}
	if n%in.width != 0 {
		return 0, sassErrors.Newf(
			sassErrors.BadIndent,
			"indentation of %d is not a multiple of %d", n, in.width,
		).At(p)
	}
	return n / in.width, nil
}

// Tokenize splits source into lines. The indent unit is inferred from the
// first indented line, every other line has to use the same character.
// first is the number of the first line, usually 1.
func Tokenize(source, file string, first int) ([]Line, error) {
	if first == 0 {
		first = 1
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	raw := strings.Split(source, "\n")
	in, err := detectIndentation(raw, file, first)
	if err != nil {
		return nil, err
	}
	out := make([]Line, 0, len(raw))
	for i, s := range raw {
		s = strings.TrimRight(s, " \t\r")
		l := Line{
			Text:   strings.TrimLeft(s, " \t"),
			Number: first + i,
			File:   file,
		}
		if l.Text == "" {
			l.Blank = true
			out = append(out, l)
			continue
		}
		l.Indent, err = in.level(s, l.Position())
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
