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

package sassErrors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Class int8

const (
	SyntaxError Class = iota
	SemanticError
	ImportError
)

func (c Class) String() string {
	switch c {
	case SyntaxError:
		return "SyntaxError"
	case SemanticError:
		return "SemanticError"
	case ImportError:
		return "ImportError"
	default:
		return "Class(" + strconv.FormatInt(int64(c), 10) + ")"
	}
}

type Kind int8

const (
	BadIndent Kind = iota
	BadSelector
	BadLiteral
	UnmatchedParen
	BadPropertySyntax

	UndefinedVariable
	UndefinedMixin
	MissingArgument
	ArityMismatch
	TypeMismatch
	UnitMismatch
	NoParentSelector

	ImportNotFound
)

var kindNames = [...]string{
	BadIndent:         "BadIndent",
	BadSelector:       "BadSelector",
	BadLiteral:        "BadLiteral",
	UnmatchedParen:    "UnmatchedParen",
	BadPropertySyntax: "BadPropertySyntax",
	UndefinedVariable: "UndefinedVariable",
	UndefinedMixin:    "UndefinedMixin",
	MissingArgument:   "MissingArgument",
	ArityMismatch:     "ArityMismatch",
	TypeMismatch:      "TypeMismatch",
	UnitMismatch:      "UnitMismatch",
	NoParentSelector:  "NoParentSelector",
	ImportNotFound:    "NotFound",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.FormatInt(int64(k), 10) + ")"
	}
	return kindNames[k]
}

func (k Kind) Class() Class {
	switch {
	case k <= BadPropertySyntax:
		return SyntaxError
	case k <= NoParentSelector:
		return SemanticError
	default:
		return ImportError
	}
}

// Position points at the source line an error originates from.
type Position struct {
	File   string
	Line   int
	Indent int
}

func (p Position) IsZero() bool {
	return p.Line == 0 && p.File == ""
}

func (p Position) String() string {
	f := p.File
	if f == "" {
		f = "<input>"
	}
	return f + ":" + strconv.Itoa(p.Line) +
		" (indent " + strconv.Itoa(p.Indent) + ")"
}

type Error struct {
	Kind     Kind
	Position Position
	Msg      string
	cause    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Class().String())
	b.WriteString("/")
	b.WriteString(e.Kind.String())
	if !e.Position.IsZero() {
		b.WriteString(" at ")
		b.WriteString(e.Position.String())
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) IsUserFacing() {}

// At fills in the position unless a more specific one is set already.
func (e *Error) At(p Position) *Error {
	if e.Position.IsZero() {
		e.Position = p
	}
	return e
}

func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

func Newf(k Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, a...)}
}

func Wrap(k Kind, err error, msg string) *Error {
	return &Error{Kind: k, Msg: msg, cause: err}
}

// Locate attaches p to err when it is a compiler error without position.
func Locate(err error, p Position) error {
	var e *Error
	if errors.As(err, &e) {
		e.At(p)
	}
	return err
}

func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsClass(err error, c Class) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind.Class() == c
}
