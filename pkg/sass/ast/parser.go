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

package ast

import (
	"regexp"
	"strings"

	"github.com/das7pad/sass-go/pkg/sass/internal/lines"
	"github.com/das7pad/sass-go/pkg/sass/internal/script"
	"github.com/das7pad/sass-go/pkg/sass/sassErrors"
)

type PropertySyntax string

const (
	EitherSyntax PropertySyntax = ""
	NewSyntax    PropertySyntax = "new"
	OldSyntax    PropertySyntax = "old"
)

type Options struct {
	PropertySyntax PropertySyntax
}

// ParseString tokenizes source and builds its raw tree.
func ParseString(source, file string, firstLine int, o Options) (*Root, error) {
	ll, err := lines.Tokenize(source, file, firstLine)
	if err != nil {
		return nil, err
	}
	return Parse(ll, o)
}

// Parse builds the raw tree from tokenized lines.
func Parse(ll []lines.Line, o Options) (*Root, error) {
	root := &Root{}
	if len(ll) > 0 {
		root.pos = sassErrors.Position{File: ll[0].File, Line: ll[0].Number}
	}
	p := parser{lines: ll, o: o}
	if err := p.build(root, -1); err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lines []lines.Line
	i     int
	o     Options
}

func (p *parser) nextNonBlank(i int) int {
	for ; i < len(p.lines); i++ {
		if !p.lines[i].Blank {
			return i
		}
	}
	return -1
}

// hasDeeper reports whether the next non-blank line is nested below l.
func (p *parser) hasDeeper(l lines.Line) bool {
	j := p.nextNonBlank(p.i)
	return j != -1 && p.lines[j].Indent > l.Indent
}

// swallow consumes all lines nested below l, at any depth.
func (p *parser) swallow(l lines.Line) []lines.Line {
	var out []lines.Line
	for {
		j := p.nextNonBlank(p.i)
		if j == -1 || p.lines[j].Indent <= l.Indent {
			return out
		}
		out = append(out, p.lines[j])
		p.i = j + 1
	}
}

func (p *parser) build(parent Node, indent int) error {
	for {
		j := p.nextNonBlank(p.i)
		if j == -1 {
			p.i = len(p.lines)
			return nil
		}
		l := p.lines[j]
		if l.Indent <= indent {
			return nil
		}
		if l.Indent > indent+1 {
			return sassErrors.Newf(
				sassErrors.BadIndent,
				"indentation level can only increase by one, got %d after %d",
				l.Indent, indent,
			).At(l.Position())
		}
		p.i = j + 1
		n, err := p.classify(l, parent)
		if err != nil {
			return sassErrors.Locate(err, l.Position())
		}
		if n == nil {
			continue
		}
		parent.add(n)
		if err = p.build(n, l.Indent); err != nil {
			return err
		}
	}
}

type classifier struct {
	match func(p *parser, l lines.Line) bool
	parse func(p *parser, l lines.Line, parent Node) (Node, error)
	// leaf nodes reject nested lines.
	leaf string
}

// cascade is tried in order, the first match wins. Rule is the fallback.
var cascade []classifier

func init() {
	cascade = []classifier{
		{
			match: func(_ *parser, l lines.Line) bool {
				return l.Text[0] == '/'
			},
			parse: (*parser).parseComment,
		},
		{
			match: func(_ *parser, l lines.Line) bool {
				return l.Text[0] == '@'
			},
			parse: (*parser).parseDirective,
		},
		{
			match: func(_ *parser, l lines.Line) bool {
				return l.Text[0] == '='
			},
			parse: (*parser).parseMixinDefinition,
		},
		{
			match: func(_ *parser, l lines.Line) bool {
				return l.Text[0] == '+'
			},
			parse: (*parser).parseMixinCall,
			leaf:  "mixin includes",
		},
		{
			match: func(_ *parser, l lines.Line) bool {
				return l.Text[0] == '!' || l.Text[0] == '$'
			},
			parse: (*parser).parseVariable,
			leaf:  "variables",
		},
		{
			match: func(p *parser, l lines.Line) bool {
				_, ok := p.matchProperty(l)
				return ok
			},
			parse: (*parser).parseProperty,
		},
		{
			match: func(*parser, lines.Line) bool {
				return true
			},
			parse: (*parser).parseRule,
		},
	}
}

func (p *parser) classify(l lines.Line, parent Node) (Node, error) {
	for _, c := range cascade {
		if !c.match(p, l) {
			continue
		}
		n, err := c.parse(p, l, parent)
		if err != nil {
			return nil, err
		}
		if c.leaf != "" && p.hasDeeper(l) {
			return nil, sassErrors.New(
				sassErrors.BadIndent, "nesting is not allowed beneath "+c.leaf,
			)
		}
		return n, nil
	}
	return nil, nil
}

func (p *parser) parseComment(l lines.Line, _ Node) (Node, error) {
	switch {
	case strings.HasPrefix(l.Text, "//"):
		p.swallow(l)
		return nil, nil
	case strings.HasPrefix(l.Text, "/*"):
		c := &Comment{base: base{pos: l.Position()}}
		c.Lines = append(c.Lines, strings.TrimSpace(l.Text[2:]))
		for _, body := range p.swallow(l) {
			c.Lines = append(c.Lines, body.Text)
		}
		if len(c.Lines) > 1 && c.Lines[0] == "" {
			c.Lines = c.Lines[1:]
		}
		last := len(c.Lines) - 1
		c.Lines[last] = strings.TrimSpace(
			strings.TrimSuffix(c.Lines[last], "*/"),
		)
		return c, nil
	default:
		return nil, sassErrors.Newf(
			sassErrors.BadSelector, "illegal comment %q", l.Text,
		)
	}
}

var (
	directiveKeyword = regexp.MustCompile(`^@(\w+)`)
	forHeader        = regexp.MustCompile(
		`^@for\s+[!$]([\w-]+)\s+from\s+(.+?)\s+(through|to)\s+(.+?)(?:\s+step\s+(.+))?$`,
	)
	ifHeader    = regexp.MustCompile(`^@if\s+(.+)$`)
	elseHeader  = regexp.MustCompile(`^@else(?:\s+if\s+(.+))?$`)
	whileHeader = regexp.MustCompile(`^@(do|while)\s+(.+)$`)
)

func malformed(l lines.Line, what string) error {
	return sassErrors.Newf(
		sassErrors.BadSelector, "malformed %s: %q", what, l.Text,
	)
}

func (p *parser) parseDirective(l lines.Line, parent Node) (Node, error) {
	m := directiveKeyword.FindStringSubmatch(l.Text)
	if m == nil {
		return nil, malformed(l, "directive")
	}
	b := base{pos: l.Position()}
	switch strings.ToLower(m[1]) {
	case "import":
		uri := strings.TrimSpace(l.Text[len(m[0]):])
		if uri == "" {
			return nil, malformed(l, "@import")
		}
		if p.hasDeeper(l) {
			return nil, sassErrors.New(
				sassErrors.BadIndent,
				"nesting is not allowed beneath import directives",
			)
		}
		return &Import{base: b, URI: strings.TrimSuffix(uri, ";")}, nil
	case "for":
		f := forHeader.FindStringSubmatch(l.Text)
		if f == nil {
			return nil, malformed(l, "@for")
		}
		step := f[5]
		if step == "" {
			step = "1"
		}
		return &For{
			base:      b,
			Var:       f[1],
			From:      f[2],
			To:        f[4],
			Inclusive: f[3] == "through",
			Step:      step,
		}, nil
	case "if":
		f := ifHeader.FindStringSubmatch(l.Text)
		if f == nil {
			return nil, malformed(l, "@if")
		}
		return &If{base: b, Cond: f[1]}, nil
	case "else":
		return nil, p.parseElse(l, parent)
	case "while", "do":
		f := whileHeader.FindStringSubmatch(l.Text)
		if f == nil {
			return nil, malformed(l, "@"+m[1])
		}
		return &While{base: b, Cond: f[2], Do: f[1] == "do"}, nil
	case "debug":
		p.swallow(l)
		return nil, nil
	default:
		return &Directive{
			base: b,
			Text: strings.TrimSpace(strings.TrimSuffix(l.Text, "{")),
		}, nil
	}
}

// parseElse appends the branch to the @if chain of the previous sibling.
func (p *parser) parseElse(l lines.Line, parent Node) error {
	f := elseHeader.FindStringSubmatch(l.Text)
	if f == nil {
		return malformed(l, "@else")
	}
	children := parent.Children()
	var head *If
	if len(children) > 0 {
		head, _ = children[len(children)-1].(*If)
	}
	if head == nil {
		return sassErrors.New(
			sassErrors.BadSelector, "@else must follow an @if",
		)
	}
	tail := head.last()
	if tail != head && tail.Cond == "" {
		return sassErrors.New(
			sassErrors.BadSelector, "@else after the final @else",
		)
	}
	link := &If{base: base{pos: l.Position()}, Cond: f[1]}
	tail.Else = link
	return p.build(link, l.Indent)
}

var (
	mixinHeader = regexp.MustCompile(`^=([-\w]+)\s*(?:\((.*)\))?$`)
	mixinCall   = regexp.MustCompile(`^\+([-\w]+)\s*(?:\((.*)\))?$`)
	mixinParam  = regexp.MustCompile(`^[!$]([\w-]+)(?:\s*[=:]\s*(.+))?$`)
)

func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return script.SplitTopLevel(s, ',')
}

func (p *parser) parseMixinDefinition(l lines.Line, _ Node) (Node, error) {
	if l.Indent != 0 {
		return nil, sassErrors.New(
			sassErrors.BadSelector, "mixins can only be defined at root level",
		)
	}
	m := mixinHeader.FindStringSubmatch(l.Text)
	if m == nil {
		return nil, malformed(l, "mixin definition")
	}
	d := &MixinDefinition{base: base{pos: l.Position()}, Name: m[1]}
	optional := false
	for _, raw := range splitArgs(m[2]) {
		pm := mixinParam.FindStringSubmatch(raw)
		if pm == nil {
			return nil, sassErrors.Newf(
				sassErrors.BadSelector,
				"invalid parameter %q for mixin %s", raw, d.Name,
			)
		}
		param := Param{Name: pm[1], Default: pm[2], HasDefault: pm[2] != ""}
		if param.HasDefault {
			optional = true
		} else if optional {
			return nil, sassErrors.Newf(
				sassErrors.BadSelector,
				"mixin %s: required parameter %s follows an optional one",
				d.Name, param.Name,
			)
		}
		d.Params = append(d.Params, param)
	}
	return d, nil
}

func (p *parser) parseMixinCall(l lines.Line, _ Node) (Node, error) {
	m := mixinCall.FindStringSubmatch(l.Text)
	if m == nil {
		return nil, malformed(l, "mixin include")
	}
	return &MixinCall{
		base: base{pos: l.Position()},
		Name: m[1],
		Args: splitArgs(m[2]),
	}, nil
}

var assignment = regexp.MustCompile(`^[!$]([\w-]+)\s*(\|\|=|=|:)\s*(.*)$`)

func (p *parser) parseVariable(l lines.Line, _ Node) (Node, error) {
	m := assignment.FindStringSubmatch(l.Text)
	if m == nil || strings.TrimSpace(m[3]) == "" {
		return nil, sassErrors.Newf(
			sassErrors.BadPropertySyntax,
			"invalid variable definition %q, name and expression required",
			l.Text,
		)
	}
	v := &Variable{
		base:     base{pos: l.Position()},
		Name:     m[1],
		Expr:     strings.TrimSuffix(strings.TrimSpace(m[3]), ";"),
		Optional: m[2] == "||=",
	}
	if e := strings.TrimSuffix(v.Expr, "!default"); e != v.Expr {
		v.Expr = strings.TrimSpace(e)
		v.Optional = true
	}
	return v, nil
}

var (
	newProperty = regexp.MustCompile(`^([^\s=:"]+)(?:\s*(=)|:)(?:\s+|$)(.*?)(;)?$`)
	oldProperty = regexp.MustCompile(`^:([^\s=:]+)(?:\s*(=)\s*|\s+|$)(.*)`)
	scriptRef   = regexp.MustCompile(`(?:^|[^\\\w])([!$])([\w-]+)`)
)

func (p *parser) matchProperty(l lines.Line) ([]string, bool) {
	var m []string
	switch p.o.PropertySyntax {
	case NewSyntax:
		m = newProperty.FindStringSubmatch(l.Text)
	case OldSyntax:
		m = oldProperty.FindStringSubmatch(l.Text)
	default:
		m = newProperty.FindStringSubmatch(l.Text)
		if m == nil {
			m = oldProperty.FindStringSubmatch(l.Text)
			if m != nil && l.Indent == 0 && m[3] == "" {
				// A top level ":root" is a selector.
				m = nil
			}
		}
	}
	return m, m != nil
}

func (p *parser) parseProperty(l lines.Line, _ Node) (Node, error) {
	if l.Indent == 0 {
		return nil, sassErrors.Newf(
			sassErrors.BadPropertySyntax,
			"properties can not be assigned at root level: %q", l.Text,
		)
	}
	m, _ := p.matchProperty(l)
	value := strings.TrimSpace(m[3])
	return &Property{
		base:   base{pos: l.Position()},
		Name:   m[1],
		Value:  value,
		Script: m[2] == "=" || referencesVariable(value),
	}, nil
}

func referencesVariable(v string) bool {
	for _, m := range scriptRef.FindAllStringSubmatch(v, -1) {
		if m[1] == "$" || m[2] != "important" {
			return true
		}
	}
	return false
}

func (p *parser) parseRule(l lines.Line, _ Node) (Node, error) {
	r := &Rule{base: base{pos: l.Position()}}
	text := l.Text
	for {
		text = strings.TrimSpace(strings.TrimSuffix(text, "{"))
		r.SelectorLines = append(r.SelectorLines, splitSelectors(text))
		if !strings.HasSuffix(text, ",") {
			return r, nil
		}
		j := p.nextNonBlank(p.i)
		if j == -1 || p.lines[j].Indent != l.Indent {
			return nil, sassErrors.New(
				sassErrors.BadSelector, "selectors can not end in a comma",
			)
		}
		p.i = j + 1
		text = p.lines[j].Text
	}
}

func splitSelectors(s string) []string {
	parts := script.SplitTopLevel(s, ',')
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
