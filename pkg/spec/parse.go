// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spec

import (
	"bufio"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

type parseState int

const (
	stateHeader parseState = iota
	stateOpen              // header read, waiting for "{"
	stateBody
	stateDone
)

type parser struct {
	state    parseState
	typ      Type
	comments []string
	pending  Nullability
	seen     map[string]int
	errs     []error
}

func (p *parser) fail(line int, format string, args ...any) {
	p.errs = append(p.errs, &Error{Line: line, Msg: fmt.Sprintf(format, args...)})
}

// 📖 Parse reads one specification. Every problem found is reported, each as
// an *Error carrying its line number, joined into a single error.
func Parse(content string) (Type, error) {
	p := &parser{seen: map[string]int{}}

	sc := bufio.NewScanner(strings.NewReader(content))
	line := 0
	for sc.Scan() {
		line++
		p.line(line, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return Type{}, errors.Errorf("reading specification: %w", err)
	}

	switch p.state {
	case stateHeader:
		p.fail(max(line, 1), "missing type declaration")
	case stateOpen, stateBody:
		p.fail(max(line, 1), "missing closing brace")
	}

	if len(p.errs) > 0 {
		return Type{}, errors.Join(p.errs...)
	}
	return p.typ, nil
}

func (p *parser) line(n int, text string) {
	if text == "" {
		return
	}
	if strings.HasPrefix(text, "#") {
		p.comments = append(p.comments, strings.TrimSpace(strings.TrimPrefix(text, "#")))
		return
	}

	switch p.state {
	case stateHeader:
		p.header(n, text)
	case stateOpen:
		if text != "{" {
			p.fail(n, "expected \"{\", found %q", text)
			return
		}
		p.state = stateBody
	case stateBody:
		p.body(n, text)
	case stateDone:
		p.fail(n, "unexpected content after closing brace: %q", text)
	}
}

func (p *parser) header(n int, text string) {
	p.typ.Comments = p.takeComments()

	rest := text
	if strings.HasSuffix(rest, "{") {
		rest = strings.TrimSpace(strings.TrimSuffix(rest, "{"))
		p.state = stateBody
	} else {
		p.state = stateOpen
	}

	name, rest, _ := strings.Cut(rest, " ")
	if i := strings.IndexByte(name, '('); i >= 0 {
		// "Name includes(" without a space is not valid, but keep going
		rest = name[i:] + " " + rest
		name = name[:i]
	}
	if !isIdentifier(name) {
		p.fail(n, "invalid type name %q", name)
	}
	p.typ.Name = name

	rest = strings.TrimSpace(rest)
	for rest != "" {
		var kw string
		switch {
		case strings.HasPrefix(rest, "includes("):
			kw = "includes"
		case strings.HasPrefix(rest, "excludes("):
			kw = "excludes"
		default:
			p.fail(n, "unexpected %q in type declaration", rest)
			return
		}

		end := strings.IndexByte(rest, ')')
		if end < 0 {
			p.fail(n, "unterminated %s(", kw)
			return
		}
		names := p.nameList(n, rest[len(kw)+1:end])
		if kw == "includes" {
			p.typ.Includes = append(p.typ.Includes, names...)
		} else {
			p.typ.Excludes = append(p.typ.Excludes, names...)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}
}

func (p *parser) nameList(n int, list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !isIdentifier(item) {
			p.fail(n, "invalid plugin name %q", item)
			continue
		}
		out = append(out, item)
	}
	return out
}

func (p *parser) body(n int, text string) {
	if text == "}" {
		if p.pending != Unspecified {
			p.fail(n, "annotation %%%s is not followed by an attribute", p.pending)
		}
		p.state = stateDone
		return
	}

	nullability := p.pending
	p.pending = Unspecified

	for strings.HasPrefix(text, "%") {
		word, rest, _ := strings.Cut(text, " ")
		switch word {
		case "%nullable":
			nullability = Nullable
		case "%nonnull":
			nullability = Nonnull
		default:
			p.fail(n, "unknown annotation %q", word)
		}
		text = strings.TrimSpace(rest)
	}
	if text == "" {
		p.pending = nullability
		return
	}

	attr, ok := p.attribute(n, strings.TrimSuffix(text, ";"))
	if !ok {
		return
	}
	attr.Nullability = nullability
	if nullability != Unspecified && !attr.ObjectType() {
		p.fail(n, "%%%s on non-object attribute %q", nullability, attr.Name)
	}
	if prev, dup := p.seen[attr.Name]; dup {
		p.fail(n, "attribute %q already declared on line %d", attr.Name, prev)
		return
	}
	p.seen[attr.Name] = n
	p.typ.Attributes = append(p.typ.Attributes, attr)
}

func (p *parser) attribute(n int, text string) (Attribute, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		p.fail(n, "expected \"Type name\", found %q", text)
		return Attribute{}, false
	}

	last := fields[len(fields)-1]
	typeName := strings.TrimSpace(text[:strings.LastIndex(text, last)])
	name := strings.TrimLeft(last, "*")
	pointer := name != last

	if strings.HasSuffix(typeName, "*") {
		pointer = true
		typeName = strings.TrimSpace(strings.TrimSuffix(typeName, "*"))
	}

	if !isIdentifier(name) {
		p.fail(n, "invalid attribute name %q", name)
		return Attribute{}, false
	}
	if typeName == "" {
		p.fail(n, "missing type for attribute %q", name)
		return Attribute{}, false
	}

	return Attribute{
		Name:     name,
		Type:     AttributeType{Name: typeName, Pointer: pointer},
		Comments: p.takeComments(),
		Line:     n,
	}, true
}

func (p *parser) takeComments() []string {
	c := p.comments
	p.comments = nil
	return c
}
