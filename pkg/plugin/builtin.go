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

package plugin

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/remodel/pkg/spec"
)

// reserved names clash with NSObject methods
var reserved = map[string]bool{
	"hash":        true,
	"description": true,
	"class":       true,
	"init":        true,
	"copy":        true,
	"self":        true,
	"superclass":  true,
}

// 🏗️ Init declares the properties and the designated initializer
type Init struct{}

func (Init) Name() string { return "Init" }

func (Init) Contribute(t spec.Type, c *Class) error {
	var errs []error
	for _, a := range t.Attributes {
		if reserved[a.Name] {
			errs = append(errs, errors.Errorf("line %d: attribute name %q is reserved", a.Line, a.Name))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.addImport("<Foundation/Foundation.h>")

	for _, a := range t.Attributes {
		mods := []string{"nonatomic", "readonly"}
		switch {
		case copied(a):
			mods = append(mods, "copy")
		case a.ObjectType():
			mods = append(mods, "strong")
		default:
			mods = append(mods, "assign")
		}
		if a.Nullability != spec.Unspecified {
			mods = append(mods, a.Nullability.String())
		}
		c.Properties = append(c.Properties, Property{Attribute: a, Modifiers: mods})
	}

	if len(t.Attributes) == 0 {
		return nil
	}

	var sig strings.Builder
	sig.WriteString("- (instancetype)initWith")
	for i, a := range t.Attributes {
		name := a.Name
		if i == 0 {
			name = capitalize(name)
		} else {
			sig.WriteString(" ")
		}
		fmt.Fprintf(&sig, "%s:(%s)%s", name, paramType(a), a.Name)
	}

	body := []string{"if ((self = [super init])) {"}
	for _, a := range t.Attributes {
		if copied(a) {
			body = append(body, fmt.Sprintf("  %s = [%s copy];", ivar(a), a.Name))
		} else {
			body = append(body, fmt.Sprintf("  %s = %s;", ivar(a), a.Name))
		}
	}
	body = append(body, "}", "", "return self;")

	c.Methods = append(c.Methods, Method{Signature: sig.String(), Body: body, Public: true})
	return nil
}

// 📋 Copying adopts NSCopying. Instances are immutable so a copy is the
// instance itself.
type Copying struct{}

func (Copying) Name() string { return "Copying" }

func (Copying) Contribute(t spec.Type, c *Class) error {
	c.addProtocol("NSCopying")
	c.Methods = append(c.Methods, Method{
		Signature: "- (id)copyWithZone:(nullable NSZone *)zone",
		Body:      []string{"return self;"},
	})
	return nil
}

// 📝 Description prints every attribute
type Description struct{}

func (Description) Name() string { return "Description" }

func formatArg(a spec.Attribute) (string, string) {
	v := ivar(a)
	if a.ObjectType() {
		return "%@", v
	}
	switch a.Type.Name {
	case "BOOL":
		return "%@", v + ` ? @"YES" : @"NO"`
	case "NSInteger":
		return "%zd", v
	case "NSUInteger":
		return "%tu", v
	case "CGFloat", "double", "float", "NSTimeInterval":
		return "%lf", v
	case "int", "int32_t", "short", "char":
		return "%d", v
	case "long", "int64_t":
		return "%ld", "(long)" + v
	default:
		return "%@", "@(" + v + ")"
	}
}

func (Description) Contribute(t spec.Type, c *Class) error {
	if len(t.Attributes) == 0 {
		c.Methods = append(c.Methods, Method{
			Signature: "- (NSString *)description",
			Body:      []string{"return [NSString stringWithFormat:@\"%@ - \\n\", [super description]];"},
		})
		return nil
	}

	format := `@"%@ - \n`
	args := []string{"[super description]"}
	for _, a := range t.Attributes {
		verb, arg := formatArg(a)
		format += fmt.Sprintf(`\t %s: %s; \n`, a.Name, verb)
		args = append(args, arg)
	}
	format += `"`

	c.Methods = append(c.Methods, Method{
		Signature: "- (NSString *)description",
		Body:      []string{fmt.Sprintf("return [NSString stringWithFormat:%s, %s];", format, strings.Join(args, ", "))},
	})
	return nil
}

// ⚖️ Equality implements isEqual: and hash over every attribute
type Equality struct{}

func (Equality) Name() string { return "Equality" }

func hashOf(a spec.Attribute) string {
	if a.ObjectType() {
		return fmt.Sprintf("[%s hash]", ivar(a))
	}
	switch a.Type.Name {
	case "CGFloat", "double", "float", "NSTimeInterval":
		return fmt.Sprintf("[@(%s) hash]", ivar(a))
	default:
		return fmt.Sprintf("(NSUInteger)%s", ivar(a))
	}
}

func equalityOf(a spec.Attribute) string {
	v := ivar(a)
	if a.ObjectType() {
		return fmt.Sprintf("(%s == object->%s ? YES : [%s isEqual:object->%s])", v, v, v, v)
	}
	return fmt.Sprintf("%s == object->%s", v, v)
}

func (Equality) Contribute(t spec.Type, c *Class) error {
	isEqual := []string{
		"if (self == object) {",
		"  return YES;",
		"} else if (object == nil || ![object isKindOfClass:[self class]]) {",
		"  return NO;",
		"}",
	}
	if len(t.Attributes) == 0 {
		isEqual = append(isEqual, "return YES;")
	} else {
		isEqual = append(isEqual, "return")
		for i, a := range t.Attributes {
			line := "  " + equalityOf(a)
			if i < len(t.Attributes)-1 {
				line += " &&"
			} else {
				line += ";"
			}
			isEqual = append(isEqual, line)
		}
	}

	hash := []string{"NSUInteger result = 17;"}
	for _, a := range t.Attributes {
		hash = append(hash, fmt.Sprintf("result = 31 * result + %s;", hashOf(a)))
	}
	hash = append(hash, "return result;")

	c.Methods = append(c.Methods,
		Method{Signature: fmt.Sprintf("- (BOOL)isEqual:(%s *)object", t.Name), Body: isEqual},
		Method{Signature: "- (NSUInteger)hash", Body: hash},
	)
	return nil
}
