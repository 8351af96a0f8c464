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
	"strings"

	"github.com/walteh/remodel/pkg/spec"
)

// 🧱 Class is the Objective-C class the plugins build up for one Type
type Class struct {
	Name       string
	Comments   []string
	Imports    []string
	Protocols  []string
	Properties []Property
	Methods    []Method
}

// 📝 Property is one declared property
type Property struct {
	Attribute spec.Attribute
	Modifiers []string
}

// ⚙️ Method is one method of the implementation. Public methods are also
// declared in the header.
type Method struct {
	Signature string
	Body      []string
	Public    bool
}

func (c *Class) addImport(imp string) {
	for _, have := range c.Imports {
		if have == imp {
			return
		}
	}
	c.Imports = append(c.Imports, imp)
}

func (c *Class) addProtocol(p string) {
	for _, have := range c.Protocols {
		if have == p {
			return
		}
	}
	c.Protocols = append(c.Protocols, p)
}

var copiedTypes = []string{
	"NSString",
	"NSArray",
	"NSDictionary",
	"NSSet",
	"NSOrderedSet",
	"NSAttributedString",
	"NSData",
	"NSIndexSet",
}

// copied reports whether assignments to a take a copy
func copied(a spec.Attribute) bool {
	if !a.Type.Pointer {
		return false
	}
	name, _, _ := strings.Cut(a.Type.Name, "<")
	for _, t := range copiedTypes {
		if name == t {
			return true
		}
	}
	return false
}

// paramType is the type of a as written in a method parameter
func paramType(a spec.Attribute) string {
	t := a.Type.String()
	if a.Nullability != spec.Unspecified {
		t = a.Nullability.String() + " " + t
	}
	return t
}

// declaration is "NSString *name" or "NSInteger age"
func declaration(a spec.Attribute) string {
	if a.Type.Pointer {
		return a.Type.Name + " *" + a.Name
	}
	return a.Type.Name + " " + a.Name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ivar(a spec.Attribute) string {
	return "_" + a.Name
}
