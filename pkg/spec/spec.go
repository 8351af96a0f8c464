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

// Package spec parses value-object specification files.
//
//	# A person.
//	Person includes(Equality) excludes(Copying) {
//	  # Full name
//	  NSString *name
//	  %nullable NSString *nickname
//	  NSInteger age
//	}
package spec

import (
	"fmt"
	"strings"
)

// 🏷️ Nullability of a pointer attribute
type Nullability int

const (
	Unspecified Nullability = iota
	Nullable
	Nonnull
)

func (n Nullability) String() string {
	switch n {
	case Nullable:
		return "nullable"
	case Nonnull:
		return "nonnull"
	default:
		return "unspecified"
	}
}

// 📦 AttributeType is the declared type of an attribute
type AttributeType struct {
	// Name is the type as written, without the trailing pointer star
	Name    string
	Pointer bool
}

func (t AttributeType) String() string {
	if t.Pointer {
		return t.Name + " *"
	}
	return t.Name
}

// 📝 Attribute is one property of a value object
type Attribute struct {
	Name        string
	Type        AttributeType
	Nullability Nullability
	Comments    []string
	Line        int
}

// 📚 Type is a parsed specification file
type Type struct {
	Name       string
	Includes   []string
	Excludes   []string
	Comments   []string
	Attributes []Attribute
}

// ❌ Error is a problem at a specific line of the input
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// ObjectType reports whether the attribute is an object reference
func (a Attribute) ObjectType() bool {
	return a.Type.Pointer || a.Type.Name == "id" || strings.HasPrefix(a.Type.Name, "id<")
}
