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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `# A person.
# Second line.
Person includes(Equality, Description) excludes(Copying) {
  # Full name
  NSString *name
  %nullable NSString *nickname
  %nonnull
  NSArray<NSString *> *tags
  NSInteger age;
  id<NSCopying> token
}
`
	got, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, Type{
		Name:     "Person",
		Includes: []string{"Equality", "Description"},
		Excludes: []string{"Copying"},
		Comments: []string{"A person.", "Second line."},
		Attributes: []Attribute{
			{Name: "name", Type: AttributeType{Name: "NSString", Pointer: true}, Comments: []string{"Full name"}, Line: 5},
			{Name: "nickname", Type: AttributeType{Name: "NSString", Pointer: true}, Nullability: Nullable, Line: 6},
			{Name: "tags", Type: AttributeType{Name: "NSArray<NSString *>", Pointer: true}, Nullability: Nonnull, Line: 8},
			{Name: "age", Type: AttributeType{Name: "NSInteger"}, Line: 9},
			{Name: "token", Type: AttributeType{Name: "id<NSCopying>"}, Line: 10},
		},
	}, got)
}

func TestParseLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, got Type)
	}{
		{
			name:  "brace_on_next_line",
			input: "Point\n{\n  CGFloat x\n  CGFloat y\n}\n",
			check: func(t *testing.T, got Type) {
				assert.Equal(t, "Point", got.Name)
				require.Len(t, got.Attributes, 2)
				assert.Equal(t, "y", got.Attributes[1].Name)
			},
		},
		{
			name:  "no_space_before_brace",
			input: "Empty{\n}",
			check: func(t *testing.T, got Type) {
				assert.Equal(t, "Empty", got.Name)
				assert.Empty(t, got.Attributes)
			},
		},
		{
			name:  "star_attached_to_type",
			input: "Box {\n  NSString* label\n}",
			check: func(t *testing.T, got Type) {
				require.Len(t, got.Attributes, 1)
				assert.Equal(t, AttributeType{Name: "NSString", Pointer: true}, got.Attributes[0].Type)
				assert.Equal(t, "NSString *", got.Attributes[0].Type.String())
			},
		},
		{
			name:  "trailing_comment_after_brace",
			input: "Box {\n}\n# done\n",
			check: func(t *testing.T, got Type) {
				assert.Equal(t, "Box", got.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Error
	}{
		{
			name:  "empty",
			input: "",
			want:  []Error{{Line: 1, Msg: "missing type declaration"}},
		},
		{
			name:  "missing_closing_brace",
			input: "Person {\n  NSString *name\n",
			want:  []Error{{Line: 2, Msg: "missing closing brace"}},
		},
		{
			name:  "bad_type_name",
			input: "9Lives {\n}",
			want:  []Error{{Line: 1, Msg: `invalid type name "9Lives"`}},
		},
		{
			name:  "unknown_header_word",
			input: "Person implements(Foo) {\n}",
			want:  []Error{{Line: 1, Msg: `unexpected "implements(Foo)" in type declaration`}},
		},
		{
			name:  "several_problems",
			input: "Person {\n  name\n  NSInteger age\n  NSInteger age\n  %shiny NSString *x\n  %nullable NSInteger count\n}\nextra\n",
			want: []Error{
				{Line: 2, Msg: `expected "Type name", found "name"`},
				{Line: 4, Msg: `attribute "age" already declared on line 3`},
				{Line: 5, Msg: `unknown annotation "%shiny"`},
				{Line: 6, Msg: `%nullable on non-object attribute "count"`},
				{Line: 8, Msg: `unexpected content after closing brace: "extra"`},
			},
		},
		{
			name:  "dangling_annotation",
			input: "Person {\n  %nullable\n}",
			want:  []Error{{Line: 3, Msg: "annotation %nullable is not followed by an attribute"}},
		},
		{
			name:  "expected_brace",
			input: "Person\nNSString *name\n}",
			want: []Error{
				{Line: 2, Msg: `expected "{", found "NSString *name"`},
				{Line: 3, Msg: `expected "{", found "}"`},
				{Line: 3, Msg: "missing closing brace"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var got []Error
			var joined interface{ Unwrap() []error }
			if errors.As(err, &joined) {
				for _, e := range joined.Unwrap() {
					var pe *Error
					require.True(t, errors.As(e, &pe), "unexpected error %v", e)
					got = append(got, *pe)
				}
			} else {
				var pe *Error
				require.True(t, errors.As(err, &pe), "unexpected error %v", err)
				got = append(got, *pe)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Line: 4, Msg: "boom"}
	assert.Equal(t, "line 4: boom", err.Error())
}
