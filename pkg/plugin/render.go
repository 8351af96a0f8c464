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
)

const indent = "  "

func writeBanner(b *strings.Builder, input string) {
	b.WriteString("/**\n")
	b.WriteString(" * This file is generated using the remodel generation script.\n")
	fmt.Fprintf(b, " * The name of the input file is %s\n", input)
	b.WriteString(" */\n\n")
}

func writeComments(b *strings.Builder, comments []string) {
	if len(comments) == 0 {
		return
	}
	b.WriteString("/**\n")
	for _, c := range comments {
		if c == "" {
			b.WriteString(" *\n")
			continue
		}
		fmt.Fprintf(b, " * %s\n", c)
	}
	b.WriteString(" */\n")
}

// 📄 RenderHeader renders the .h file for c
func RenderHeader(c *Class, input string) string {
	var b strings.Builder
	writeBanner(&b, input)

	for _, imp := range c.Imports {
		fmt.Fprintf(&b, "#import %s\n", imp)
	}
	if len(c.Imports) > 0 {
		b.WriteString("\n")
	}

	writeComments(&b, c.Comments)
	fmt.Fprintf(&b, "@interface %s : NSObject", c.Name)
	if len(c.Protocols) > 0 {
		fmt.Fprintf(&b, " <%s>", strings.Join(c.Protocols, ", "))
	}
	b.WriteString("\n\n")

	for _, p := range c.Properties {
		for _, comment := range p.Attribute.Comments {
			fmt.Fprintf(&b, "// %s\n", comment)
		}
		fmt.Fprintf(&b, "@property (%s) %s;\n", strings.Join(p.Modifiers, ", "), declaration(p.Attribute))
	}
	if len(c.Properties) > 0 {
		b.WriteString("\n")
	}

	public := false
	for _, m := range c.Methods {
		if m.Public {
			fmt.Fprintf(&b, "%s;\n", m.Signature)
			public = true
		}
	}
	if public {
		b.WriteString("\n")
	}

	b.WriteString("@end\n")
	return b.String()
}

// 📄 RenderImplementation renders the .m file for c
func RenderImplementation(c *Class, input string) string {
	var b strings.Builder
	writeBanner(&b, input)

	fmt.Fprintf(&b, "#import \"%s.h\"\n\n", c.Name)
	fmt.Fprintf(&b, "@implementation %s\n\n", c.Name)

	for _, m := range c.Methods {
		fmt.Fprintf(&b, "%s\n{\n", m.Signature)
		for _, line := range m.Body {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			fmt.Fprintf(&b, "%s%s\n", indent, line)
		}
		b.WriteString("}\n\n")
	}

	b.WriteString("@end\n")
	return b.String()
}
