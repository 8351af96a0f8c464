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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 8  // Width for file kind
	statusWidth = 10 // Width for status text
)

// 🎯 FormatFileOperation formats one generated file as a table row with the
// size of the change
func FormatFileOperation(path, kind string, status FileStatus, inserted, deleted int) string {
	var prefix string
	switch status {
	case StatusNew:
		prefix = color.GreenString("✓")
	case StatusModified:
		prefix = color.YellowString("⟳")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	kindPart := fmt.Sprintf("%-*s", kindWidth, kind)
	statusPart := fmt.Sprintf("%-*s", statusWidth, status.String())

	return fmt.Sprintf("%s%s %s %s %s +%d -%d",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		kindPart,
		statusPart,
		inserted,
		deleted,
	)
}
