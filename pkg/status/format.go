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
)

// FileFormatter describes file writes to the user
type FileFormatter interface {
	// FormatWrite formats the outcome of writing one generated file
	FormatWrite(path string, status FileStatus, dryRun bool) string
}

// DefaultFileFormatter describes a single write in words, for debug lines
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatWrite formats a file write with emojis
func (f *DefaultFileFormatter) FormatWrite(path string, status FileStatus, dryRun bool) string {
	verb := map[FileStatus]string{
		StatusNew:       "Created",
		StatusModified:  "Modified",
		StatusUnchanged: "Unchanged",
	}[status]
	if dryRun {
		verb = map[FileStatus]string{
			StatusNew:       "Would create",
			StatusModified:  "Would modify",
			StatusUnchanged: "Would leave",
		}[status]
	}

	switch status {
	case StatusNew:
		return fmt.Sprintf("✨ %s %s", verb, path)
	case StatusModified:
		return fmt.Sprintf("📝 %s %s", verb, path)
	case StatusUnchanged:
		return fmt.Sprintf("👍 %s %s", verb, path)
	default:
		return fmt.Sprintf("❓ Wrote %s", path)
	}
}
