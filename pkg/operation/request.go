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

package operation

import (
	"path/filepath"
	"strings"
)

// Levels of the entries the stages record
const (
	LevelDetail = 1
	LevelFile   = 2
	LevelError  = 10
)

// 📄 File is one output file
type File struct {
	Path    string
	Content []byte
}

// Kind names the file by its extension, for display
func (f File) Kind() string {
	switch ext := filepath.Ext(f.Path); ext {
	case ".h":
		return "header"
	case ".m", ".mm":
		return "impl"
	case "":
		return "file"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

// 📝 WriteRequest is everything generated from one specification
type WriteRequest struct {
	Name  string
	Files []File
}

// 📖 Source is the content of one specification file
type Source struct {
	Path    string
	Content string
}
