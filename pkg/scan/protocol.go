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

package scan

import (
	"bufio"
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 📨 Request asks a worker to look at one directory. Every request produced
// while walking the tree below one root shares the root's RequestID.
type Request struct {
	RequestID uint64 `json:"request_id"`
	Directory string `json:"directory"`
	Suffix    string `json:"suffix"`
}

// 📬 Reply is a worker's answer to one Request
type Reply struct {
	RequestID   uint64   `json:"request_id"`
	Worker      int      `json:"worker"`
	Suffix      string   `json:"suffix"`
	Files       []string `json:"files,omitempty"`
	Directories []string `json:"directories,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// 📝 Encoder writes one JSON document per line
type Encoder struct {
	enc *json.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

func (e *Encoder) Encode(v any) error {
	if err := e.enc.Encode(v); err != nil {
		return errors.Errorf("encoding message: %w", err)
	}
	return nil
}

// 📖 Decoder reads the documents written by an Encoder
type Decoder struct {
	dec *json.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(bufio.NewReader(r))}
}

// Decode reads the next message into v. It returns io.EOF, unwrapped, once the
// stream ends cleanly.
func (d *Decoder) Decode(v any) error {
	if err := d.dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return errors.Errorf("decoding message: %w", err)
	}
	return nil
}
