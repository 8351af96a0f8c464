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

package log

import (
	"fmt"

	"github.com/pterm/pterm"
)

// 📊 Summary prints the one-line result of a run over root
func (l *Logger) Summary(root string, successes, failures int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("%s: %d generated, %d failed", root, successes, failures)

	if failures == 0 {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(l.console).Println(msg)
		l.zlog.Info().Int("success_count", successes).Int("error_count", failures).Msg(msg)
		return
	}

	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(l.console).Println(msg)
	l.zlog.Error().Int("success_count", successes).Int("error_count", failures).Msg(msg)
}
