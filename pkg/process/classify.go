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

package process

import "bytes"

// classifySampleSize matches the window git sniffs when deciding whether a
// diff is binary.
const classifySampleSize = 8000

// 📄 Kind labels file content as text or binary
type Kind int

const (
	KindText Kind = iota
	KindBinary
)

func (k Kind) String() string {
	if k == KindBinary {
		return "binary"
	}
	return "text"
}

// 🔍 Classify reports whether content is text or binary. A NUL byte anywhere
// in the first 8000 bytes marks it binary; everything else is text. The rule
// is total, so arbitrary bytes always classify cleanly.
func Classify(sample []byte) Kind {
	if len(sample) > classifySampleSize {
		sample = sample[:classifySampleSize]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return KindBinary
	}
	return KindText
}

// 🔢 CountLines counts newline-delimited lines. Empty content has zero lines,
// and a final line without a trailing newline still counts.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
