// Copyright 2026 RetailNext, Inc.
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

package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/retailnext/md5hasher/md5"
)

// SyntaxError reports a malformed md5sum line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

var nameEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
var nameUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")

// Line formats one md5sum line without the trailing newline. Names containing
// a backslash or a line break are escaped the way GNU md5sum does it.
func Line(name string, digest md5.Digest) string {
	escaped := nameEscaper.Replace(name)
	if escaped != name {
		return "\\" + digest.String() + "  " + escaped
	}
	return digest.String() + "  " + name
}

func (m Manifest) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range m.Names() {
		buf.WriteString(Line(name, m.Files[name]))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalText reads md5sum lines. Blank lines and lines starting with #
// are skipped; "*" marks binary mode and is accepted.
func (m *Manifest) UnmarshalText(data []byte) error {
	m.Files = make(map[string]md5.Digest)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		escaped := line[0] == '\\'
		if escaped {
			line = line[1:]
		}

		const hexLen = 2 * md5.Size
		if len(line) < hexLen+3 {
			return &SyntaxError{Line: lineNum, Msg: "line too short"}
		}
		digest, err := md5.ParseHex(line[:hexLen])
		if err != nil {
			return &SyntaxError{Line: lineNum, Msg: err.Error()}
		}
		if sep := line[hexLen : hexLen+2]; sep != "  " && sep != " *" {
			return &SyntaxError{Line: lineNum, Msg: fmt.Sprintf("bad separator %q", sep)}
		}
		name := line[hexLen+2:]
		if escaped {
			name = nameUnescaper.Replace(name)
		}
		if _, dup := m.Files[name]; dup {
			return &SyntaxError{Line: lineNum, Msg: fmt.Sprintf("duplicate name %q", name)}
		}
		m.Files[name] = digest
	}
	return scanner.Err()
}
