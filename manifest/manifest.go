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

// Package manifest records the digests of a set of files.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/retailnext/md5hasher/md5"
	"github.com/retailnext/writefile"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown manifest format %q", s)
}

// FormatFromName guesses the format from a file extension. Anything that is
// not JSON or YAML is read as md5sum text.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

type Manifest struct {
	Created time.Time
	Files   map[string]md5.Digest
}

func New() Manifest {
	return Manifest{
		Created: time.Now().UTC().Truncate(time.Second),
		Files:   make(map[string]md5.Digest),
	}
}

func (m *Manifest) Add(name string, digest md5.Digest) {
	if m.Files == nil {
		m.Files = make(map[string]md5.Digest)
	}
	m.Files[name] = digest
}

// Names returns the file names in sorted order.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m Manifest) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return m.MarshalText()
	case FormatJSON:
		return m.MarshalJSON()
	case FormatYAML:
		return m.MarshalYAMLDocument()
	}
	return nil, fmt.Errorf("unknown manifest format %q", format)
}

func Unmarshal(format Format, data []byte) (Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatText:
		err = m.UnmarshalText(data)
	case FormatJSON:
		err = m.UnmarshalJSON(data)
	case FormatYAML:
		err = m.UnmarshalYAMLDocument(data)
	default:
		err = fmt.Errorf("unknown manifest format %q", format)
	}
	return m, err
}

func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	m, err := Unmarshal(FormatFromName(path), data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save replaces path atomically.
func (m Manifest) Save(path string, format Format) error {
	data, err := m.Marshal(format)
	if err != nil {
		return err
	}
	target := writefile.Config{
		Directory:     filepath.Dir(path),
		DirectoryMode: 0755,
		FileMode:      0644,
	}
	return target.WriteFile(filepath.Base(path), func(file *os.File) error {
		_, writeErr := file.Write(data)
		return writeErr
	})
}
