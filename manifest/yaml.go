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
	"bytes"
	"fmt"
	"time"

	"github.com/retailnext/md5hasher/md5"
	"gopkg.in/yaml.v3"
)

type yamlManifest struct {
	Created time.Time         `yaml:"created"`
	Files   map[string]string `yaml:"files"`
}

func (m Manifest) MarshalYAMLDocument() ([]byte, error) {
	doc := yamlManifest{
		Created: m.Created,
		Files:   make(map[string]string, len(m.Files)),
	}
	for name, digest := range m.Files {
		doc.Files[name] = digest.String()
	}
	return yaml.Marshal(&doc)
}

func (m *Manifest) UnmarshalYAMLDocument(data []byte) error {
	var doc yamlManifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return err
	}
	m.Created = doc.Created
	m.Files = make(map[string]md5.Digest, len(doc.Files))
	for name, text := range doc.Files {
		digest, err := md5.ParseHex(text)
		if err != nil {
			return fmt.Errorf("files[%q]: %w", name, err)
		}
		m.Files[name] = digest
	}
	return nil
}
