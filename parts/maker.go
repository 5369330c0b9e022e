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

// Package parts splits a stream into fixed-size parts and digests each one,
// which is what S3 needs for Content-MD5 headers on multipart uploads and
// for predicting multipart ETags.
package parts

import (
	"io"

	"github.com/retailnext/md5hasher/md5"
)

type Maker struct {
	result  PartDigests
	engine  *md5.Engine
	pending uint64
}

func (m *Maker) Reset(partSize uint64) {
	if partSize == 0 {
		panic("Reset: partSize must be > 0")
	}
	m.result = PartDigests{partSize: partSize}
	if m.engine == nil {
		m.engine = md5.New()
	} else {
		m.engine.Initialize()
	}
	m.pending = 0
}

// Finish closes the last part. Empty input produces one empty part.
func (m *Maker) Finish() PartDigests {
	if m.pending > 0 || len(m.result.parts) == 0 {
		m.flushPart()
	}
	m.engine = nil
	return m.result
}

func (m *Maker) Write(p []byte) (int, error) {
	var n int

	for len(p) > 0 {
		if m.pending == m.result.partSize {
			m.flushPart()
		}

		chunk := p
		if remaining := m.result.partSize - m.pending; remaining < uint64(len(p)) {
			chunk = p[:remaining]
		}
		if err := m.engine.Update(chunk); err != nil {
			panic(err)
		}
		m.pending += uint64(len(chunk))
		n += len(chunk)
		p = p[len(chunk):]
	}

	return n, nil
}

// OnWrite adapts the maker to checksum.OnWrite.
func (m *Maker) OnWrite(buf []byte) {
	if n, err := m.Write(buf); err != nil {
		panic(err)
	} else if n != len(buf) {
		panic(io.ErrShortWrite)
	}
}

func (m *Maker) flushPart() {
	if err := m.engine.Finalize(); err != nil {
		panic(err)
	}
	digest, err := m.engine.Digest()
	if err != nil {
		panic(err)
	}
	m.result.parts = append(m.result.parts, digest)
	m.result.totalLength += m.pending
	m.engine.Initialize()
	m.pending = 0
}
