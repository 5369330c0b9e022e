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

package md5

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// Digest is a finished MD5 digest. Byte 0 is the low byte of state word A.
type Digest [Size]byte

var errDigestInvalidLength = errors.New("md5 digest: invalid length")

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	var e Engine
	e.Initialize()
	e.absorb(data)
	if err := e.Finalize(); err != nil {
		panic(err)
	}
	return e.digest
}

// ParseHex decodes 32 hex characters.
func ParseHex(s string) (Digest, error) {
	var d Digest
	if len(s) != hex.EncodedLen(Size) {
		return d, fmt.Errorf("md5 digest: invalid hex %q", s)
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, fmt.Errorf("md5 digest: invalid hex %q: %w", s, err)
	}
	return d, nil
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Base64 is the form used by Content-MD5 headers.
func (d Digest) Base64() string {
	return base64.StdEncoding.EncodeToString(d[:])
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) MarshalText() ([]byte, error) {
	text := make([]byte, hex.EncodedLen(Size))
	hex.Encode(text, d[:])
	return text, nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Digest) MarshalEasyJSON(w *jwriter.Writer) {
	w.String(d.String())
}

func (d *Digest) UnmarshalEasyJSON(l *jlexer.Lexer) {
	parsed, err := ParseHex(l.String())
	if err != nil {
		l.AddError(err)
		return
	}
	*d = parsed
}

func (d Digest) MarshalBinary() ([]byte, error) {
	result := make([]byte, Size)
	copy(result, d[:])
	return result, nil
}

func (d *Digest) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return errDigestInvalidLength
	}
	copy(d[:], data)
	return nil
}
