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
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

func TestHashInterface(t *testing.T) {
	h := NewHash()
	if h.Size() != Size || h.BlockSize() != BlockSize {
		t.Fatalf("wrong sizes %d %d", h.Size(), h.BlockSize())
	}
	if _, err := io.WriteString(h, "ab"); err != nil {
		t.Fatal(err)
	}
	partial := hex.EncodeToString(h.Sum(nil))
	if partial != "187ef4436122d1cc2f40dc2b92f0eba0" {
		t.Fatalf("wrong partial sum %s", partial)
	}
	if _, err := io.WriteString(h, "c"); err != nil {
		t.Fatal(err)
	}
	prefix := []byte("x")
	sum := h.Sum(prefix)
	if !bytes.Equal(sum[:1], prefix) || hex.EncodeToString(sum[1:]) != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("wrong sum %x", sum)
	}
	h.Reset()
	if got := hex.EncodeToString(h.Sum(nil)); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("wrong sum after Reset %s", got)
	}
}

func TestWriteAfterFinalize(t *testing.T) {
	e := New()
	_ = e.Finalize()
	if n, err := e.Write([]byte("abc")); n != 0 || err != ErrFinalized {
		t.Fatalf("expected rejected write, got n=%d err=%v", n, err)
	}
	if got := hex.EncodeToString(e.Sum(nil)); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("wrong Sum on finalized engine %s", got)
	}
}

func TestStateResume(t *testing.T) {
	data := []byte(strings.Repeat("resumable ", 30))
	expected := Sum(data)

	for split := 0; split <= len(data); split += 7 {
		e := New()
		_ = e.Update(data[:split])
		state, err := e.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		if len(state) != stateSize {
			t.Fatalf("wrong state size %d", len(state))
		}

		var resumed Engine
		if err := resumed.UnmarshalBinary(state); err != nil {
			t.Fatal(err)
		}
		if diff := deep.Equal(e.state, resumed.state); diff != nil {
			t.Fatal(diff)
		}
		_ = resumed.Update(data[split:])
		_ = resumed.Finalize()
		actual, _ := resumed.Digest()
		if actual != expected {
			t.Fatalf("split %d: expected=%s actual=%s", split, expected, actual)
		}
	}
}

func TestStateErrors(t *testing.T) {
	var zero Engine
	if _, err := zero.MarshalBinary(); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	e := New()
	_ = e.Finalize()
	if _, err := e.MarshalBinary(); err != ErrFinalized {
		t.Errorf("expected ErrFinalized, got %v", err)
	}
	if err := e.UnmarshalBinary([]byte("sha\x01")); err != errStateMagic {
		t.Errorf("expected errStateMagic, got %v", err)
	}
	if err := e.UnmarshalBinary([]byte(stateMagic + "short")); err != errStateLength {
		t.Errorf("expected errStateLength, got %v", err)
	}
}

func TestDigestEncodings(t *testing.T) {
	d := Sum([]byte("abc"))
	if d.Base64() != "kAFQmDzST7DWlj99KOF/cg==" {
		t.Errorf("wrong base64 %s", d.Base64())
	}
	if d.IsZero() || !(Digest{}).IsZero() {
		t.Error("wrong IsZero")
	}

	text, _ := d.MarshalText()
	var fromText Digest
	if err := fromText.UnmarshalText(text); err != nil || fromText != d {
		t.Errorf("text round trip failed: %v %s", err, fromText)
	}
	upper, err := ParseHex(strings.ToUpper(d.String()))
	if err != nil || upper != d {
		t.Errorf("uppercase hex rejected: %v", err)
	}
	for _, bad := range []string{"", "900150983cd24fb0d6963f7d28e17f7", "zz0150983cd24fb0d6963f7d28e17f72"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) accepted", bad)
		}
	}

	raw, _ := d.MarshalBinary()
	var fromBinary Digest
	if err := fromBinary.UnmarshalBinary(raw); err != nil || fromBinary != d {
		t.Errorf("binary round trip failed: %v", err)
	}
	if err := fromBinary.UnmarshalBinary(raw[1:]); err != errDigestInvalidLength {
		t.Errorf("short binary accepted: %v", err)
	}

	var w jwriter.Writer
	d.MarshalEasyJSON(&w)
	encoded, err := w.BuildBytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(encoded) != `"900150983cd24fb0d6963f7d28e17f72"` {
		t.Errorf("wrong json %s", encoded)
	}
	var fromJSON Digest
	l := jlexer.Lexer{Data: encoded}
	fromJSON.UnmarshalEasyJSON(&l)
	if err := l.Error(); err != nil || fromJSON != d {
		t.Errorf("json round trip failed: %v", err)
	}
}
