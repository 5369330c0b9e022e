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
	stdmd5 "crypto/md5"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

type knownAnswer struct {
	input  string
	digest string
}

var knownAnswers = []knownAnswer{
	{"", "d41d8cd98f00b204e9800998ecf8427e"},
	{"a", "0cc175b9c0f1b6a831c399e269772661"},
	{"abc", "900150983cd24fb0d6963f7d28e17f72"},
	{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
	{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	{"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", "d174ab98d277d9f5a5611c2c9f419d9f"},
	{strings.Repeat("1234567890", 8), "57edf4a22be3c955ac49da2e2107b67a"},
	{"The quick brown fox jumps over the lazy dog", "9e107d9d372bb6826bd81d3542a419d6"},
	// Padding boundaries: 55 bytes pads in place, 56 spills into a second block.
	{strings.Repeat("a", 55), "ef1772b6dff9a122358552954ad0df65"},
	{strings.Repeat("a", 56), "3b0c8ac703f828b04c6c197006d17218"},
	{strings.Repeat("a", 63), "b06521f39153d618550606be297466d5"},
	{strings.Repeat("a", 64), "014842d480b571495a4a0363793f7367"},
	{strings.Repeat("a", 65), "c743a45e0d2e6a95cb859adae0248435"},
}

func (ka knownAnswer) exec() string {
	e := New()
	if err := e.Update([]byte(ka.input)); err != nil {
		return fmt.Sprintf("Update failed: %s", err)
	}
	if err := e.Finalize(); err != nil {
		return fmt.Sprintf("Finalize failed: %s", err)
	}
	actual, err := e.HexString()
	if err != nil {
		return fmt.Sprintf("HexString failed: %s", err)
	}
	if actual != ka.digest {
		return fmt.Sprintf("wrong digest expected=%s actual=%s", ka.digest, actual)
	}
	if oneShot := Sum([]byte(ka.input)).String(); oneShot != ka.digest {
		return fmt.Sprintf("wrong Sum expected=%s actual=%s", ka.digest, oneShot)
	}
	return ""
}

func TestKnownAnswers(t *testing.T) {
	for i, ka := range knownAnswers {
		if msg := ka.exec(); msg != "" {
			t.Errorf("case %d (%d bytes): %s", i, len(ka.input), msg)
		}
	}
}

func TestMillionA(t *testing.T) {
	e := New()
	chunk := bytes.Repeat([]byte("a"), 1000)
	for i := 0; i < 1000; i++ {
		if err := e.Update(chunk); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Finalize(); err != nil {
		t.Fatal(err)
	}
	actual, _ := e.HexString()
	if actual != "7707d6ae4e027c70eea2a935c2296f21" {
		t.Fatalf("wrong digest %s", actual)
	}
}

func TestBoundariesAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1321))
	for size := 0; size <= 3*BlockSize+1; size++ {
		data := make([]byte, size)
		rng.Read(data)
		expected := Digest(stdmd5.Sum(data))
		if actual := Sum(data); actual != expected {
			t.Errorf("size %d: expected=%s actual=%s", size, expected, actual)
		}
	}
}

func digestChunked(data []byte, sizes func() int) (Digest, error) {
	e := New()
	for len(data) > 0 {
		n := sizes()
		if n > len(data) {
			n = len(data)
		}
		if err := e.Update(data[:n]); err != nil {
			return Digest{}, err
		}
		data = data[n:]
	}
	if err := e.Finalize(); err != nil {
		return Digest{}, err
	}
	return e.Digest()
}

func TestChunkingInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 5000)
	rng.Read(data)
	expected := Sum(data)

	single, err := digestChunked(data, func() int { return 1 })
	if err != nil {
		t.Fatal(err)
	}
	if single != expected {
		t.Fatalf("byte-at-a-time digest mismatch expected=%s actual=%s", expected, single)
	}

	for round := 0; round < 50; round++ {
		actual, err := digestChunked(data, func() int { return rng.Intn(3 * BlockSize) })
		if err != nil {
			t.Fatal(err)
		}
		if actual != expected {
			t.Fatalf("round %d: random chunking mismatch expected=%s actual=%s", round, expected, actual)
		}
	}
}

func TestEmptyUpdates(t *testing.T) {
	e := New()
	for _, chunk := range [][]byte{nil, {}, []byte("ab"), nil, []byte("c"), {}} {
		if err := e.Update(chunk); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.Finalize(); err != nil {
		t.Fatal(err)
	}
	if actual, _ := e.HexString(); actual != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("wrong digest %s", actual)
	}
}

func TestAccessorsAreIdempotent(t *testing.T) {
	for _, ka := range knownAnswers[:3] {
		e := New()
		_ = e.Update([]byte(ka.input))
		if err := e.Finalize(); err != nil {
			t.Fatal(err)
		}
		d1, err1 := e.Digest()
		d2, err2 := e.Digest()
		h1, err3 := e.HexString()
		h2, err4 := e.HexString()
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			t.Fatal(err)
		}
		if d1 != d2 || h1 != h2 {
			t.Fatalf("accessors changed between calls: %s %s %s %s", d1, d2, h1, h2)
		}
		if len(d1) != Size || len(h1) != 2*Size {
			t.Fatalf("wrong lengths digest=%d hex=%d", len(d1), len(h1))
		}
		if h1 != strings.ToLower(h1) {
			t.Fatalf("hex not lowercase: %s", h1)
		}
	}
}

func TestDeterminismAcrossEngines(t *testing.T) {
	data := []byte("determinism across engines")
	first := Sum(data)
	for i := 0; i < 5; i++ {
		var e Engine
		e.Initialize()
		_ = e.Update(data)
		_ = e.Finalize()
		d, _ := e.Digest()
		if d != first {
			t.Fatalf("engine %d disagrees: %s != %s", i, d, first)
		}
	}
}

func TestMisuse(t *testing.T) {
	var zero Engine
	if err := zero.Update([]byte("x")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Update on zero engine: %v", err)
	}
	if err := zero.Finalize(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Finalize on zero engine: %v", err)
	}
	if _, err := zero.Digest(); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("Digest on zero engine: %v", err)
	}

	e := New()
	if _, err := e.HexString(); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("HexString before Finalize: %v", err)
	}
	if err := e.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Update([]byte("x")); !errors.Is(err, ErrFinalized) {
		t.Errorf("Update after Finalize: %v", err)
	}
	if err := e.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize: %v", err)
	}
	if actual, _ := e.HexString(); actual != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("rejected calls changed the digest: %s", actual)
	}

	e.Initialize()
	if err := e.Update([]byte("a")); err != nil {
		t.Fatalf("Update after re-Initialize: %v", err)
	}
	_ = e.Finalize()
	if actual, _ := e.HexString(); actual != "0cc175b9c0f1b6a831c399e269772661" {
		t.Errorf("wrong digest after re-Initialize: %s", actual)
	}
}

func TestBitCounter(t *testing.T) {
	e := New()
	_ = e.Update(make([]byte, 100))
	_ = e.Update(make([]byte, 29))
	if e.bits != 129*8 {
		t.Fatalf("wrong bit count %d", e.bits)
	}
	if e.nbuf != 129%BlockSize {
		t.Fatalf("wrong fill %d", e.nbuf)
	}
	if e.Len() != 129 {
		t.Fatalf("wrong Len %d", e.Len())
	}

	// Crossing 2^32 bits carries into the high word.
	e = New()
	e.bits = 1<<32 - 8
	_ = e.Update([]byte{0})
	if e.bits != 1<<32 {
		t.Fatalf("low word overflow not carried: %#x", e.bits)
	}
}

func TestTransformIsPure(t *testing.T) {
	var block [BlockSize]byte
	copy(block[:], "transform")
	s1 := [4]uint32{init0, init1, init2, init3}
	s2 := s1
	transform(&s1, block[:])
	transform(&s2, block[:])
	if s1 != s2 {
		t.Fatalf("transform not deterministic: %x %x", s1, s2)
	}
	if s1 == [4]uint32{init0, init1, init2, init3} {
		t.Fatal("transform left state unchanged")
	}
}
