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

// Package md5 implements the MD5 message digest of RFC 1321 as an
// incremental engine.
//
// MD5 is broken for collision resistance. It is only suitable for checksums
// and content fingerprints.
//
// An Engine is used by calling Initialize, feeding data with Update in chunks
// of any size, calling Finalize exactly once and then reading Digest or
// HexString. Using an Engine out of that order returns ErrNotInitialized,
// ErrFinalized or ErrNotFinalized instead of a wrong digest.
package md5

import (
	"encoding/binary"
	"errors"
)

// Size is the length of an MD5 digest in bytes.
const Size = 16

// BlockSize is the number of input bytes consumed by one transform.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
)

// lengthOffset is where the bit count starts in the final block.
const lengthOffset = BlockSize - 8

var (
	ErrNotInitialized = errors.New("md5: engine used before Initialize")
	ErrFinalized      = errors.New("md5: engine already finalized")
	ErrNotFinalized   = errors.New("md5: digest read before Finalize")
)

var padding = [BlockSize]byte{0x80}

type phase uint8

const (
	phaseNew phase = iota
	phaseAbsorbing
	phaseFinalized
)

// Engine holds the state of one MD5 computation.
//
// The zero value must be initialized before use. An Engine must not be used
// from more than one goroutine at a time; separate Engines share nothing.
type Engine struct {
	state  [4]uint32
	buf    [BlockSize]byte
	nbuf   int
	bits   uint64
	digest Digest
	phase  phase
}

// New returns an initialized Engine.
func New() *Engine {
	e := new(Engine)
	e.Initialize()
	return e
}

// Initialize resets the engine to the RFC 1321 starting state. It may be
// called at any time to start a new message.
func (e *Engine) Initialize() {
	e.state = [4]uint32{init0, init1, init2, init3}
	e.buf = [BlockSize]byte{}
	e.nbuf = 0
	e.bits = 0
	e.digest = Digest{}
	e.phase = phaseAbsorbing
}

// Update appends data to the message. The digest does not depend on how the
// message is split across calls.
func (e *Engine) Update(data []byte) error {
	switch e.phase {
	case phaseNew:
		return ErrNotInitialized
	case phaseFinalized:
		return ErrFinalized
	}
	e.absorb(data)
	return nil
}

func (e *Engine) absorb(data []byte) {
	e.bits += uint64(len(data)) << 3

	if e.nbuf > 0 {
		n := copy(e.buf[e.nbuf:], data)
		e.nbuf += n
		data = data[n:]
		if e.nbuf < BlockSize {
			return
		}
		transform(&e.state, e.buf[:])
		e.nbuf = 0
	}
	for len(data) >= BlockSize {
		transform(&e.state, data[:BlockSize])
		data = data[BlockSize:]
	}
	e.nbuf = copy(e.buf[:], data)
}

// Finalize pads the message, appends its bit length and produces the digest.
// No further Update is accepted until the engine is initialized again.
func (e *Engine) Finalize() error {
	switch e.phase {
	case phaseNew:
		return ErrNotInitialized
	case phaseFinalized:
		return ErrFinalized
	}

	bits := e.bits
	padLen := lengthOffset - e.nbuf
	if e.nbuf >= lengthOffset {
		padLen = BlockSize + lengthOffset - e.nbuf
	}
	e.absorb(padding[:padLen])
	if e.nbuf != lengthOffset {
		panic("md5: bad padding")
	}

	binary.LittleEndian.PutUint32(e.buf[lengthOffset:], uint32(bits))
	binary.LittleEndian.PutUint32(e.buf[lengthOffset+4:], uint32(bits>>32))
	transform(&e.state, e.buf[:])

	for i, word := range e.state {
		binary.LittleEndian.PutUint32(e.digest[4*i:], word)
	}
	e.buf = [BlockSize]byte{}
	e.nbuf = 0
	e.phase = phaseFinalized
	return nil
}

// Digest returns the 16 digest bytes.
func (e *Engine) Digest() (Digest, error) {
	if e.phase != phaseFinalized {
		return Digest{}, ErrNotFinalized
	}
	return e.digest, nil
}

// HexString returns the digest as 32 lowercase hex characters.
func (e *Engine) HexString() (string, error) {
	d, err := e.Digest()
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// Len returns the number of bytes absorbed so far, modulo 2^61.
func (e *Engine) Len() uint64 {
	return e.bits >> 3
}
