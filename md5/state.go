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
	"encoding/binary"
	"errors"
)

const (
	stateMagic = "md5\x01"
	stateSize  = len(stateMagic) + 4*4 + BlockSize + 8
)

var (
	errStateMagic  = errors.New("md5: invalid state identifier")
	errStateLength = errors.New("md5: invalid state size")
)

// MarshalBinary checkpoints an engine that is still absorbing input.
func (e *Engine) MarshalBinary() ([]byte, error) {
	switch e.phase {
	case phaseNew:
		return nil, ErrNotInitialized
	case phaseFinalized:
		return nil, ErrFinalized
	}
	b := make([]byte, 0, stateSize)
	b = append(b, stateMagic...)
	for _, word := range e.state {
		b = binary.BigEndian.AppendUint32(b, word)
	}
	b = append(b, e.buf[:e.nbuf]...)
	b = b[:len(b)+BlockSize-e.nbuf]
	b = binary.BigEndian.AppendUint64(b, e.bits)
	return b, nil
}

// UnmarshalBinary restores a checkpoint made by MarshalBinary. The engine can
// then continue with Update.
func (e *Engine) UnmarshalBinary(b []byte) error {
	if len(b) < len(stateMagic) || string(b[:len(stateMagic)]) != stateMagic {
		return errStateMagic
	}
	if len(b) != stateSize {
		return errStateLength
	}
	b = b[len(stateMagic):]
	for i := range e.state {
		e.state[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	copy(e.buf[:], b[:BlockSize])
	b = b[BlockSize:]
	e.bits = binary.BigEndian.Uint64(b)
	e.nbuf = int((e.bits >> 3) % BlockSize)
	for i := e.nbuf; i < BlockSize; i++ {
		e.buf[i] = 0
	}
	e.digest = Digest{}
	e.phase = phaseAbsorbing
	return nil
}
