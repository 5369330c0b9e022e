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

import "hash"

var _ hash.Hash = (*Engine)(nil)

// NewHash returns an initialized Engine as a hash.Hash.
func NewHash() hash.Hash {
	return New()
}

func (e *Engine) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum appends the digest of the data written so far to b. Unlike Finalize it
// leaves the engine accepting more writes.
func (e *Engine) Sum(b []byte) []byte {
	if e.phase == phaseFinalized {
		return append(b, e.digest[:]...)
	}
	clone := *e
	if clone.phase == phaseNew {
		clone.Initialize()
	}
	if err := clone.Finalize(); err != nil {
		panic(err)
	}
	return append(b, clone.digest[:]...)
}

func (e *Engine) Reset() {
	e.Initialize()
}

func (e *Engine) Size() int {
	return Size
}

func (e *Engine) BlockSize() int {
	return BlockSize
}
