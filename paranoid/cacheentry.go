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

package paranoid

import (
	"bytes"
	"encoding/binary"
)

const (
	cacheKeyLen    = 16 // device + inode
	entryHeaderLen = 16 // mtime + size
)

// CacheKey identifies the file by device and inode, so renames keep their
// cached values.
func (f File) CacheKey() []byte {
	key := make([]byte, 0, cacheKeyLen)
	key = binary.BigEndian.AppendUint64(key, f.fingerprint.device)
	key = binary.BigEndian.AppendUint64(key, f.fingerprint.inode)
	return key
}

func (f File) entryHeader() []byte {
	header := make([]byte, 0, entryHeaderLen)
	header = binary.BigEndian.AppendUint64(header, uint64(f.fingerprint.mtime))
	header = binary.BigEndian.AppendUint64(header, uint64(f.fingerprint.size))
	return header
}

// WrapCacheEntry prefixes data with the current mtime and size.
func (f File) WrapCacheEntry(data []byte) []byte {
	entry := make([]byte, 0, entryHeaderLen+len(data))
	entry = append(entry, f.entryHeader()...)
	return append(entry, data...)
}

// UnwrapCacheEntry returns the data stored by WrapCacheEntry, or nil if the
// entry belongs to another file or an older version of this one.
func (f File) UnwrapCacheEntry(key, entry []byte) []byte {
	if !bytes.Equal(f.CacheKey(), key) {
		return nil
	}
	if len(entry) < entryHeaderLen {
		return nil
	}
	if !bytes.Equal(f.entryHeader(), entry[:entryHeaderLen]) {
		return nil
	}
	return entry[entryHeaderLen:]
}
