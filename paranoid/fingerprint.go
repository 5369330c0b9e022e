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

// Package paranoid refuses to trust a file's contents unless the file looks
// exactly as it did when it was first stat'ed.
package paranoid

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

type fingerprint struct {
	device uint64
	inode  uint64
	size   int64
	mtime  int64
}

func (fp *fingerprint) fromInfo(info os.FileInfo) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		panic("paranoid: unsupported FileInfo.Sys()")
	}
	fp.device = uint64(stat.Dev)
	fp.inode = uint64(stat.Ino)
	fp.size = info.Size()
	fp.mtime = info.ModTime().UnixNano()
}

// FingerprintMismatch means the file changed since it was first observed.
type FingerprintMismatch struct {
	Name     string
	expected fingerprint
	actual   fingerprint
}

func (e *FingerprintMismatch) Error() string {
	return fmt.Sprintf("file modified: name=%q expected=%+v actual=%+v", e.Name, e.expected, e.actual)
}

func IsFingerprintMismatch(err error) bool {
	var mismatch *FingerprintMismatch
	return errors.As(err, &mismatch)
}
