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

import "os"

// File is a name plus the fingerprint it had when it was stat'ed.
type File struct {
	name        string
	fingerprint fingerprint
}

func NewFile(name string) (File, error) {
	info, err := os.Stat(name)
	if err != nil {
		return File{}, err
	}
	return NewFileFromInfo(name, info), nil
}

func NewFileFromInfo(name string, info os.FileInfo) File {
	file := File{
		name: name,
	}
	file.fingerprint.fromInfo(info)
	return file
}

func (f File) Name() string {
	return f.name
}

func (f File) Len() int64 {
	return f.fingerprint.size
}

// Check stats the file by name again.
func (f File) Check() error {
	info, err := os.Stat(f.name)
	if err != nil {
		return err
	}
	return f.check(info)
}

// CheckFile stats an open handle. Call it after reading to detect writes
// that raced with the read.
func (f File) CheckFile(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		return err
	}
	return f.check(info)
}

func (f File) check(info os.FileInfo) error {
	var current fingerprint
	current.fromInfo(info)
	if f.fingerprint != current {
		return &FingerprintMismatch{
			Name:     f.name,
			expected: f.fingerprint,
			actual:   current,
		}
	}
	return nil
}

// Open opens the file for reading if it still matches.
func (f File) Open() (*os.File, error) {
	file, err := os.Open(f.name)
	if err != nil {
		return nil, err
	}
	if err := f.CheckFile(file); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			panic(closeErr)
		}
		return nil, err
	}
	return file, nil
}
