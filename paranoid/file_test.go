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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileDetectsChanges(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(name, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != name || f.Len() != 5 {
		t.Fatalf("wrong name/len %q %d", f.Name(), f.Len())
	}

	osFile, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.CheckFile(osFile); err != nil {
		t.Fatal(err)
	}
	if err := osFile.Close(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(name, []byte("hello, world"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = f.Check()
	if !IsFingerprintMismatch(err) {
		t.Fatalf("expected fingerprint mismatch, got %v", err)
	}
	if _, err := f.Open(); !IsFingerprintMismatch(err) {
		t.Fatalf("Open of modified file: %v", err)
	}

	if err := os.Remove(name); err != nil {
		t.Fatal(err)
	}
	if err := f.Check(); !os.IsNotExist(err) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func TestCacheEntry(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "data")
	other := filepath.Join(dir, "other")
	for _, n := range []string{name, other} {
		if err := os.WriteFile(n, []byte("payload"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	f, err := NewFile(name)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewFile(other)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(f.CacheKey(), g.CacheKey()) {
		t.Fatal("distinct files share a cache key")
	}

	value := []byte("cached value")
	entry := f.WrapCacheEntry(value)
	if got := f.UnwrapCacheEntry(f.CacheKey(), entry); !bytes.Equal(got, value) {
		t.Fatalf("unwrap returned %q", got)
	}
	if got := g.UnwrapCacheEntry(f.CacheKey(), entry); got != nil {
		t.Fatal("entry accepted for a different file")
	}
	if got := f.UnwrapCacheEntry(f.CacheKey(), entry[:3]); got != nil {
		t.Fatal("truncated entry accepted")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(name, later, later); err != nil {
		t.Fatal(err)
	}
	touched, err := NewFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(touched.CacheKey(), f.CacheKey()) {
		t.Fatal("cache key changed with mtime")
	}
	if got := touched.UnwrapCacheEntry(touched.CacheKey(), entry); got != nil {
		t.Fatal("stale entry accepted after mtime change")
	}
}
