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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func writeConfig(t *testing.T, content string) string {
	return writeConfigNamed(t, "md5hasher.yaml", content)
}

func writeConfigNamed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(Default(), c); diff != nil {
		t.Fatal(diff)
	}

	c, err = LoadFile(writeConfig(t, "cache_file: /var/cache/md5.db\nworkers: 8\n"))
	if err != nil {
		t.Fatal(err)
	}
	expected := Config{CacheFile: "/var/cache/md5.db", Workers: 8, PartSize: DefaultPartSize}
	if diff := deep.Equal(expected, c); diff != nil {
		t.Fatal(diff)
	}

	if _, err := LoadFile(writeConfig(t, "")); err != nil {
		t.Fatalf("empty file rejected: %v", err)
	}
	if _, err := LoadFile(writeConfig(t, "wokers: 8\n")); err == nil {
		t.Fatal("unknown field accepted")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func TestLoadFileTOML(t *testing.T) {
	c, err := LoadFile(writeConfigNamed(t, "md5hasher.toml", "workers = 2\ns3_region = \"eu-west-1\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	expected := Config{Workers: 2, PartSize: DefaultPartSize, S3Region: "eu-west-1"}
	if diff := deep.Equal(expected, c); diff != nil {
		t.Fatal(diff)
	}
	if _, err := LoadFile(writeConfigNamed(t, "md5hasher.toml", "wokers = 2\n")); err == nil {
		t.Fatal("unknown field accepted")
	}
	if _, err := LoadFile(writeConfigNamed(t, "md5hasher.toml", "workers = \n")); err == nil {
		t.Fatal("invalid toml accepted")
	}
}

func TestApply(t *testing.T) {
	t.Setenv("AWS_REGION", "us-west-2")

	c := Config{CacheFile: "file", Workers: 2, PartSize: DefaultPartSize}
	c.Apply(Overrides{Workers: 16})
	expected := Config{CacheFile: "file", Workers: 16, PartSize: DefaultPartSize, S3Region: "us-west-2"}
	if diff := deep.Equal(expected, c); diff != nil {
		t.Fatal(diff)
	}

	c.Apply(Overrides{S3Region: "eu-west-1", CacheFile: "other"})
	if c.S3Region != "eu-west-1" || c.CacheFile != "other" {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	c.Workers = 0
	err := c.Validate()
	if err == nil {
		t.Fatal("zero workers accepted")
	}
	if !strings.Contains(err.Error(), "workers must be >= 1") {
		t.Errorf("wrong message %q", err)
	}
	c = Default()
	c.PartSize = 1024
	if err := c.Validate(); err == nil {
		t.Error("tiny part size accepted")
	}
}
