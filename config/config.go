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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWorkers  = 4
	DefaultPartSize = 8 * 1024 * 1024
)

type Config struct {
	CacheFile string `yaml:"cache_file" toml:"cache_file"`
	Workers   int    `yaml:"workers" toml:"workers" validate:"min=1"`
	// S3 rejects parts smaller than 5 MiB, except the last one.
	PartSize uint64 `yaml:"part_size" toml:"part_size" validate:"min=5242880"`
	S3Region string `yaml:"s3_region" toml:"s3_region"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
}

func Default() Config {
	return Config{
		Workers:  DefaultWorkers,
		PartSize: DefaultPartSize,
	}
}

// LoadFile reads a YAML or TOML (.toml) config on top of the defaults. An
// empty path returns the defaults.
func LoadFile(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, &c)
	} else {
		err = decodeYAML(data, &c)
	}
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeYAML(data []byte, c *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, c *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(c); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

type Overrides struct {
	CacheFile string
	Workers   int
	PartSize  uint64
	S3Region  string
}

// Apply copies every non-zero override over c, then fills the region from
// AWS_REGION when it is still empty.
func (c *Config) Apply(o Overrides) {
	if o.CacheFile != "" {
		c.CacheFile = o.CacheFile
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.PartSize != 0 {
		c.PartSize = o.PartSize
	}
	if o.S3Region != "" {
		c.S3Region = o.S3Region
	}
	if c.S3Region == "" {
		c.S3Region = os.Getenv("AWS_REGION")
	}
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s must be >= %s, got %v", e.Field(), e.Param(), e.Value()))
	}
	return errors.New(strings.Join(messages, "; "))
}
