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

package sum

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retailnext/md5hasher/checksum"
	"github.com/retailnext/md5hasher/config"
	"github.com/retailnext/md5hasher/manifest"
	"github.com/retailnext/md5hasher/md5"
	"go.uber.org/zap"
)

type Options struct {
	Files  []string
	Output string
	Format string
}

func (o Options) format() (manifest.Format, error) {
	if o.Format == "" {
		return manifest.FormatFromName(o.Output), nil
	}
	return manifest.ParseFormat(o.Format)
}

// DoSum prints one md5sum line per readable file in argument order. Files
// that fail are logged and reported together after the rest are printed.
func DoSum(ctx context.Context, cfg config.Config, digests *checksum.Cache, opts Options, out io.Writer) error {
	lgr := zap.S()

	format, err := opts.format()
	if err != nil {
		return err
	}

	batch := checksum.Batch{Cache: digests, Workers: cfg.Workers}
	results, err := batch.Run(ctx, opts.Files)
	var fileErrors checksum.FileErrors
	if err != nil && !errors.As(err, &fileErrors) {
		return err
	}

	m := manifest.New()
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		if _, err := fmt.Fprintln(out, manifest.Line(result.Name, result.Digest)); err != nil {
			return err
		}
		m.Add(result.Name, result.Digest)
	}

	if opts.Output != "" {
		if err := m.Save(opts.Output, format); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		lgr.Infow("manifest_written", "path", opts.Output, "format", format, "files", len(m.Files))
	}

	if fileErrors != nil {
		lgr.Errorw("sum_file_errors", "files", fileErrors)
		return fileErrors
	}
	return nil
}

func DoText(s string, out io.Writer) error {
	_, err := fmt.Fprintln(out, md5.Sum([]byte(s)))
	return err
}
