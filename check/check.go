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

// Package check verifies local files against a manifest.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/retailnext/md5hasher/checksum"
	"github.com/retailnext/md5hasher/config"
	"github.com/retailnext/md5hasher/manifest"
	"github.com/retailnext/md5hasher/metrics"
	"go.uber.org/zap"
)

const (
	ResultOK      = "OK"
	ResultFailed  = "FAILED"
	ResultMissing = "MISSING"
)

type Options struct {
	Manifest string
	Root     string
	Quiet    bool
}

// MismatchError reports how many manifest entries did not verify.
type MismatchError struct {
	Failed  int
	Missing int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d files failed, %d files missing", e.Failed, e.Missing)
}

// DoCheck recomputes every file listed in the manifest and prints one
// "name: RESULT" line per entry in name order.
func DoCheck(ctx context.Context, cfg config.Config, digests *checksum.Cache, opts Options, out io.Writer) error {
	lgr := zap.S()

	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return err
	}
	root := opts.Root
	if root == "" {
		root = filepath.Dir(opts.Manifest)
	}

	names := m.Names()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = resolve(root, name)
	}

	batch := checksum.Batch{Cache: digests, Workers: cfg.Workers}
	results, err := batch.Run(ctx, paths)
	var fileErrors checksum.FileErrors
	if err != nil && !errors.As(err, &fileErrors) {
		return err
	}

	var mismatch MismatchError
	for i, name := range names {
		result := ResultOK
		switch {
		case errors.Is(results[i].Err, fs.ErrNotExist):
			result = ResultMissing
			mismatch.Missing++
		case results[i].Err != nil:
			result = ResultFailed
			mismatch.Failed++
		case results[i].Digest != m.Files[name]:
			result = ResultFailed
			mismatch.Failed++
			lgr.Infow("digest_mismatch", "path", paths[i], "expected", m.Files[name], "actual", results[i].Digest)
		}
		metrics.Verify.Result("local", result).Inc()

		if result == ResultOK && opts.Quiet {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", name, result); err != nil {
			return err
		}
	}

	if mismatch.Failed > 0 || mismatch.Missing > 0 {
		return &mismatch
	}
	lgr.Infow("check_complete", "manifest", opts.Manifest, "files", len(names))
	return nil
}

func resolve(root, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}
