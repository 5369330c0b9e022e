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

package checksum

import (
	"context"
	"sync"

	"github.com/retailnext/md5hasher/md5"
	"github.com/retailnext/md5hasher/metrics"
	"github.com/retailnext/md5hasher/paranoid"
	"go.uber.org/zap"
)

const defaultWorkers = 4

type Result struct {
	Name   string
	Digest md5.Digest
	Err    error
}

// Batch hashes many files, at most Workers at a time.
type Batch struct {
	Cache   *Cache
	Workers int
}

// Run returns one Result per name, in the order given. The error is a
// FileErrors when some files failed, or the context error if it was
// canceled.
func (b *Batch) Run(ctx context.Context, names []string) ([]Result, error) {
	workers := b.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	limiter := make(chan struct{}, workers)
	results := make([]Result, len(names))

	var wg sync.WaitGroup
	doneCh := ctx.Done()
DISPATCH:
	for i, name := range names {
		select {
		case <-doneCh:
			break DISPATCH
		case limiter <- struct{}{}:
			wg.Add(1)
			go func(i int, name string) {
				defer func() {
					<-limiter
					wg.Done()
				}()
				results[i] = b.hashOne(ctx, name)
			}(i, name)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	var fileErrors FileErrors
	for _, result := range results {
		if result.Err != nil {
			if fileErrors == nil {
				fileErrors = make(FileErrors)
			}
			fileErrors[result.Name] = result.Err
		}
	}
	if fileErrors != nil {
		return results, fileErrors
	}
	return results, nil
}

func (b *Batch) hashOne(ctx context.Context, name string) Result {
	result := Result{Name: name}
	file, err := paranoid.NewFile(name)
	if err == nil {
		result.Digest, err = b.Cache.Get(ctx, file)
	}
	if err != nil {
		metrics.Checksum.Errors.Inc()
		zap.S().Errorw("hash_file_error", "path", name, "err", err)
		result.Err = err
	}
	return result
}
