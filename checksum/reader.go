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

// Package checksum feeds files and streams through the MD5 engine.
package checksum

import (
	"context"
	"io"
	"time"

	"github.com/retailnext/md5hasher/md5"
	"github.com/retailnext/md5hasher/metrics"
	"github.com/retailnext/md5hasher/paranoid"
)

const checkContextBytesInterval = 1024 * 1024 * 8
const bufferSize = 32 * 1024

// OnWrite sees every chunk that is hashed. It must not retain buf.
type OnWrite func(buf []byte)

// Reader hashes r until EOF and returns the digest and the number of bytes
// read. The context is checked every few megabytes.
func Reader(ctx context.Context, r io.Reader, onWrite OnWrite) (md5.Digest, int64, error) {
	engine := md5.New()

	buf := make([]byte, bufferSize)
	var doneCh <-chan struct{}
	var lastCheckedDoneCh int64
	var size int64
	for {
		bytesRead, err := r.Read(buf)
		if err != nil && err != io.EOF {
			return md5.Digest{}, size, err
		}
		if bytesRead > 0 {
			if onWrite != nil {
				onWrite(buf[:bytesRead])
			}
			if updateErr := engine.Update(buf[:bytesRead]); updateErr != nil {
				panic(updateErr)
			}
		}
		size += int64(bytesRead)
		if err == io.EOF {
			break
		}

		if size-lastCheckedDoneCh > checkContextBytesInterval {
			if doneCh == nil {
				doneCh = ctx.Done()
			}

			select {
			case <-doneCh:
				return md5.Digest{}, size, ctx.Err()
			default:
				lastCheckedDoneCh = size
			}
		}
	}

	if err := engine.Finalize(); err != nil {
		panic(err)
	}
	digest, err := engine.Digest()
	if err != nil {
		panic(err)
	}
	metrics.Checksum.HashedBytes.Add(float64(size))
	return digest, size, nil
}

// File hashes a file and fails if it changed while being read.
func File(ctx context.Context, file paranoid.File, onWrite OnWrite) (md5.Digest, error) {
	t0 := time.Now()
	osFile, err := file.Open()
	if err != nil {
		return md5.Digest{}, err
	}
	defer func() {
		if closeErr := osFile.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()

	digest, _, err := Reader(ctx, osFile, onWrite)
	if err != nil {
		return md5.Digest{}, err
	}
	if err := file.CheckFile(osFile); err != nil {
		return md5.Digest{}, err
	}
	metrics.Checksum.HashedFiles.Inc()
	metrics.Checksum.HashedSeconds.Add(time.Since(t0).Seconds())
	return digest, nil
}
