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
	"errors"

	"github.com/retailnext/md5hasher/cache"
	"github.com/retailnext/md5hasher/md5"
	"github.com/retailnext/md5hasher/metrics"
	"github.com/retailnext/md5hasher/paranoid"
	"go.uber.org/zap"
)

const cacheName = "md5"

// Cache remembers file digests across runs. A Cache without a store, and a
// nil *Cache, hash every time.
type Cache struct {
	c *cache.Cache
}

func NewCache(store *cache.Store) *Cache {
	if store == nil {
		return &Cache{}
	}
	return &Cache{
		c: store.Cache(cacheName),
	}
}

func (c *Cache) Get(ctx context.Context, file paranoid.File) (md5.Digest, error) {
	if c == nil || c.c == nil {
		return File(ctx, file, nil)
	}

	key := file.CacheKey()
	var result md5.Digest
	getErr := c.c.Get(key, func(wrapped []byte) error {
		unwrapped := file.UnwrapCacheEntry(key, wrapped)
		if unwrapped == nil {
			return cache.DoNotPromote
		}
		if err := result.UnmarshalBinary(unwrapped); err != nil {
			return cache.DoNotPromote
		}
		return nil
	})

	switch {
	case getErr == nil:
		metrics.Checksum.CachedFiles.Inc()
		metrics.Checksum.CachedBytes.Add(float64(file.Len()))
		return result, nil
	case errors.Is(getErr, cache.NotFound), errors.Is(getErr, cache.DoNotPromote):
	default:
		return md5.Digest{}, getErr
	}

	result, err := File(ctx, file, nil)
	if err != nil {
		return md5.Digest{}, err
	}

	marshalled, err := result.MarshalBinary()
	if err != nil {
		panic(err)
	}
	if putErr := c.c.Put(key, file.WrapCacheEntry(marshalled)); putErr != nil {
		zap.S().Warnw("digest_cache_put_error", "path", file.Name(), "err", putErr)
	}
	return result, nil
}

// OpenSharedCache returns a Cache backed by the shared store at path, or one
// that always computes when path is empty.
func OpenSharedCache(path string) (*Cache, error) {
	if path == "" {
		return NewCache(nil), nil
	}
	store, err := cache.OpenShared(path)
	if err != nil {
		return nil, err
	}
	return NewCache(store), nil
}
