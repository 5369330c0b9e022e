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

// Package cache is a small persistent key/value store on bbolt.
//
// Entries live in top level buckets named after a time generation. Reads
// look at the current and the previous generation and copy hits from the
// previous one forward, so entries that are still used survive while
// everything else ages out two generations after it was last read.
package cache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/retailnext/md5hasher/metrics"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	DoNotPromote = errors.New("do not promote")
	NotFound     = errors.New("not found")
)

var (
	Shared    *Store
	sharedErr error
	once      sync.Once
)

const generationSeconds = 1 << 20 // ~12 days

type Store struct {
	db     *bbolt.DB
	period int64
	now    func() time.Time
}

func Open(path string, mode os.FileMode) (*Store, error) {
	db, err := bbolt.Open(path, mode, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	s := &Store{
		db:     db,
		period: generationSeconds,
		now:    time.Now,
	}
	return s, nil
}

// OpenShared opens Shared on first use. Later calls return the same result
// regardless of path.
func OpenShared(path string) (*Store, error) {
	once.Do(func() {
		Shared, sharedErr = Open(path, 0o644)
		if sharedErr == nil {
			zap.S().Debugw("cache_opened", "path", path)
		}
	})
	return Shared, sharedErr
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

type Cache struct {
	store    *Store
	name     []byte
	counters *metrics.CacheCounters
}

func (s *Store) Cache(name string) *Cache {
	return &Cache{
		store:    s,
		name:     []byte(name),
		counters: metrics.NewCacheCounters(name),
	}
}

// WithValueFunc sees a value only for the duration of the call. Returning
// DoNotPromote rejects the value without failing the read.
type WithValueFunc func(value []byte) error

func (c *Cache) Get(key []byte, f WithValueFunc) error {
	current, previous := c.store.generations()
	var promote []byte
	err := c.store.db.View(func(tx *bbolt.Tx) error {
		if value := c.lookup(tx, current, key); value != nil {
			return f(value)
		}
		if value := c.lookup(tx, previous, key); value != nil {
			if err := f(value); err != nil {
				return err
			}
			promote = bytes.Clone(value)
			return nil
		}
		return NotFound
	})
	if err != nil {
		c.counters.Misses.Inc()
		return err
	}
	c.counters.Hits.Inc()
	if promote == nil {
		return nil
	}
	c.counters.Promotions.Inc()
	return c.put(key, promote)
}

func (c *Cache) lookup(tx *bbolt.Tx, generation, key []byte) []byte {
	top := tx.Bucket(generation)
	if top == nil {
		return nil
	}
	bucket := top.Bucket(c.name)
	if bucket == nil {
		return nil
	}
	return bucket.Get(key)
}

func (c *Cache) Put(key, value []byte) error {
	c.counters.Puts.Inc()
	return c.put(key, value)
}

func (c *Cache) put(key, value []byte) error {
	current, previous := c.store.generations()
	return c.store.db.Update(func(tx *bbolt.Tx) error {
		top := tx.Bucket(current)
		if top == nil {
			if err := purgeGenerations(tx, current, previous); err != nil {
				return err
			}
			var err error
			if top, err = tx.CreateBucket(current); err != nil {
				return err
			}
			zap.S().Debugw("cache_generation_created", "generation", binary.BigEndian.Uint64(current))
		}
		bucket, err := top.CreateBucketIfNotExists(c.name)
		if err != nil {
			return err
		}
		return bucket.Put(key, value)
	})
}

func purgeGenerations(tx *bbolt.Tx, keep ...[]byte) error {
	var stale [][]byte
	err := tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
		for _, k := range keep {
			if bytes.Equal(name, k) {
				return nil
			}
		}
		stale = append(stale, bytes.Clone(name))
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range stale {
		if err := tx.DeleteBucket(name); err != nil {
			return err
		}
		zap.S().Debugw("cache_generation_removed", "generation", name)
	}
	return nil
}

func (s *Store) generations() ([]byte, []byte) {
	now := s.now().Unix()
	currentTs := (now / s.period) * s.period
	previousTs := currentTs - s.period
	return binary.BigEndian.AppendUint64(nil, uint64(currentTs)),
		binary.BigEndian.AppendUint64(nil, uint64(previousTs))
}
