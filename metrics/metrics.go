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

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "md5hasher"

type cache struct {
	getHitsVec       *prometheus.CounterVec
	getMissesVec     *prometheus.CounterVec
	getPromotionsVec *prometheus.CounterVec
	putsVec          *prometheus.CounterVec
}

type checksum struct {
	HashedFiles   prometheus.Counter
	HashedBytes   prometheus.Counter
	HashedSeconds prometheus.Counter
	CachedFiles   prometheus.Counter
	CachedBytes   prometheus.Counter
	Errors        prometheus.Counter
}

type verify struct {
	resultsVec *prometheus.CounterVec
}

// Result counts one verification outcome. Kind is "manifest" or "s3".
func (v verify) Result(kind, result string) prometheus.Counter {
	return v.resultsVec.WithLabelValues(kind, result)
}

type CacheCounters struct {
	Hits       prometheus.Counter
	Misses     prometheus.Counter
	Promotions prometheus.Counter
	Puts       prometheus.Counter
}

func NewCacheCounters(name string) *CacheCounters {
	return &CacheCounters{
		Hits:       Cache.getHitsVec.WithLabelValues(name),
		Misses:     Cache.getMissesVec.WithLabelValues(name),
		Promotions: Cache.getPromotionsVec.WithLabelValues(name),
		Puts:       Cache.putsVec.WithLabelValues(name),
	}
}

var (
	Cache = cache{
		getHitsVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "get_hits_total",
			Help:      "Number of cache gets that were hits.",
		}, []string{"cache"}),
		getMissesVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "get_misses_total",
			Help:      "Number of cache gets that were misses.",
		}, []string{"cache"}),
		getPromotionsVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "promotions_total",
			Help:      "Number of cache gets that promoted a value from the previous generation.",
		}, []string{"cache"}),
		putsVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "puts_total",
			Help:      "Number of cache put requests.",
		}, []string{"cache"}),
	}

	Checksum = checksum{
		HashedFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "hashed_files_total",
			Help:      "Number of files read and hashed.",
		}),
		HashedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "hashed_bytes_total",
			Help:      "Total bytes fed to the MD5 engine.",
		}),
		HashedSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "hashed_seconds_total",
			Help:      "Total time spent reading and hashing files.",
		}),
		CachedFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "cached_files_total",
			Help:      "Number of file digests served from the digest cache.",
		}),
		CachedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "cached_bytes_total",
			Help:      "Total file size of digests served from the digest cache.",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checksum",
			Name:      "errors_total",
			Help:      "Number of files that could not be hashed.",
		}),
	}

	Verify = verify{
		resultsVec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "results_total",
			Help:      "Number of verified files by outcome.",
		}, []string{"kind", "result"}),
	}
)

func SetupPrometheus(metricsListenAddress, metricsPath *string) {
	if metricsListenAddress == nil || *metricsListenAddress == "" {
		return
	}
	go func() {
		http.Handle(*metricsPath, promhttp.Handler())
		err := http.ListenAndServe(*metricsListenAddress, nil)
		zap.S().Fatalw("metrics_listen_error", "err", err)
	}()
}

func init() {
	prometheus.MustRegister(Cache.getHitsVec)
	prometheus.MustRegister(Cache.getMissesVec)
	prometheus.MustRegister(Cache.getPromotionsVec)
	prometheus.MustRegister(Cache.putsVec)

	prometheus.MustRegister(Checksum.HashedFiles)
	prometheus.MustRegister(Checksum.HashedBytes)
	prometheus.MustRegister(Checksum.HashedSeconds)
	prometheus.MustRegister(Checksum.CachedFiles)
	prometheus.MustRegister(Checksum.CachedBytes)
	prometheus.MustRegister(Checksum.Errors)

	prometheus.MustRegister(Verify.resultsVec)
}
