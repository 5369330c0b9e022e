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

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/alecthomas/kingpin/v2"
	"github.com/retailnext/md5hasher/bucket"
	"github.com/retailnext/md5hasher/cache"
	"github.com/retailnext/md5hasher/check"
	"github.com/retailnext/md5hasher/checksum"
	"github.com/retailnext/md5hasher/config"
	"github.com/retailnext/md5hasher/metrics"
	"github.com/retailnext/md5hasher/sum"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func setupLogger() func() {
	var logger *zap.Logger
	var err error
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)

	return func() {
		_ = logger.Sync()
	}
}

func setupInterruptContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		select {
		case sig := <-c:
			zap.S().Infow("shutting_down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	onExit := func() {
		signal.Stop(c)
		cancel()
	}
	return ctx, onExit
}

func setupProfile() func() {
	if pprofFile == nil || *pprofFile == "" {
		return func() {
		}
	}
	f, err := os.Create(*pprofFile)
	if err != nil {
		panic(err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		panic(err)
	}
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			panic(err)
		}
	}
}

var (
	pprofFile = kingpin.Flag("pprof.cpu.file", "Enable cpu profiling to this file.").String()

	metricsListenAddress = kingpin.Flag("web.listen-address", "Address on which to expose metrics.").String()
	metricsPath          = kingpin.Flag("web.telemetry-path", "Path under which to expose metrics.").Default("/metrics").String()

	configFile = kingpin.Flag("config", "YAML configuration file.").ExistingFile()
	cacheFile  = kingpin.Flag("cache-file", "Location of local digest cache file.").String()
	workers    = kingpin.Flag("workers", "Number of files to hash concurrently.").Int()
	s3Region   = kingpin.Flag("s3-region", "S3 bucket region.").String()
)

func parseOptions() (string, config.Config) {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate)
	cmd := kingpin.Parse()

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		kingpin.Fatalf("%s", err)
	}
	cfg.Apply(config.Overrides{
		CacheFile: *cacheFile,
		Workers:   *workers,
		PartSize:  bucket.PartSizeFlag(),
		S3Region:  *s3Region,
	})
	if err := cfg.Validate(); err != nil {
		kingpin.Fatalf("%s", err)
	}
	return cmd, cfg
}

func main() {
	cmd, cfg := parseOptions()

	sync := setupLogger()
	defer sync()
	lgr := zap.S()

	ctx, onExit := setupInterruptContext()
	defer onExit()

	stopProfile := setupProfile()
	defer stopProfile()

	metrics.SetupPrometheus(metricsListenAddress, metricsPath)

	digests, err := checksum.OpenSharedCache(cfg.CacheFile)
	if err != nil {
		lgr.Fatalw("cache_open_error", "path", cfg.CacheFile, "err", err)
	}
	defer func() {
		if err := cache.Shared.Close(); err != nil {
			lgr.Errorw("cache_close_err", "err", err)
		}
	}()

	switch cmd {
	case sum.Cmd.FullCommand():
		err = sum.DoSum(ctx, cfg, digests, sum.FlagOptions(), os.Stdout)
	case sum.TextCmd.FullCommand():
		err = sum.DoText(sum.TextArg(), os.Stdout)
	case check.Cmd.FullCommand():
		err = check.DoCheck(ctx, cfg, digests, check.FlagOptions(), os.Stdout)
	case bucket.VerifyCmd.FullCommand():
		err = bucket.DoVerify(ctx, cfg, digests, os.Stdout)
	default:
		lgr.Fatalw("unhandled_command", "cmd", cmd)
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		lgr.Fatalw("command_error", "cmd", cmd, "err", err)
	}
}
