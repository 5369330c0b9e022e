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

// Package bucket checks local files against the ETags of objects in S3.
package bucket

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/retailnext/md5hasher/checksum"
	"github.com/retailnext/md5hasher/metrics"
	"github.com/retailnext/md5hasher/paranoid"
	"github.com/retailnext/md5hasher/parts"
	"go.uber.org/zap"
)

const (
	ResultOK      = "OK"
	ResultFailed  = "FAILED"
	ResultMissing = "MISSING"
)

type Outcome struct {
	Name   string
	Key    string
	Result string
	Local  string
	Remote string
	Err    error
}

type Verifier struct {
	Client s3.HeadObjectAPIClient
	Bucket string
	Prefix string
	Cache  *checksum.Cache

	// PartSize is used for multipart objects when DetectPartSize is off or
	// the store does not report the first part's length.
	PartSize       uint64
	DetectPartSize bool
}

func (v *Verifier) key(name string) string {
	return v.Prefix + filepath.Base(name)
}

// Verify compares one local file with the object at Prefix+basename.
func (v *Verifier) Verify(ctx context.Context, name string) Outcome {
	outcome := Outcome{Name: name, Key: v.key(name)}
	outcome.Result, outcome.Err = v.verify(ctx, &outcome)
	if outcome.Err != nil {
		outcome.Result = ResultFailed
	}
	metrics.Verify.Result("s3", outcome.Result).Inc()
	return outcome
}

func (v *Verifier) verify(ctx context.Context, outcome *Outcome) (string, error) {
	lgr := zap.S()

	file, err := paranoid.NewFile(outcome.Name)
	if err != nil {
		return "", err
	}

	head, err := headObject(ctx, v.Client, v.Bucket, outcome.Key, 0)
	if IsNoSuchKey(err) {
		return ResultMissing, nil
	} else if err != nil {
		return "", fmt.Errorf("head %s: %w", outcome.Key, err)
	}
	outcome.Remote = strings.ToLower(strings.Trim(head.etag, `"`))

	if head.contentLength != file.Len() {
		lgr.Infow("object_length_mismatch", "path", outcome.Name, "key", outcome.Key, "local", file.Len(), "remote", head.contentLength)
		return ResultFailed, nil
	}

	dash := strings.IndexByte(outcome.Remote, '-')
	if dash < 0 {
		digest, err := v.Cache.Get(ctx, file)
		if err != nil {
			return "", err
		}
		outcome.Local = digest.String()
	} else {
		if _, err := strconv.Atoi(outcome.Remote[dash+1:]); err != nil {
			return "", fmt.Errorf("unrecognized etag %q", outcome.Remote)
		}
		partSize, err := v.partSize(ctx, outcome.Key)
		if err != nil {
			return "", err
		}
		_, pd, err := parts.Of(ctx, file, partSize)
		if err != nil {
			return "", err
		}
		outcome.Local = pd.MultipartETag()
	}

	if outcome.Local != outcome.Remote {
		lgr.Infow("etag_mismatch", "path", outcome.Name, "key", outcome.Key, "local", outcome.Local, "remote", outcome.Remote)
		return ResultFailed, nil
	}
	return ResultOK, nil
}

func (v *Verifier) partSize(ctx context.Context, key string) (uint64, error) {
	if v.DetectPartSize {
		head, err := headObject(ctx, v.Client, v.Bucket, key, 1)
		if err != nil {
			return 0, fmt.Errorf("head %s part 1: %w", key, err)
		}
		if head.partsCount > 0 && head.contentLength > 0 {
			return uint64(head.contentLength), nil
		}
	}
	if v.PartSize == 0 {
		return 0, fmt.Errorf("no part size for multipart object %s", key)
	}
	return v.PartSize, nil
}

// VerifyAll runs Verify on names with at most workers concurrent checks and
// returns the outcomes in argument order.
func (v *Verifier) VerifyAll(ctx context.Context, names []string, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = 1
	}
	limiter := make(chan struct{}, workers)
	outcomes := make([]Outcome, len(names))

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
				outcomes[i] = v.Verify(ctx, name)
			}(i, name)
		}
	}
	wg.Wait()
	return outcomes, ctx.Err()
}

// MismatchError reports how many files did not match their objects.
type MismatchError struct {
	Failed  int
	Missing int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d objects failed, %d objects missing", e.Failed, e.Missing)
}

// Report prints "name: RESULT" lines and summarizes the failures.
func Report(outcomes []Outcome, out io.Writer) error {
	lgr := zap.S()
	var mismatch MismatchError
	for _, outcome := range outcomes {
		switch outcome.Result {
		case ResultFailed:
			mismatch.Failed++
		case ResultMissing:
			mismatch.Missing++
		}
		if outcome.Err != nil {
			lgr.Errorw("verify_object_error", "path", outcome.Name, "key", outcome.Key, "err", outcome.Err)
		}
		if _, err := fmt.Fprintf(out, "%s: %s\n", outcome.Name, outcome.Result); err != nil {
			return err
		}
	}
	if mismatch.Failed > 0 || mismatch.Missing > 0 {
		return &mismatch
	}
	return nil
}
