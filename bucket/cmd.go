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

package bucket

import (
	"context"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/retailnext/md5hasher/checksum"
	"github.com/retailnext/md5hasher/config"
)

var (
	Cmd = kingpin.Command("s3", "Compare local files with S3 objects")

	VerifyCmd               = Cmd.Command("verify", "Check that each file matches the ETag of prefix+basename")
	verifyCmdBucket         = VerifyCmd.Flag("bucket", "S3 bucket name.").Required().String()
	verifyCmdPrefix         = VerifyCmd.Flag("prefix", "Key prefix prepended to each file's base name.").String()
	verifyCmdPartSize       = VerifyCmd.Flag("part-size", "Multipart upload part size in bytes.").Uint64()
	verifyCmdDetectPartSize = VerifyCmd.Flag("detect-part-size", "Read the part size of multipart objects from their first part.").Default("true").Bool()
	verifyCmdFiles          = VerifyCmd.Arg("files", "Local files to verify").Required().ExistingFiles()
)

// PartSizeFlag returns the --part-size override, zero when unset.
func PartSizeFlag() uint64 {
	return *verifyCmdPartSize
}

func DoVerify(ctx context.Context, cfg config.Config, digests *checksum.Cache, out io.Writer) error {
	client, err := NewClient(ctx, cfg.S3Region)
	if err != nil {
		return err
	}
	v := Verifier{
		Client:         client,
		Bucket:         *verifyCmdBucket,
		Prefix:         *verifyCmdPrefix,
		Cache:          digests,
		PartSize:       cfg.PartSize,
		DetectPartSize: *verifyCmdDetectPartSize,
	}
	outcomes, err := v.VerifyAll(ctx, *verifyCmdFiles, cfg.Workers)
	if err != nil {
		return err
	}
	return Report(outcomes, out)
}
