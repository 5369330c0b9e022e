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

package parts

import (
	"fmt"

	"github.com/retailnext/md5hasher/md5"
)

type PartDigests struct {
	partSize    uint64
	parts       []md5.Digest
	totalLength uint64
}

func (pd *PartDigests) TotalLength() int64 {
	return int64(pd.totalLength)
}

func (pd *PartDigests) PartSize() int64 {
	return int64(pd.partSize)
}

func (pd *PartDigests) Parts() int64 {
	return int64(len(pd.parts))
}

func (pd *PartDigests) checkPartNumber(partNumber int64) {
	if partNumber < 1 || partNumber > pd.Parts() {
		panic(fmt.Sprintf("invalid partNumber %d of %d", partNumber, pd.Parts()))
	}
}

func (pd *PartDigests) PartOffset(partNumber int64) int64 {
	pd.checkPartNumber(partNumber)
	return int64(pd.partSize) * (partNumber - 1)
}

func (pd *PartDigests) PartLength(partNumber int64) int64 {
	pd.checkPartNumber(partNumber)
	if partNumber == pd.Parts() {
		return pd.TotalLength() - pd.PartOffset(partNumber)
	}
	return int64(pd.partSize)
}

func (pd *PartDigests) PartDigest(partNumber int64) md5.Digest {
	pd.checkPartNumber(partNumber)
	return pd.parts[partNumber-1]
}

// PartContentMD5 is the Content-MD5 header value for a part.
func (pd *PartDigests) PartContentMD5(partNumber int64) string {
	return pd.PartDigest(partNumber).Base64()
}

// MultipartETag is the ETag S3 assigns to an object assembled from these
// parts: the MD5 of the concatenated part digests, a dash, and the part
// count.
func (pd *PartDigests) MultipartETag() string {
	engine := md5.New()
	for _, part := range pd.parts {
		if err := engine.Update(part[:]); err != nil {
			panic(err)
		}
	}
	if err := engine.Finalize(); err != nil {
		panic(err)
	}
	hexDigest, err := engine.HexString()
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s-%d", hexDigest, len(pd.parts))
}
