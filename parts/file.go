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
	"context"

	"github.com/retailnext/md5hasher/checksum"
	"github.com/retailnext/md5hasher/md5"
	"github.com/retailnext/md5hasher/paranoid"
)

// Of reads file once and returns both its whole digest and its part
// digests.
func Of(ctx context.Context, file paranoid.File, partSize uint64) (md5.Digest, PartDigests, error) {
	var maker Maker
	maker.Reset(partSize)
	whole, err := checksum.File(ctx, file, maker.OnWrite)
	if err != nil {
		return md5.Digest{}, PartDigests{}, err
	}
	return whole, maker.Finish(), nil
}
