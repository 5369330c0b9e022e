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
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// NewClient builds an S3 client from the default credential chain.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		default:
			zap.S().Infow("other_aws_error", "code", apiErr.ErrorCode(), "message", apiErr.ErrorMessage())
		}
	}
	return false
}

type objectHead struct {
	etag          string
	contentLength int64
	partsCount    int32
}

func headObject(ctx context.Context, client s3.HeadObjectAPIClient, bucket, key string, partNumber int32) (objectHead, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if partNumber > 0 {
		input.PartNumber = aws.Int32(partNumber)
	}
	output, err := client.HeadObject(ctx, input)
	if err != nil {
		return objectHead{}, err
	}
	return objectHead{
		etag:          aws.ToString(output.ETag),
		contentLength: aws.ToInt64(output.ContentLength),
		partsCount:    aws.ToInt32(output.PartsCount),
	}, nil
}
