package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshotContentType marks the uploaded object as newline-delimited JSON.
const snapshotContentType = "application/x-ndjson"

// S3Destination writes visit log snapshots to an S3-compatible bucket.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

var _ Destination = (*S3Destination)(nil)

// NewS3Destination creates an S3 destination for the given bucket and object
// key. If endpoint is non-empty, path-style addressing is enabled (for MinIO
// and similar).
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	if key == "" {
		key = "gatelog/snapshot.jsonl"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(cfg, s3opts...)
	return &S3Destination{
		client: client,
		bucket: bucket,
		key:    key,
	}, nil
}

// String identifies the destination in scheduler logs.
func (d *S3Destination) String() string {
	return fmt.Sprintf("s3://%s/%s", d.bucket, d.key)
}

// Write uploads the snapshot to S3 as the configured object key. Each run
// overwrites the previous snapshot; the object always holds the latest full
// export.
func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	contentType := snapshotContentType
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s: %w", d, err)
	}
	return nil
}
