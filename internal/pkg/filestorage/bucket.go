package filestorage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// BucketConfig holds configuration for the S3-compatible bucket client.
type BucketConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
}

// BucketClient mirrors uploaded files to an S3-compatible bucket.
type BucketClient struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
}

var _ BucketStorage = (*BucketClient)(nil)

// NewBucketClient creates a new bucket client.
func NewBucketClient(cfg BucketConfig) (*BucketClient, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket session: %w", err)
	}

	return &BucketClient{
		s3Client: s3.New(sess),
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
	}, nil
}

// Upload stores data under key and returns the object URL.
func (c *BucketClient) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", c.bucket, c.endpoint, key), nil
}
