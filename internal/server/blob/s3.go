package blob

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/keepsake/internal/common"
	sc "github.com/dmitrijs2005/keepsake/internal/server/config"
	"github.com/dmitrijs2005/keepsake/internal/server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for testing the AWS SDK calls without a live endpoint.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
)

// S3Gateway stores blobs in an S3-compatible bucket (AWS S3 or minio).
type S3Gateway struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Gateway builds a gateway from the server configuration, using static
// credentials and an optional custom base endpoint (minio-compatible).
func NewS3Gateway(ctx context.Context, cfg *sc.Config) (*S3Gateway, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Gateway{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// StorageKey builds a unique object key under the kind's folder, partitioned
// by upload date.
func StorageKey(prefix string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%d/%d/%v", prefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Store uploads the blob and returns its public URL plus the object key used
// as the deletion handle.
func (g *S3Gateway) Store(ctx context.Context, r io.Reader, kind Kind, contentType string) (models.BlobRef, error) {
	prefix, err := kind.Prefix()
	if err != nil {
		return models.BlobRef{}, err
	}

	key := StorageKey(prefix)

	_, err = putObject(g.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return models.BlobRef{}, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	return models.BlobRef{
		URL: g.publicBaseURL + "/" + key,
		Key: key,
	}, nil
}

// Remove deletes the object with the given key. S3 deletes are idempotent,
// so removing an already-removed key succeeds.
func (g *S3Gateway) Remove(ctx context.Context, key string, kind Kind) error {
	if _, err := kind.Prefix(); err != nil {
		return err
	}

	_, err := deleteObject(g.client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
