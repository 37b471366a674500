package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// S3Config carries the connection options for the S3-compatible backend.
// Endpoint and UsePathStyle support MinIO and other compatible services.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
}

// S3Gateway implements Gateway against any S3-compatible object store.
type S3Gateway struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	policies      map[string]BucketPolicy
	region        string
	logger        zerolog.Logger
}

// NewS3Gateway connects to the object store and registers the declared
// bucket policies. It does not touch the buckets; call EnsureBuckets for
// that.
func NewS3Gateway(ctx context.Context, cfg S3Config, buckets []BucketPolicy) (*S3Gateway, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	policies := make(map[string]BucketPolicy, len(buckets))
	for _, policy := range buckets {
		policies[policy.Name] = policy
	}

	return &S3Gateway{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		policies:      policies,
		region:        cfg.Region,
		logger:        log.With().Str("component", "s3Gateway").Logger(),
	}, nil
}

func (g *S3Gateway) EnsureBuckets(ctx context.Context) {
	for name := range g.policies {
		if err := g.createBucketIfNotExists(ctx, name); err != nil {
			g.logger.Error().Err(err).Str("bucket", name).Msg("Failed to provision bucket")
			continue
		}
		g.logger.Info().Str("bucket", name).Msg("Bucket ready")
	}
}

func (g *S3Gateway) createBucketIfNotExists(ctx context.Context, bucket string) error {
	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "NoSuchBucket") &&
		!strings.Contains(err.Error(), "NotFound") {
		return fmt.Errorf("checking bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if g.region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(g.region),
		}
	}

	if _, err := g.client.CreateBucket(ctx, createInput); err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("creating bucket: %w", err)
	}
	return nil
}

func (g *S3Gateway) Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string, size int64) error {
	policy, ok := g.policies[bucket]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketUnknown, bucket)
	}
	if err := policy.Allows(contentType, size); err != nil {
		return err
	}

	uploader := manager.NewUploader(g.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("uploading %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (g *S3Gateway) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	result, err := g.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("signing URL for %s/%s: %w", bucket, key, err)
	}
	return result.URL, nil
}

func (g *S3Gateway) Remove(ctx context.Context, bucket, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", bucket, key, err)
	}
	return nil
}
