// Package share publishes styled images to S3 and hands out presigned links.
package share

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Veraticus/easy-style/internal/common"
)

// DefaultLinkTTL is how long a presigned share link stays valid.
const DefaultLinkTTL = 7 * 24 * time.Hour

// Link is a time-limited public URL for a shared object.
type Link struct {
	ExpiresAt time.Time `json:"expiresAt"`
	URL       string    `json:"url"`
	Key       string    `json:"key"`
}

// Uploader stores an object and returns a link to it.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (Link, error)
}

// Config configures the S3 uploader.
type Config struct {
	Logger   *slog.Logger
	Now      func() time.Time
	Bucket   string
	Region   string
	Endpoint string
	LinkTTL  time.Duration
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Uploader writes objects to a single bucket.
type S3Uploader struct {
	client    objectPutter
	presigner objectPresigner
	logger    *slog.Logger
	now       func() time.Time
	bucket    string
	ttl       time.Duration
}

// NewS3Uploader builds an uploader from the default AWS credential chain.
func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: share bucket", common.ErrMissingConfig)
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Uploader(client, s3.NewPresignClient(client), cfg), nil
}

func newS3Uploader(client objectPutter, presigner objectPresigner, cfg Config) *S3Uploader {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.LinkTTL
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	return &S3Uploader{
		client:    client,
		presigner: presigner,
		logger:    logger,
		now:       now,
		bucket:    cfg.Bucket,
		ttl:       ttl,
	}
}

// Upload puts data under key and presigns a GET for it.
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) (Link, error) {
	if len(data) == 0 {
		return Link{}, fmt.Errorf("refusing to upload empty object %s", key)
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Link{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	req, err := u.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(u.ttl))
	if err != nil {
		return Link{}, fmt.Errorf("failed to presign %s: %w", key, err)
	}

	u.logger.Info("shared object uploaded", "bucket", u.bucket, "key", key, "bytes", len(data))
	return Link{URL: req.URL, Key: key, ExpiresAt: u.now().Add(u.ttl)}, nil
}
