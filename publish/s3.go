// Package publish uploads written graph files to S3-compatible storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/c360studio/ppodgraph/export"
)

// LatestPrefix holds a copy of the most recent upload.
const LatestPrefix = "latest"

// Config configures the S3 publisher.
type Config struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Validate checks that the publisher can be built.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("publish endpoint is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("publish bucket is required")
	}
	if strings.TrimSpace(c.AccessKey) == "" || strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("publish access key and secret key are required")
	}
	return nil
}

// Error reports a failed upload.
type Error struct {
	Bucket string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("publish to bucket %s: %v", e.Bucket, e.Err)
	}
	return fmt.Sprintf("publish %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err is a publish failure.
func IsError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// objectStore is the part of the minio client the publisher uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// S3Publisher uploads output files under run-scoped keys.
type S3Publisher struct {
	store  objectStore
	bucket string
	prefix string
	region string
	logger *slog.Logger

	initOnce sync.Once
	initErr  error
}

// NewS3Publisher creates a publisher from cfg.
func NewS3Publisher(cfg Config, logger *slog.Logger) (*S3Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return newPublisher(client, cfg, region, logger), nil
}

func newPublisher(store objectStore, cfg Config, region string, logger *slog.Logger) *S3Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &S3Publisher{
		store:  store,
		bucket: strings.TrimSpace(cfg.Bucket),
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		region: region,
		logger: logger,
	}
}

func (p *S3Publisher) ensureBucket(ctx context.Context) error {
	p.initOnce.Do(func() {
		exists, err := p.store.BucketExists(ctx, p.bucket)
		if err != nil {
			p.initErr = err
			return
		}
		if exists {
			return
		}
		p.initErr = p.store.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region})
	})
	return p.initErr
}

// Publish uploads the file at filePath twice: once under the run id and
// once under LatestPrefix.
func (p *S3Publisher) Publish(ctx context.Context, runID, filePath string) error {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return &Error{Bucket: p.bucket, Err: errors.New("run id is required")}
	}
	if err := p.ensureBucket(ctx); err != nil {
		return &Error{Bucket: p.bucket, Err: fmt.Errorf("ensure bucket: %w", err)}
	}

	opts := minio.PutObjectOptions{ContentType: contentType(filePath)}
	for _, scope := range []string{runID, LatestPrefix} {
		key := p.objectKey(scope, filePath)
		info, err := p.store.FPutObject(ctx, p.bucket, key, filePath, opts)
		if err != nil {
			return &Error{Bucket: p.bucket, Key: key, Err: err}
		}
		p.logger.Info("Published graph", "bucket", p.bucket, "key", key, "size", info.Size)
	}
	return nil
}

func (p *S3Publisher) objectKey(scope, filePath string) string {
	return path.Join(p.prefix, scope, filepath.Base(filePath))
}

func contentType(filePath string) string {
	if info, ok := export.GetFormatInfo(export.FormatForPath(filePath)); ok {
		return info.MIMEType
	}
	return "application/octet-stream"
}
