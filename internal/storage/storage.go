// Package storage uploads application files to the object store.
package storage

import (
	"context"
	"fmt"
	"time"

	"awards-portal/internal/common/config"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
)

// File is one in-memory upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// Uploader stores a file for a slot. An empty applicationID selects the
// category key layout instead of the application-scoped one.
//
// A nil result with a nil error means the file was intentionally not stored.
type Uploader interface {
	Upload(ctx context.Context, applicationID string, slot models.Slot, file *File) (*models.FileUpload, error)
}

// UploadError is returned by uploaders that report failures.
type UploadError struct {
	Category string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s file: %v", e.Category, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock overrides the time source used for keys and upload timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the uploader for the configured strategy. client may be nil for
// the mock and skip strategies.
func New(strategy string, client S3API, cfg config.StorageConfig, log logger.Logger, opts ...Option) (Uploader, error) {
	urls := URLBuilder{Bucket: cfg.Bucket, Region: cfg.Region, Endpoint: cfg.Endpoint}

	switch strategy {
	case config.StrategyS3:
		if client == nil {
			return nil, fmt.Errorf("upload strategy %q needs an S3 client", strategy)
		}
		return NewS3Uploader(client, urls, opts...), nil
	case config.StrategyFallback:
		if client == nil {
			return nil, fmt.Errorf("upload strategy %q needs an S3 client", strategy)
		}
		return NewFallbackUploader(NewS3Uploader(client, urls, opts...), log), nil
	case config.StrategyMock:
		return NewMockUploader(urls, config.GetDuration(cfg.MockDelay), opts...), nil
	case config.StrategySkip:
		return SkipUploader{}, nil
	default:
		return nil, fmt.Errorf("unknown upload strategy %q", strategy)
	}
}
