package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"awards-portal/internal/common/metrics"
	"awards-portal/internal/models"
)

// S3API is the subset of the S3 client used for uploads.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client S3API
	urls   URLBuilder
	now    func() time.Time
}

func NewS3Uploader(client S3API, urls URLBuilder, opts ...Option) *S3Uploader {
	o := buildOptions(opts)
	return &S3Uploader{client: client, urls: urls, now: o.now}
}

func (u *S3Uploader) Upload(ctx context.Context, applicationID string, slot models.Slot, file *File) (*models.FileUpload, error) {
	at := u.now()
	key := objectKey(applicationID, slot, at, file.Name)

	contentType := file.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(file.Name, file.Data)
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.urls.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size()),
	})
	if err != nil {
		metrics.FileUploadsTotal.WithLabelValues(string(slot), metrics.OutcomeFailure).Inc()
		return nil, &UploadError{Category: slot.Category(), Err: err}
	}

	metrics.FileUploadsTotal.WithLabelValues(string(slot), metrics.OutcomeSuccess).Inc()
	return &models.FileUpload{
		Key:        key,
		URL:        u.urls.URL(key),
		FileName:   file.Name,
		FileSize:   file.Size(),
		UploadedAt: at.UTC(),
	}, nil
}
