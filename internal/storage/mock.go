package storage

import (
	"context"
	"fmt"
	"time"

	"awards-portal/internal/models"
)

// MockUploader fabricates upload results after a short delay without
// touching the object store.
type MockUploader struct {
	urls  URLBuilder
	delay time.Duration
	now   func() time.Time
}

func NewMockUploader(urls URLBuilder, delay time.Duration, opts ...Option) *MockUploader {
	o := buildOptions(opts)
	return &MockUploader{urls: urls, delay: delay, now: o.now}
}

func (u *MockUploader) Upload(ctx context.Context, applicationID string, slot models.Slot, file *File) (*models.FileUpload, error) {
	if u.delay > 0 {
		timer := time.NewTimer(u.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, &UploadError{Category: slot.Category(), Err: ctx.Err()}
		case <-timer.C:
		}
	}

	at := u.now()
	var key string
	if applicationID == "" {
		key = fmt.Sprintf("%s/mock-%d-%s", slot.Category(), at.UnixMilli(), file.Name)
	} else {
		key = fmt.Sprintf("applications/%s/%d_%s_mock.%s", applicationID, at.UnixMilli(), slot.KeyPrefix(), Extension(file.Name))
	}

	return &models.FileUpload{
		Key:        key,
		URL:        u.urls.URL(key),
		FileName:   file.Name,
		FileSize:   file.Size(),
		UploadedAt: at.UTC(),
	}, nil
}

// SkipUploader never stores anything.
type SkipUploader struct{}

func (SkipUploader) Upload(context.Context, string, models.Slot, *File) (*models.FileUpload, error) {
	return nil, nil
}
