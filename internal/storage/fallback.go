package storage

import (
	"context"

	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/metrics"
	"awards-portal/internal/models"
)

// FallbackUploader swallows upload failures so a submission can proceed
// without the file. The failure is logged and the slot is left absent.
type FallbackUploader struct {
	next Uploader
	log  logger.Logger
}

func NewFallbackUploader(next Uploader, log logger.Logger) *FallbackUploader {
	return &FallbackUploader{next: next, log: log}
}

func (u *FallbackUploader) Upload(ctx context.Context, applicationID string, slot models.Slot, file *File) (*models.FileUpload, error) {
	result, err := u.next.Upload(ctx, applicationID, slot, file)
	if err != nil {
		u.log.Warn("file upload failed, continuing without file", map[string]interface{}{
			"slot":          string(slot),
			"category":      slot.Category(),
			"fileName":      file.Name,
			"applicationId": applicationID,
			"error":         err.Error(),
		})
		metrics.FileUploadsTotal.WithLabelValues(string(slot), metrics.OutcomeSkipped).Inc()
		return nil, nil
	}
	return result, nil
}
