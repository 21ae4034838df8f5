package submission

import (
	"context"
	"time"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
	"awards-portal/internal/sampledata"
	"awards-portal/internal/storage"
)

const BatchUserAgent = "awards-portal/submit-samples"

// Submitter is satisfied by *Orchestrator.
type Submitter interface {
	Submit(ctx context.Context, in *Input) (*Result, error)
}

type BatchOptions struct {
	Count     int
	Delay     time.Duration
	SkipFiles bool
	// OnItem, when set, is called after each submission.
	OnItem func(BatchItem)
}

type BatchItem struct {
	Index         int    `json:"index"`
	Success       bool   `json:"success"`
	Company       string `json:"company,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	Category      string `json:"category,omitempty"`
	Error         string `json:"error,omitempty"`
}

type BatchSummary struct {
	Items      []BatchItem `json:"items"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
}

// BatchRunner submits generated sample applications one after another with a
// fixed pause in between.
type BatchRunner struct {
	submitter Submitter
	logger    logger.Logger
}

func NewBatchRunner(submitter Submitter, log logger.Logger) *BatchRunner {
	return &BatchRunner{
		submitter: submitter,
		logger:    log.WithFields(map[string]interface{}{"component": "batch"}),
	}
}

// Run stops early when ctx is cancelled and returns the items completed so
// far together with ctx.Err().
func (b *BatchRunner) Run(ctx context.Context, opts BatchOptions) (*BatchSummary, error) {
	summary := &BatchSummary{Items: make([]BatchItem, 0, opts.Count)}

	for i := 0; i < opts.Count; i++ {
		if i > 0 && opts.Delay > 0 {
			timer := time.NewTimer(opts.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return summary, ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		item := b.submitOne(ctx, i, opts.SkipFiles)
		summary.Items = append(summary.Items, item)
		if item.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
		if opts.OnItem != nil {
			opts.OnItem(item)
		}
	}

	b.logger.Info("batch submission finished", map[string]interface{}{
		"count":      opts.Count,
		"successful": summary.Successful,
		"failed":     summary.Failed,
	})
	return summary, nil
}

func (b *BatchRunner) submitOne(ctx context.Context, i int, skipFiles bool) BatchItem {
	form := sampledata.Generate(i)

	var files map[models.Slot]*storage.File
	if !skipFiles {
		files = sampledata.MockFiles(form, i)
	}

	item := BatchItem{
		Index:    i + 1,
		Company:  form.CompanyNameEng,
		Category: form.AwardCategory,
	}

	result, err := b.submitter.Submit(ctx, &Input{Form: form, Files: files, UserAgent: BatchUserAgent})
	switch {
	case err != nil:
		item.Error = err.Error()
		if stdErr, ok := apperrors.As(err); ok {
			item.ApplicationID, _ = stdErr.Metadata["applicationId"].(string)
		}
	case !result.Success:
		item.Error = result.Error
	default:
		item.Success = true
		item.ApplicationID = result.ApplicationID
	}
	return item
}
