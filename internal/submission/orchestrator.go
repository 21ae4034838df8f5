// Package submission runs the create, upload and finalize pipeline for an
// awards application.
package submission

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/metrics"
	"awards-portal/internal/common/observability"
	"awards-portal/internal/models"
	"awards-portal/internal/records"
	"awards-portal/internal/storage"
)

const DefaultAnonymousUser = "anonymous"

// IdentityResolver names the caller recorded as updatedBy.
type IdentityResolver interface {
	CurrentUser(ctx context.Context) (string, error)
}

// StaticIdentity always resolves to the same user.
type StaticIdentity string

func (s StaticIdentity) CurrentUser(context.Context) (string, error) {
	return string(s), nil
}

// EventPublisher is told about every completed submission.
type EventPublisher interface {
	ApplicationSubmitted(ctx context.Context, applicationID string) error
}

type Config struct {
	AnonymousUser string
}

type Input struct {
	Form      models.FormData
	Files     map[models.Slot]*storage.File
	UserAgent string
	IPAddress string
}

type Result struct {
	Success        bool     `json:"success"`
	ApplicationID  string   `json:"applicationId,omitempty"`
	Error          string   `json:"error,omitempty"`
	FilesAttempted int      `json:"filesAttempted"`
	FilesUploaded  int      `json:"filesUploaded"`
	UploadErrors   []string `json:"uploadErrors,omitempty"`
}

type Orchestrator struct {
	store     records.Store
	uploader  storage.Uploader
	identity  IdentityResolver
	publisher EventPublisher
	obs       *observability.Observability
	tracer    trace.Tracer
	anonymous string
	logger    logger.Logger
	now       func() time.Time
}

func NewOrchestrator(cfg *Config, store records.Store, uploader storage.Uploader, identity IdentityResolver, log logger.Logger) *Orchestrator {
	anonymous := cfg.AnonymousUser
	if anonymous == "" {
		anonymous = DefaultAnonymousUser
	}
	return &Orchestrator{
		store:     store,
		uploader:  uploader,
		identity:  identity,
		tracer:    otel.Tracer("awards-portal/submission"),
		anonymous: anonymous,
		logger:    log.WithFields(map[string]interface{}{"component": "submission"}),
		now:       time.Now,
	}
}

// WithPublisher sets the publisher notified after a successful submission.
func (o *Orchestrator) WithPublisher(p EventPublisher) *Orchestrator {
	o.publisher = p
	return o
}

func (o *Orchestrator) WithObservability(obs *observability.Observability) *Orchestrator {
	o.obs = obs
	o.tracer = obs.Tracer()
	return o
}

// Submit stores the form, uploads the provided files one slot at a time and
// writes the upload results back onto the record.
//
// A create failure is reported on the Result with a nil error. A finalize
// failure is returned as an error; the record created in the first phase is
// left behind with filesPending set.
func (o *Orchestrator) Submit(ctx context.Context, in *Input) (*Result, error) {
	start := o.now()
	ctx, span := o.tracer.Start(ctx, "submission.submit")
	defer span.End()

	updatedBy := o.resolveIdentity(ctx)

	provided := providedSlots(in.Files)
	payload := &models.SubmissionPayload{
		FormData:    in.Form,
		FileUploads: map[models.Slot]models.FileUpload{},
		SubmissionMetadata: models.SubmissionMetadata{
			SubmitTime:          start.UTC(),
			UserAgent:           in.UserAgent,
			IPAddress:           in.IPAddress,
			TotalFilesAttempted: len(provided),
			FilesPending:        true,
		},
	}

	id, err := o.create(ctx, payload, updatedBy)
	if err != nil {
		o.finish(ctx, span, start, "create_failed", in.Form.AwardCategory, err)
		o.logger.Error("application record create failed", map[string]interface{}{
			"company": in.Form.CompanyNameEng,
			"error":   err.Error(),
		})
		return &Result{Success: false, Error: err.Error(), FilesAttempted: len(provided)}, nil
	}
	span.SetAttributes(attribute.String("application.id", id))

	uploadErrors := o.uploadAll(ctx, id, provided, in.Files, payload)

	payload.SubmissionMetadata.TotalFilesAttempted = len(provided)
	payload.SubmissionMetadata.TotalFilesUploaded = len(payload.FileUploads)
	payload.SubmissionMetadata.UploadErrors = uploadErrors
	payload.SubmissionMetadata.FilesPending = false

	if err := o.finalize(ctx, id, payload, updatedBy); err != nil {
		o.finish(ctx, span, start, "finalize_failed", in.Form.AwardCategory, err)
		o.logger.Error("application finalize failed, record left with files pending", map[string]interface{}{
			"applicationId": id,
			"error":         err.Error(),
		})
		return nil, err
	}

	o.finish(ctx, span, start, metrics.OutcomeSuccess, in.Form.AwardCategory, nil)
	o.logger.Info("application submitted", map[string]interface{}{
		"applicationId":  id,
		"updatedBy":      updatedBy,
		"filesAttempted": len(provided),
		"filesUploaded":  len(payload.FileUploads),
		"uploadErrors":   len(uploadErrors),
	})

	if o.publisher != nil {
		if err := o.publisher.ApplicationSubmitted(ctx, id); err != nil {
			o.logger.Warn("failed to publish application-submitted event", map[string]interface{}{
				"applicationId": id,
				"error":         err.Error(),
			})
		}
	}

	return &Result{
		Success:        true,
		ApplicationID:  id,
		FilesAttempted: len(provided),
		FilesUploaded:  len(payload.FileUploads),
		UploadErrors:   uploadErrors,
	}, nil
}

func (o *Orchestrator) resolveIdentity(ctx context.Context) string {
	if o.identity == nil {
		return o.anonymous
	}
	user, err := o.identity.CurrentUser(ctx)
	if err != nil || user == "" {
		o.logger.Debug("identity unavailable, submitting anonymously", map[string]interface{}{
			"error": fmt.Sprint(err),
		})
		return o.anonymous
	}
	return user
}

func (o *Orchestrator) create(ctx context.Context, payload *models.SubmissionPayload, updatedBy string) (string, error) {
	ctx, span := o.tracer.Start(ctx, "submission.create")
	defer span.End()

	id, err := o.store.Create(ctx, payload, updatedBy)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return id, nil
}

func (o *Orchestrator) uploadAll(ctx context.Context, id string, slots []models.Slot, files map[models.Slot]*storage.File, payload *models.SubmissionPayload) []string {
	var uploadErrors []string
	for _, slot := range slots {
		upload, err := o.uploadOne(ctx, id, slot, files[slot])
		if err != nil {
			uploadErrors = append(uploadErrors, fmt.Sprintf("%s: %s", slot.Label(), err.Error()))
			o.logger.Warn("file upload failed", map[string]interface{}{
				"applicationId": id,
				"slot":          string(slot),
				"error":         err.Error(),
			})
			continue
		}
		if upload != nil {
			payload.FileUploads[slot] = *upload
		}
	}
	return uploadErrors
}

func (o *Orchestrator) uploadOne(ctx context.Context, id string, slot models.Slot, file *storage.File) (*models.FileUpload, error) {
	ctx, span := o.tracer.Start(ctx, "submission.upload", trace.WithAttributes(
		attribute.String("slot", string(slot)),
		attribute.Int64("file.size", file.Size()),
	))
	defer span.End()

	upload, err := o.uploader.Upload(ctx, id, slot, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
	}
	return upload, err
}

func (o *Orchestrator) finalize(ctx context.Context, id string, payload *models.SubmissionPayload, updatedBy string) error {
	ctx, span := o.tracer.Start(ctx, "submission.finalize")
	defer span.End()

	if err := o.store.Update(ctx, id, payload, updatedBy); err != nil {
		span.RecordError(err)
		if stdErr, ok := apperrors.As(err); ok && stdErr.Code == apperrors.ErrCodeRecordUpdateFailed {
			return stdErr
		}
		return apperrors.NewRecordUpdateFailedError(id, err)
	}
	return nil
}

func (o *Orchestrator) finish(ctx context.Context, span trace.Span, start time.Time, outcome, category string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	metrics.SubmissionDuration.WithLabelValues(outcome).Observe(o.now().Sub(start).Seconds())
	if o.obs != nil {
		o.obs.RecordSubmission(ctx, category, err == nil)
	}
}

func providedSlots(files map[models.Slot]*storage.File) []models.Slot {
	var slots []models.Slot
	for _, slot := range models.Slots {
		if f, ok := files[slot]; ok && f != nil {
			slots = append(slots, slot)
		}
	}
	return slots
}
