// internal/workers/application/send-notification/handler.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/metrics"
	"awards-portal/internal/models"
	"awards-portal/internal/records"
)

const (
	TaskType = "send-notification"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	store        records.Store
	sesClient    SESService
	snsClient    SNSService
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

func NewHandler(config *Config, store records.Store, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		sesClient:    sesClient,
		snsClient:    snsClient,
		errorHandler: apperrors.NewErrorHandler(l),
		logger:       l,
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ApplicationID == "" {
		return nil, apperrors.NewInvalidInputError(fmt.Errorf("applicationId is required"))
	}

	app, err := records.GetApplication(ctx, h.store, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperrors.NewRecordNotFoundError(input.ApplicationID)
	}
	if app.Corrupt() {
		return nil, apperrors.NewPayloadDecodeFailedError(input.ApplicationID, app.DecodeErr)
	}

	data := templateData(app)
	confirmationSent := input.ConfirmationSent
	sent := confirmationSent

	form := app.Payload.FormData
	if h.config.EmailEnabled && form.PrimaryContactEmail != "" && !confirmationSent {
		subject := renderTemplate(confirmationSubject, data)
		body := renderTemplate(confirmationBody, data)
		if err := h.sendEmail(ctx, form.PrimaryContactEmail, subject, body); err != nil {
			return nil, sendFailure("email", err)
		}
		sent = true
		confirmationSent = true
	}

	if h.config.ReviewersEnabled && h.config.ReviewerTopicARN != "" {
		if err := h.publishToReviewers(ctx, app, snsSubject(renderTemplate(reviewerSubject, data))); err != nil {
			// carried into the retried job's variables so the applicant is not emailed twice
			return nil, sendFailure("reviewers", err).WithMetadata("confirmationSent", confirmationSent)
		}
		sent = true
	}

	status := StatusDisabled
	if sent {
		status = StatusSent
	}

	h.logger.Info("notification processed", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"status":        status,
	})

	return &Output{
		NotificationID: uuid.New().String(),
		Status:         status,
		SentAt:         h.now().UTC().Format(time.RFC3339),
	}, nil
}

// sendFailure marks requests SNS or SES refused as invalid as permanent.
func sendFailure(channel string, err error) *apperrors.StandardError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidParameter", "InvalidParameterValue", "MessageRejected", "AuthorizationError":
			return apperrors.NewNotificationRejectedError(channel, err)
		}
	}
	return apperrors.NewNotificationSendFailedError(channel, err)
}

func templateData(app *models.DecodedApplication) map[string]interface{} {
	f := app.Payload.FormData
	meta := app.Payload.SubmissionMetadata
	return map[string]interface{}{
		"applicationId":      app.Record.ID,
		"companyNameEng":     f.CompanyNameEng,
		"entryTitleEng":      f.EntryTitleEng,
		"primaryContactName": f.PrimaryContactName,
		"awardCategoryLabel": models.AwardCategoryLabel(f.AwardCategory),
		"filesUploaded":      meta.TotalFilesUploaded,
		"filesAttempted":     meta.TotalFilesAttempted,
	}
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) publishToReviewers(ctx context.Context, app *models.DecodedApplication, subject string) error {
	f := app.Payload.FormData
	msg, err := json.Marshal(reviewerMessage{
		Event:              "application_submitted",
		ApplicationID:      app.Record.ID,
		CompanyNameEng:     f.CompanyNameEng,
		EntryTitleEng:      f.EntryTitleEng,
		AwardCategory:      f.AwardCategory,
		AwardCategoryLabel: models.AwardCategoryLabel(f.AwardCategory),
		FilesUploaded:      app.Payload.SubmissionMetadata.TotalFilesUploaded,
		UploadErrors:       len(app.Payload.SubmissionMetadata.UploadErrors),
	})
	if err != nil {
		return err
	}

	_, err = h.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.config.ReviewerTopicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(string(msg)),
	})
	return err
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
