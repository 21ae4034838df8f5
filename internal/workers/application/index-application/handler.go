package indexapplication

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/metrics"
	"awards-portal/internal/models"
	"awards-portal/internal/records"
)

const (
	TaskType = "index-application"
)

// Indexer is satisfied by *search.Index.
type Indexer interface {
	IndexApplication(ctx context.Context, app models.DecodedApplication) error
	Name() string
}

type Handler struct {
	config       *Config
	store        records.Store
	indexer      Indexer
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, store records.Store, indexer Indexer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		indexer:      indexer,
		errorHandler: apperrors.NewErrorHandler(l),
		logger:       l,
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

	if err := h.indexer.IndexApplication(ctx, *app); err != nil {
		return nil, err
	}

	h.logger.Info("application indexed", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"index":         h.indexer.Name(),
	})
	return &Output{
		ApplicationID: input.ApplicationID,
		IndexName:     h.indexer.Name(),
		Indexed:       true,
	}, nil
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
