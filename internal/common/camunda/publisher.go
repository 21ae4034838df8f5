package camunda

import (
	"context"

	"awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
)

// InstanceCreator starts BPMN process instances.
type InstanceCreator interface {
	CreateInstance(ctx context.Context, processID string, variables interface{}) (int64, error)
}

// ProcessVariables are the variables handed to the application-submitted
// process.
type ProcessVariables struct {
	ApplicationID string `json:"applicationId"`
}

// ProcessPublisher announces a completed submission by starting a process
// instance for it.
type ProcessPublisher struct {
	creator   InstanceCreator
	processID string
	logger    logger.Logger
}

func NewProcessPublisher(creator InstanceCreator, processID string, log logger.Logger) *ProcessPublisher {
	return &ProcessPublisher{
		creator:   creator,
		processID: processID,
		logger:    log.WithFields(map[string]interface{}{"processId": processID}),
	}
}

func (p *ProcessPublisher) ApplicationSubmitted(ctx context.Context, applicationID string) error {
	key, err := p.creator.CreateInstance(ctx, p.processID, ProcessVariables{ApplicationID: applicationID})
	if err != nil {
		return errors.NewProcessStartFailedError(p.processID, err)
	}

	p.logger.Info("process instance created", map[string]interface{}{
		"applicationId":      applicationID,
		"processInstanceKey": key,
	})
	return nil
}
