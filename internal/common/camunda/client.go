// internal/common/camunda/client.go
package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"awards-portal/internal/common/config"
	"awards-portal/internal/common/errors"
)

// Client owns the gateway connection shared by the API's process publisher
// and the job workers.
type Client struct {
	client         zbc.Client
	connectTimeout time.Duration
	requestTimeout time.Duration
	retry          RetryPolicy
}

// RetryPolicy bounds the backoff used when starting process instances.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	Attempts:  4,
	BaseDelay: time.Second,
	MaxDelay:  10 * time.Second,
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << attempt
	if d > p.MaxDelay || d <= 0 {
		return p.MaxDelay
	}
	return d
}

// NewClient dials the gateway named in the camunda config section and checks
// it answers a topology request before returning.
func NewClient(cfg config.CamundaConfig) (*Client, error) {
	requestTimeout := config.GetDuration(cfg.RequestTimeout)
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{
		client:         zeebeClient,
		connectTimeout: 10 * time.Second,
		requestTimeout: requestTimeout,
		retry:          DefaultRetryPolicy,
	}
	if err := c.HealthCheck(context.Background()); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, err)
	}
	return c, nil
}

// GetClient returns the raw Zeebe client used for job polling.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// CreateInstance starts the latest deployed version of a BPMN process and
// returns the new process instance key.
func (c *Client) CreateInstance(ctx context.Context, processID string, variables interface{}) (int64, error) {
	return withRetry(ctx, c.retry, func(ctx context.Context) (int64, error) {
		cmd, err := c.client.NewCreateInstanceCommand().
			BPMNProcessId(processID).
			LatestVersion().
			VariablesFromObject(variables)
		if err != nil {
			return 0, errors.NewInvalidInputError(err)
		}

		reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()

		resp, err := cmd.Send(reqCtx)
		if err != nil {
			return 0, err
		}
		return resp.GetProcessInstanceKey(), nil
	})
}

// withRetry repeats op while the gateway reports a transient status. The
// final failure is mapped onto a StandardError.
func withRetry[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if _, ok := errors.As(err); ok {
			return zero, err
		}
		if !retryable(err) || attempt == attempts-1 {
			return zero, mapGatewayError(err, attempt+1)
		}

		timer := time.NewTimer(policy.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, errors.NewTimeoutError("zeebe", ctx.Err())
		case <-timer.C:
		}
	}
}

func retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return stderrors.Is(err, context.DeadlineExceeded)
}

func mapGatewayError(err error, attempts int) error {
	wrapped := fmt.Errorf("after %d attempt(s): %w", attempts, err)

	switch status.Code(err) {
	case codes.DeadlineExceeded:
		return errors.NewTimeoutError("zeebe", wrapped)
	case codes.NotFound:
		return errors.NewResourceNotFoundError("zeebe", status.Convert(err).Message())
	case codes.InvalidArgument, codes.FailedPrecondition:
		return errors.NewBusinessRuleError("Process instance rejected", status.Convert(err).Message())
	case codes.PermissionDenied, codes.Unauthenticated:
		return errors.NewAuthenticationError(status.Convert(err).Message())
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError("zeebe", wrapped)
	}
	return errors.NewExternalServiceError("zeebe", wrapped)
}
