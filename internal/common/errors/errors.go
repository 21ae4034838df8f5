// Package errors provides standardized error handling shared by the HTTP API,
// the submission pipeline and the BPMN workers.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeInvalidInput                ErrorCode = "INVALID_INPUT"

	ErrCodeRecordCreateFailed  ErrorCode = "RECORD_CREATE_FAILED"
	ErrCodeRecordUpdateFailed  ErrorCode = "RECORD_UPDATE_FAILED"
	ErrCodeRecordNotFound      ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeRecordQueryFailed   ErrorCode = "RECORD_QUERY_FAILED"
	ErrCodePayloadDecodeFailed ErrorCode = "PAYLOAD_DECODE_FAILED"

	ErrCodeFileUploadFailed ErrorCode = "FILE_UPLOAD_FAILED"

	ErrCodeIdentityResolutionFailed ErrorCode = "IDENTITY_RESOLUTION_FAILED"
	ErrCodeAuthenticationFailed     ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodePasswordChangeFailed     ErrorCode = "PASSWORD_CHANGE_FAILED"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexFailed                   ErrorCode = "INDEX_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeProcessStartFailed     ErrorCode = "PROCESS_START_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule    ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// As extracts a StandardError from an error chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidInputError(err error) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", err, false)
}

// NewRecordCreateFailedError is fatal to a submission: no record id exists yet.
func NewRecordCreateFailedError(err error) *StandardError {
	return newError(ErrCodeRecordCreateFailed, "Failed to create application record", err, true)
}

// NewRecordUpdateFailedError leaves the created record in its files-pending state.
func NewRecordUpdateFailedError(applicationID string, err error) *StandardError {
	return newError(ErrCodeRecordUpdateFailed, "Failed to update application record", err, true).
		WithMetadata("applicationId", applicationID)
}

func NewRecordNotFoundError(applicationID string) *StandardError {
	e := newError(ErrCodeRecordNotFound, "Application record not found", nil, false)
	e.Details = fmt.Sprintf("applicationId: %s", applicationID)
	return e.WithMetadata("applicationId", applicationID)
}

func NewRecordQueryFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeRecordQueryFailed, fmt.Sprintf("Record store %s failed", operation), err, true)
}

func NewPayloadDecodeFailedError(applicationID string, err error) *StandardError {
	return newError(ErrCodePayloadDecodeFailed, "Application payload could not be decoded", err, false).
		WithMetadata("applicationId", applicationID)
}

func NewFileUploadFailedError(category string, err error) *StandardError {
	return newError(ErrCodeFileUploadFailed, fmt.Sprintf("Failed to upload %s file", category), err, true)
}

func NewIdentityResolutionFailedError(err error) *StandardError {
	return newError(ErrCodeIdentityResolutionFailed, "Current user could not be resolved", err, false)
}

func NewAuthenticationError(details string) *StandardError {
	e := newError(ErrCodeAuthenticationFailed, "Authentication failed", nil, false)
	e.Details = details
	return e
}

func NewPasswordChangeFailedError(details string) *StandardError {
	e := newError(ErrCodePasswordChangeFailed, "Password change failed", nil, false)
	e.Details = details
	return e
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err, true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error", err, true)
}

func NewIndexFailedError(applicationID string, err error) *StandardError {
	return newError(ErrCodeIndexFailed, "Failed to index application", err, true).
		WithMetadata("applicationId", applicationID)
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	e := newError(ErrCodeNotificationSendFailed, "Notification delivery failed", err, true)
	e.Details = fmt.Sprintf("type: %s, error: %v", notificationType, err)
	return e
}

// NewNotificationRejectedError is a delivery failure that a retry cannot fix.
func NewNotificationRejectedError(notificationType string, err error) *StandardError {
	e := NewNotificationSendFailedError(notificationType, err)
	e.Message = "Notification rejected by provider"
	e.Retryable = false
	return e
}

func NewProcessStartFailedError(processID string, err error) *StandardError {
	return newError(ErrCodeProcessStartFailed, fmt.Sprintf("Failed to start process %s", processID), err, true)
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	e := newError(ErrCodeBusinessRule, message, nil, false)
	e.Details = details
	return e
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err, true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err, true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	e := newError(ErrCodeNotFound, fmt.Sprintf("Resource not found in %s", service), nil, false)
	e.Details = details
	return e
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events in the application-submitted process.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeApplicationValidationFailed:   "APPLICATION_VALIDATION_FAILED",
	ErrCodeInvalidInput:                  "INVALID_INPUT",
	ErrCodeRecordCreateFailed:            "RECORD_CREATE_FAILED",
	ErrCodeRecordUpdateFailed:            "RECORD_UPDATE_FAILED",
	ErrCodeRecordNotFound:                "RECORD_NOT_FOUND",
	ErrCodeRecordQueryFailed:             "RECORD_QUERY_FAILED",
	ErrCodePayloadDecodeFailed:           "PAYLOAD_DECODE_FAILED",
	ErrCodeFileUploadFailed:              "FILE_UPLOAD_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeIndexFailed:                   "INDEX_FAILED",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
	ErrCodeProcessStartFailed:            "PROCESS_START_FAILED",
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeRecordCreateFailed,
		ErrCodeRecordUpdateFailed,
		ErrCodeRecordQueryFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeIndexFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeProcessStartFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeFileUploadFailed,
		ErrCodeTimeout:
		return 2

	default:
		return 0 // business errors: no retry
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "RECORD") || strings.Contains(codeStr, "PAYLOAD"):
		return "DATABASE"
	case strings.Contains(codeStr, "FILE"):
		return "STORAGE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "IDENTITY") || strings.Contains(codeStr, "AUTHENTICATION") || strings.Contains(codeStr, "PASSWORD"):
		return "AUTH"
	case strings.Contains(codeStr, "PROCESS"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
