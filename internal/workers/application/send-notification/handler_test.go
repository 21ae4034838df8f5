// internal/workers/application/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
	"awards-portal/internal/sampledata"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	if m.SendEmailFunc == nil {
		return &ses.SendEmailOutput{}, nil
	}
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	if m.PublishFunc == nil {
		return &sns.PublishOutput{}, nil
	}
	return m.PublishFunc(ctx, params, optFns...)
}

type fakeStore struct {
	records map[string]models.Record
}

func (s *fakeStore) Create(context.Context, *models.SubmissionPayload, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *fakeStore) Update(context.Context, string, *models.SubmissionPayload, string) error {
	return errors.New("not implemented")
}

func (s *fakeStore) Get(ctx context.Context, id string) (*models.Record, error) {
	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *fakeStore) List(context.Context) ([]models.Record, error) {
	return nil, nil
}

// Create a test logger that implements your logger.Logger interface
type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled:     true,
		ReviewersEnabled: true,
		FromEmail:        "awards@whexpo.hk",
		ReviewerTopicARN: "arn:aws:sns:ap-east-1:123456789012:awards-reviewers",
		Timeout:          30 * time.Second,
	}
}

func createTestStore(t *testing.T) *fakeStore {
	payload := &models.SubmissionPayload{
		FormData: sampledata.Generate(0),
		FileUploads: map[models.Slot]models.FileUpload{
			models.SlotLogoAI:   {Key: "applications/app-001/1_logo_ai.eps"},
			models.SlotLogoJPEG: {Key: "applications/app-001/1_logo_jpeg.jpg"},
		},
		SubmissionMetadata: models.SubmissionMetadata{
			TotalFilesAttempted: 3,
			TotalFilesUploaded:  2,
			UploadErrors:        []string{"Brand Guideline: failed to upload brand-guidelines file: timeout"},
		},
	}
	data, err := models.Encode(payload)
	require.NoError(t, err)
	return &fakeStore{records: map[string]models.Record{
		"app-001":     {ID: "app-001", ApplicationData: data},
		"corrupt-001": {ID: "corrupt-001", ApplicationData: "{"},
	}}
}

func createHandler(t *testing.T, config *Config, sesMock *MockSESService, snsMock *MockSNSService) *Handler {
	h := NewHandler(config, createTestStore(t), sesMock, snsMock, &testLogger{t: t})
	h.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Equal(t, "chan.taiman@healthtech.hk", params.Destination.ToAddresses[0])
			assert.Equal(t, "awards@whexpo.hk", *params.Source)
			assert.Equal(t, "Application received: AI-Powered Health Monitoring System", *params.Message.Subject.Data)
			body := *params.Message.Body.Text.Data
			assert.Contains(t, body, "app-001")
			assert.Contains(t, body, "Health Innovation category")
			assert.Contains(t, body, "2 of 3 files were received")
			assert.NotContains(t, body, "{{")
			return &ses.SendEmailOutput{}, nil
		},
	}
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			assert.Equal(t, "arn:aws:sns:ap-east-1:123456789012:awards-reviewers", *params.TopicArn)
			assert.Equal(t, "New awards application: HealthTech Innovations Ltd", *params.Subject)

			var msg reviewerMessage
			require.NoError(t, json.Unmarshal([]byte(*params.Message), &msg))
			assert.Equal(t, "app-001", msg.ApplicationID)
			assert.Equal(t, "health-innovation", msg.AwardCategory)
			assert.Equal(t, 2, msg.FilesUploaded)
			assert.Equal(t, 1, msg.UploadErrors)
			return &sns.PublishOutput{}, nil
		},
	}

	h := createHandler(t, createTestConfig(), sesMock, snsMock)
	output, err := h.Execute(context.Background(), &Input{ApplicationID: "app-001"})
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.NotificationID)
	assert.Equal(t, "2024-03-01T09:00:00Z", output.SentAt)
	assert.Equal(t, 1, sesMock.calls)
	assert.Equal(t, 1, snsMock.calls)
}

func TestHandler_Execute_Channels(t *testing.T) {
	tests := []struct {
		name      string
		email     bool
		reviewers bool
		topicARN  string
		status    string
		sesCalls  int
		snsCalls  int
	}{
		{"email only", true, false, "arn:topic", StatusSent, 1, 0},
		{"reviewers only", false, true, "arn:topic", StatusSent, 0, 1},
		{"reviewers without topic", false, true, "", StatusDisabled, 0, 0},
		{"everything disabled", false, false, "arn:topic", StatusDisabled, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			config.EmailEnabled = tt.email
			config.ReviewersEnabled = tt.reviewers
			config.ReviewerTopicARN = tt.topicARN

			sesMock := &MockSESService{}
			snsMock := &MockSNSService{}
			output, err := createHandler(t, config, sesMock, snsMock).Execute(context.Background(), &Input{ApplicationID: "app-001"})
			require.NoError(t, err)
			assert.Equal(t, tt.status, output.Status)
			assert.Equal(t, tt.sesCalls, sesMock.calls)
			assert.Equal(t, tt.snsCalls, snsMock.calls)
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	sesFailure := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("MessageRejected: Email address is not verified")
		},
	}
	snsFailure := &MockSNSService{
		PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("AuthorizationError")
		},
	}

	tests := []struct {
		name      string
		input     *Input
		ses       *MockSESService
		sns       *MockSNSService
		code      apperrors.ErrorCode
		retryable bool
	}{
		{"missing application id", &Input{}, &MockSESService{}, &MockSNSService{}, apperrors.ErrCodeInvalidInput, false},
		{"unknown application", &Input{ApplicationID: "missing"}, &MockSESService{}, &MockSNSService{}, apperrors.ErrCodeRecordNotFound, false},
		{"corrupt payload", &Input{ApplicationID: "corrupt-001"}, &MockSESService{}, &MockSNSService{}, apperrors.ErrCodePayloadDecodeFailed, false},
		{"email failure", &Input{ApplicationID: "app-001"}, sesFailure, &MockSNSService{}, apperrors.ErrCodeNotificationSendFailed, true},
		{"reviewer failure", &Input{ApplicationID: "app-001"}, &MockSESService{}, snsFailure, apperrors.ErrCodeNotificationSendFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createHandler(t, createTestConfig(), tt.ses, tt.sns).Execute(context.Background(), tt.input)
			assert.Nil(t, output)
			require.Error(t, err)

			stdErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

// nextAttempt builds the variables Zeebe hands the retried job: the original
// input plus the variables set when the previous attempt failed.
func nextAttempt(t *testing.T, prev *Input, err error) *Input {
	stdErr, ok := apperrors.As(err)
	require.True(t, ok)

	vars := map[string]interface{}{"applicationId": prev.ApplicationID}
	for k, v := range apperrors.ConvertToBPMNError(stdErr).ToErrorVariables() {
		vars[k] = v
	}
	data, err := json.Marshal(vars)
	require.NoError(t, err)

	var next Input
	require.NoError(t, json.Unmarshal(data, &next))
	return &next
}

func TestHandler_Execute_ReviewerRetryDoesNotResendEmail(t *testing.T) {
	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	snsMock.PublishFunc = func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		if snsMock.calls < 3 {
			return nil, errors.New("Throttling: Rate exceeded")
		}
		return &sns.PublishOutput{}, nil
	}
	h := createHandler(t, createTestConfig(), sesMock, snsMock)

	input := &Input{ApplicationID: "app-001"}
	for attempt := 1; attempt < 3; attempt++ {
		_, err := h.Execute(context.Background(), input)
		require.Error(t, err)
		stdErr, _ := apperrors.As(err)
		assert.True(t, stdErr.Retryable)
		input = nextAttempt(t, input, err)
		assert.True(t, input.ConfirmationSent)
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, 1, sesMock.calls)
	assert.Equal(t, 3, snsMock.calls)
}

func TestHandler_Execute_EmailFailureKeepsConfirmationPending(t *testing.T) {
	sesMock := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("Throttling: Maximum sending rate exceeded")
		},
	}
	snsMock := &MockSNSService{}

	input := &Input{ApplicationID: "app-001"}
	_, err := createHandler(t, createTestConfig(), sesMock, snsMock).Execute(context.Background(), input)
	require.Error(t, err)
	assert.False(t, nextAttempt(t, input, err).ConfirmationSent)
	assert.Equal(t, 0, snsMock.calls)
}

func TestHandler_Execute_RejectedReviewerMessageIsPermanent(t *testing.T) {
	snsMock := &MockSNSService{
		PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "InvalidParameter", Message: "Invalid parameter: Subject"}
		},
	}

	_, err := createHandler(t, createTestConfig(), &MockSESService{}, snsMock).Execute(context.Background(), &Input{ApplicationID: "app-001"})
	require.Error(t, err)

	stdErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, true, stdErr.Metadata["confirmationSent"])
	assert.Zero(t, apperrors.ConvertToBPMNError(stdErr).Retries)
}

func TestHandler_Execute_ReviewerSubjectIsSanitized(t *testing.T) {
	store := createTestStore(t)
	form := sampledata.Generate(0)
	form.CompanyNameEng = "Café Ünïcode 香港 Holdings\nLimited " + strings.Repeat("Extended Name ", 10)
	data, err := models.Encode(&models.SubmissionPayload{FormData: form})
	require.NoError(t, err)
	store.records["app-002"] = models.Record{ID: "app-002", ApplicationData: data}

	var subject string
	snsMock := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			subject = *params.Subject
			return &sns.PublishOutput{}, nil
		},
	}
	h := NewHandler(createTestConfig(), store, &MockSESService{}, snsMock, &testLogger{t: t})

	_, err = h.Execute(context.Background(), &Input{ApplicationID: "app-002"})
	require.NoError(t, err)
	assert.Less(t, len(subject), 100)
	assert.True(t, strings.HasPrefix(subject, "New awards application: Cafe Unicode Holdings"), subject)
	for _, r := range subject {
		assert.True(t, r >= ' ' && r < 0x7f, "non-printable rune %q", r)
	}
}

func TestSNSSubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"New awards application: HealthTech Innovations Ltd", "New awards application: HealthTech Innovations Ltd"},
		{"New awards application: Société Générale", "New awards application: Societe Generale"},
		{"New awards application: 香港科技 Ltd", "New awards application: Ltd"},
		{"Line\none\ttabbed   spaced", "Line one tabbed spaced"},
		{strings.Repeat("a", 150), strings.Repeat("a", 99)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, snsSubject(tt.in))
	}
}

func TestRenderTemplate(t *testing.T) {
	got := renderTemplate("Hello {{name}}, ref {{id}}{{missing}}.", map[string]interface{}{
		"name": "Alex",
		"id":   42,
	})
	assert.Equal(t, "Hello Alex, ref 42.", got)
}

func TestRenderTemplate_ValuesAreNotExpanded(t *testing.T) {
	data := map[string]interface{}{
		"companyNameEng": "Braces {{applicationId}} & {{unknown}} Ltd",
		"applicationId":  "app-001",
	}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "Braces {{applicationId}} & {{unknown}} Ltd (app-001)",
			renderTemplate("{{companyNameEng}} ({{applicationId}})", data))
	}
	assert.Equal(t, "open {{ brace", renderTemplate("open {{ brace", data))
}
