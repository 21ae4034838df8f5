// internal/workers/application/send-notification/models.go
package sendnotification

type Input struct {
	ApplicationID string `json:"applicationId"`
	// ConfirmationSent is set by a failed earlier attempt that already
	// emailed the applicant.
	ConfirmationSent bool `json:"confirmationSent"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)

// reviewerMessage is published to the reviewers topic.
type reviewerMessage struct {
	Event              string `json:"event"`
	ApplicationID      string `json:"applicationId"`
	CompanyNameEng     string `json:"companyNameEng"`
	EntryTitleEng      string `json:"entryTitleEng"`
	AwardCategory      string `json:"awardCategory"`
	AwardCategoryLabel string `json:"awardCategoryLabel"`
	FilesUploaded      int    `json:"filesUploaded"`
	UploadErrors       int    `json:"uploadErrors"`
}
