package models

import "time"

// Record is one persisted application row. ApplicationData stays serialized;
// callers decode it with Decode.
type Record struct {
	ID              string    `json:"id"`
	ApplicationData string    `json:"applicationData"`
	UpdatedBy       string    `json:"updatedBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type SubmissionPayload struct {
	FormData           FormData            `json:"formData"`
	FileUploads        map[Slot]FileUpload `json:"fileUploads"`
	SubmissionMetadata SubmissionMetadata  `json:"submissionMetadata"`
}

type FormData struct {
	// Part I - entry information
	CompanyNameEng     string `json:"companyNameEng"`
	CompanyNameChi     string `json:"companyNameChi"`
	EntryTitleEng      string `json:"entryTitleEng"`
	EntryTitleChi      string `json:"entryTitleChi"`
	CompanyDescription string `json:"companyDescription"`
	BusinessRegNo      string `json:"businessRegNo"`
	IncorporationNo    string `json:"incorporationNo"`
	IncorporationDate  string `json:"incorporationDate"`
	CompanyAddress     string `json:"companyAddress"`

	// Part II - contact details
	PrimaryContactName    string `json:"primaryContactName"`
	PrimaryContactTitle   string `json:"primaryContactTitle"`
	PrimaryContactPhone   string `json:"primaryContactPhone"`
	PrimaryContactEmail   string `json:"primaryContactEmail"`
	SecondaryContactName  string `json:"secondaryContactName"`
	SecondaryContactTitle string `json:"secondaryContactTitle"`
	SecondaryContactPhone string `json:"secondaryContactPhone"`
	SecondaryContactEmail string `json:"secondaryContactEmail"`

	// Part III / IV - category and judging materials
	AwardCategory string `json:"awardCategory"`
	VideoLink     string `json:"videoLink"`

	// Declaration
	SubmissionUsage        bool   `json:"submissionUsage"`
	ApplicationDeclaration bool   `json:"applicationDeclaration"`
	PatentStatus           string `json:"patentStatus"`
	IntellectualProperty   string `json:"intellectualProperty"`
	EventAdminCost         bool   `json:"eventAdminCost"`
	VerifyCode             string `json:"verifyCode"`
}

type FileUpload struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type SubmissionMetadata struct {
	SubmitTime          time.Time `json:"submitTime"`
	UserAgent           string    `json:"userAgent"`
	IPAddress           string    `json:"ipAddress,omitempty"`
	TotalFilesAttempted int       `json:"totalFilesAttempted"`
	TotalFilesUploaded  int       `json:"totalFilesUploaded"`
	UploadErrors        []string  `json:"uploadErrors,omitempty"`
	FilesPending        bool      `json:"filesPending,omitempty"`
}

const (
	PatentStatusNone = "no-patent"
	PatentStatusHas  = "has-patent"

	IPNoDispute  = "no-dispute"
	IPHasDispute = "has-dispute"
)
