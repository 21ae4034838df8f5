package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseErrorPlaceholder replaces display values of records whose payload
// could not be decoded.
const ParseErrorPlaceholder = "Parse Error"

// DecodedApplication is either a decoded payload or a corrupt record.
// Exactly one of Payload and DecodeErr is set.
type DecodedApplication struct {
	Record    Record
	Payload   *SubmissionPayload
	DecodeErr error
}

// Decode never fails; a malformed payload yields a corrupt result.
func Decode(r Record) DecodedApplication {
	var p SubmissionPayload
	if err := json.Unmarshal([]byte(r.ApplicationData), &p); err != nil {
		return DecodedApplication{Record: r, DecodeErr: fmt.Errorf("decode application %s: %w", r.ID, err)}
	}
	if p.FileUploads == nil {
		p.FileUploads = map[Slot]FileUpload{}
	}
	return DecodedApplication{Record: r, Payload: &p}
}

func (d DecodedApplication) Corrupt() bool {
	return d.Payload == nil
}

type ApplicationSummary struct {
	ID                  string    `json:"id"`
	CompanyNameEng      string    `json:"companyNameEng"`
	CompanyNameChi      string    `json:"companyNameChi"`
	EntryTitleEng       string    `json:"entryTitleEng"`
	AwardCategory       string    `json:"awardCategory"`
	AwardCategoryLabel  string    `json:"awardCategoryLabel"`
	PrimaryContactName  string    `json:"primaryContactName"`
	PrimaryContactEmail string    `json:"primaryContactEmail"`
	FilesUploaded       int       `json:"filesUploaded"`
	FilesPending        bool      `json:"filesPending"`
	SubmittedAt         time.Time `json:"submittedAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	UpdatedBy           string    `json:"updatedBy"`
	Corrupt             bool      `json:"corrupt"`
}

func (d DecodedApplication) Summary() ApplicationSummary {
	s := ApplicationSummary{
		ID:          d.Record.ID,
		SubmittedAt: d.Record.CreatedAt,
		UpdatedAt:   d.Record.UpdatedAt,
		UpdatedBy:   d.Record.UpdatedBy,
	}
	if d.Corrupt() {
		s.CompanyNameEng = ParseErrorPlaceholder
		s.CompanyNameChi = ParseErrorPlaceholder
		s.EntryTitleEng = ParseErrorPlaceholder
		s.AwardCategory = ParseErrorPlaceholder
		s.AwardCategoryLabel = ParseErrorPlaceholder
		s.PrimaryContactName = ParseErrorPlaceholder
		s.PrimaryContactEmail = ParseErrorPlaceholder
		s.Corrupt = true
		return s
	}

	f := d.Payload.FormData
	s.CompanyNameEng = f.CompanyNameEng
	s.CompanyNameChi = f.CompanyNameChi
	s.EntryTitleEng = f.EntryTitleEng
	s.AwardCategory = f.AwardCategory
	s.AwardCategoryLabel = AwardCategoryLabel(f.AwardCategory)
	s.PrimaryContactName = f.PrimaryContactName
	s.PrimaryContactEmail = f.PrimaryContactEmail
	s.FilesUploaded = len(d.Payload.FileUploads)
	s.FilesPending = d.Payload.SubmissionMetadata.FilesPending
	if !d.Payload.SubmissionMetadata.SubmitTime.IsZero() {
		s.SubmittedAt = d.Payload.SubmissionMetadata.SubmitTime
	}
	return s
}

// Encode serializes a payload for storage in Record.ApplicationData.
func Encode(p *SubmissionPayload) (string, error) {
	if p.FileUploads == nil {
		p.FileUploads = map[Slot]FileUpload{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode application payload: %w", err)
	}
	return string(b), nil
}
