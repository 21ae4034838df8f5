// Package sampledata builds deterministic demo applications for seeding and
// smoke-testing the submission pipeline.
package sampledata

import (
	"fmt"

	"awards-portal/internal/models"
	"awards-portal/internal/storage"
)

const VerifyCode = "6J149"

// Size is the number of distinct profiles; larger indices wrap around.
func Size() int {
	return len(companies)
}

// Generate returns the form for profile index. Any index is accepted.
func Generate(index int) models.FormData {
	i := wrap(index)
	c := companies[i]
	primary := contacts[i%len(contacts)]
	secondary := contacts[(i+1)%len(contacts)]

	patent := models.PatentStatusNone
	if i%2 != 0 {
		patent = models.PatentStatusHas
	}
	ip := models.IPHasDispute
	if i%3 == 0 {
		ip = models.IPNoDispute
	}

	return models.FormData{
		CompanyNameEng:     c.nameEng,
		CompanyNameChi:     c.nameChi,
		EntryTitleEng:      c.entryTitleEng,
		EntryTitleChi:      c.entryTitleChi,
		CompanyDescription: c.description,
		BusinessRegNo:      c.businessRegNo,
		IncorporationNo:    c.incorporationNo,
		IncorporationDate:  fmt.Sprintf("202%d-0%d-%d", 2+i%3, i%9+1, 10+i%20),
		CompanyAddress:     c.address,

		PrimaryContactName:    primary.name,
		PrimaryContactTitle:   primary.title,
		PrimaryContactPhone:   primary.phone,
		PrimaryContactEmail:   primary.email,
		SecondaryContactName:  secondary.name,
		SecondaryContactTitle: secondary.title,
		SecondaryContactPhone: secondary.phone,
		SecondaryContactEmail: secondary.email,

		AwardCategory: c.category,
		VideoLink:     fmt.Sprintf("https://youtube.com/watch?v=sample%d", i+1),

		SubmissionUsage:        true,
		ApplicationDeclaration: true,
		PatentStatus:           patent,
		IntellectualProperty:   ip,
		EventAdminCost:         true,
		VerifyCode:             VerifyCode,
	}
}

// MockFiles builds one small text file per slot for the given form.
func MockFiles(form models.FormData, index int) map[models.Slot]*storage.File {
	n := index + 1
	files := map[models.Slot]*storage.File{
		models.SlotLogoAI: mockFile(
			fmt.Sprintf("logo_ai_%d.eps", n),
			fmt.Sprintf("Mock EPS logo file for %s", form.CompanyNameEng),
		),
		models.SlotLogoJPEG: mockFile(
			fmt.Sprintf("logo_jpeg_%d.jpg", n),
			fmt.Sprintf("Mock JPEG logo file for %s", form.CompanyNameEng),
		),
		models.SlotBrandGuideline: mockFile(
			fmt.Sprintf("brand_guideline_%d.pdf", n),
			fmt.Sprintf("Mock brand guideline PDF for %s\n\n"+
				"This document contains comprehensive brand guidelines including:\n"+
				"- Logo usage\n- Color palette\n- Typography\n- Design principles", form.CompanyNameEng),
		),
		models.SlotSupportingDocument: mockFile(
			fmt.Sprintf("supporting_doc_%d.pdf", n),
			fmt.Sprintf("Supporting Document for %s\n\nCompany: %s\nCategory: %s\n\n"+
				"This document provides detailed information about our entry including:\n"+
				"- Project overview\n- Implementation details\n- Impact assessment\n- Future plans",
				form.EntryTitleEng, form.CompanyNameEng, form.AwardCategory),
		),
	}
	return files
}

func mockFile(name, content string) *storage.File {
	data := []byte(content)
	return &storage.File{
		Name:        name,
		ContentType: storage.ContentTypeFor(name, data),
		Data:        data,
	}
}

func wrap(index int) int {
	n := len(companies)
	return ((index % n) + n) % n
}
