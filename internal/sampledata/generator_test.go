package sampledata

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/common/validation"
	"awards-portal/internal/models"
)

func TestGenerate_FirstProfile(t *testing.T) {
	form := Generate(0)

	assert.Equal(t, "HealthTech Innovations Ltd", form.CompanyNameEng)
	assert.Equal(t, "health-innovation", form.AwardCategory)
	assert.Equal(t, "Chan Tai Man", form.PrimaryContactName)
	assert.Equal(t, "Wong Mei Ling", form.SecondaryContactName)
	assert.Equal(t, "2022-01-10", form.IncorporationDate)
	assert.Equal(t, "https://youtube.com/watch?v=sample1", form.VideoLink)
	assert.Equal(t, models.PatentStatusNone, form.PatentStatus)
	assert.Equal(t, models.IPNoDispute, form.IntellectualProperty)
	assert.Equal(t, "6J149", form.VerifyCode)
	assert.True(t, form.SubmissionUsage)
	assert.True(t, form.ApplicationDeclaration)
	assert.True(t, form.EventAdminCost)
}

func TestGenerate_DerivedFields(t *testing.T) {
	tests := []struct {
		index   int
		date    string
		patent  string
		ip      string
		contact string
	}{
		{1, "2023-02-11", models.PatentStatusHas, models.IPHasDispute, "Li Ka Chung"},
		{3, "2022-04-13", models.PatentStatusHas, models.IPNoDispute, "Cheung Ho Fai"},
		{9, "2022-01-19", models.PatentStatusHas, models.IPNoDispute, "Chan Tai Man"},
	}

	for _, tt := range tests {
		form := Generate(tt.index)
		assert.Equal(t, tt.date, form.IncorporationDate, "index %d", tt.index)
		assert.Equal(t, tt.patent, form.PatentStatus, "index %d", tt.index)
		assert.Equal(t, tt.ip, form.IntellectualProperty, "index %d", tt.index)
		assert.Equal(t, tt.contact, form.SecondaryContactName, "index %d", tt.index)
	}
}

func TestGenerate_WrapsIndex(t *testing.T) {
	assert.Equal(t, Generate(3), Generate(13))
	assert.Equal(t, Generate(9), Generate(-1))
	assert.Equal(t, 10, Size())
}

func TestGenerate_ProfilesPassFormValidation(t *testing.T) {
	for i := 0; i < Size(); i++ {
		form := Generate(i)
		assert.LessOrEqual(t, utf8.RuneCountInString(form.CompanyDescription), 250, form.CompanyNameEng)

		result := validation.ValidateForm(&form)
		assert.True(t, result.Valid, "%s: %v", form.CompanyNameEng, result.Errors)
	}
}

func TestMockFiles(t *testing.T) {
	form := Generate(2)
	files := MockFiles(form, 2)
	require.Len(t, files, len(models.Slots))

	assert.Equal(t, "logo_ai_3.eps", files[models.SlotLogoAI].Name)
	assert.Equal(t, "application/postscript", files[models.SlotLogoAI].ContentType)
	assert.Equal(t, "logo_jpeg_3.jpg", files[models.SlotLogoJPEG].Name)
	assert.Equal(t, "image/jpeg", files[models.SlotLogoJPEG].ContentType)
	assert.Equal(t, "brand_guideline_3.pdf", files[models.SlotBrandGuideline].Name)
	assert.Equal(t, "application/pdf", files[models.SlotBrandGuideline].ContentType)
	assert.Equal(t, "supporting_doc_3.pdf", files[models.SlotSupportingDocument].Name)

	assert.Contains(t, string(files[models.SlotLogoAI].Data), "GreenLife Supplements Co.")
	assert.Contains(t, string(files[models.SlotSupportingDocument].Data), "Category: health-food-supplement")
}
