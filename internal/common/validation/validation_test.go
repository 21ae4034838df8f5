package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/models"
)

func validForm() *models.FormData {
	return &models.FormData{
		CompanyNameEng:         "GreenLife Supplements Co.",
		EntryTitleEng:          "Organic Herbal Health Supplements",
		CompanyDescription:     "綠色生活保健品公司專門研發和生產有機草本保健品",
		BusinessRegNo:          "11223344556",
		IncorporationNo:        "2023003",
		IncorporationDate:      "2024-03-12",
		CompanyAddress:         "15/F, Green Tower, Central, Hong Kong",
		PrimaryContactName:     "Li Ka Chung",
		PrimaryContactTitle:    "Product Manager",
		PrimaryContactPhone:    "7654 3210",
		PrimaryContactEmail:    "li.kachung@greenlife.hk",
		SecondaryContactName:   "Lau Wing Sze",
		SecondaryContactTitle:  "Wellness Coordinator",
		SecondaryContactPhone:  "65432109",
		SecondaryContactEmail:  "lau.wingsze@fitlife.hk",
		AwardCategory:          "health-food-supplement",
		SubmissionUsage:        true,
		ApplicationDeclaration: true,
		PatentStatus:           models.PatentStatusNone,
		IntellectualProperty:   models.IPHasDispute,
		EventAdminCost:         true,
		VerifyCode:             "6J149",
	}
}

func TestValidateForm_Valid(t *testing.T) {
	result := ValidateForm(validForm())
	assert.True(t, result.Valid, result.GetErrorMessages())
	assert.Empty(t, result.Errors)
}

func TestValidateForm_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *models.FormData)
		field  string
		code   string
	}{
		{"missing company name", func(f *models.FormData) { f.CompanyNameEng = "" }, "companyNameEng", "REQUIRED_FIELD_MISSING"},
		{"missing verify code", func(f *models.FormData) { f.VerifyCode = "" }, "verifyCode", "REQUIRED_FIELD_MISSING"},
		{"bad email", func(f *models.FormData) { f.PrimaryContactEmail = "li.kachung@greenlife" }, "primaryContactEmail", "PATTERN_MISMATCH"},
		{"email with space", func(f *models.FormData) { f.SecondaryContactEmail = "lau wing@fitlife.hk" }, "secondaryContactEmail", "PATTERN_MISMATCH"},
		{"short phone", func(f *models.FormData) { f.PrimaryContactPhone = "1234567" }, "primaryContactPhone", "PATTERN_MISMATCH"},
		{"phone with letters", func(f *models.FormData) { f.SecondaryContactPhone = "6543210x" }, "secondaryContactPhone", "PATTERN_MISMATCH"},
		{"long description", func(f *models.FormData) { f.CompanyDescription = strings.Repeat("健", 251) }, "companyDescription", "MAX_LENGTH_VIOLATION"},
		{"unknown category", func(f *models.FormData) { f.AwardCategory = "best-coffee" }, "awardCategory", "INVALID_ENUM_VALUE"},
		{"declaration not accepted", func(f *models.FormData) { f.ApplicationDeclaration = false }, "applicationDeclaration", "INVALID_ENUM_VALUE"},
		{"patent status missing", func(f *models.FormData) { f.PatentStatus = "" }, "patentStatus", "INVALID_ENUM_VALUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			result := ValidateForm(form)
			assert.False(t, result.Valid)
			errs := result.GetErrorsForField(tt.field)
			require.NotEmpty(t, errs, result.GetErrorMessages())
			assert.Equal(t, tt.code, errs[0].Code)
		})
	}
}

func TestValidateForm_DescriptionCountsCharacters(t *testing.T) {
	form := validForm()
	form.CompanyDescription = strings.Repeat("健", 250)
	assert.True(t, ValidateForm(form).Valid)
}

func TestValidateForm_RequiredMessageUsesLabel(t *testing.T) {
	form := validForm()
	form.CompanyAddress = ""

	result := ValidateForm(form)
	require.True(t, result.HasErrors("companyAddress"))
	assert.Equal(t, "Company Address is required", result.GetErrorsForField("companyAddress")[0].Message)
}

func TestValidateAdminEdit(t *testing.T) {
	form := &models.FormData{CompanyNameEng: "X", EntryTitleEng: "Y"}
	assert.True(t, ValidateAdminEdit(form).Valid)

	form.EntryTitleEng = "   "
	result := ValidateAdminEdit(form)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("entryTitleEng"))
	assert.False(t, result.HasErrors("companyNameEng"))
}

func TestValidatePasswordChange(t *testing.T) {
	assert.True(t, ValidatePasswordChange("old-secret", "new-secret", "new-secret").Valid)

	result := ValidatePasswordChange("old-secret", "new-secret", "other-secret")
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("confirmPassword"))

	result = ValidatePasswordChange("old-secret", "short", "short")
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("newPassword"))

	result = ValidatePasswordChange("", "new-secret", "new-secret")
	assert.True(t, result.HasErrors("currentPassword"))
}

func TestSchema_ValidatesArbitraryDocuments(t *testing.T) {
	schema := MustSchema(map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"applicationId"},
		"properties": map[string]interface{}{
			"applicationId": map[string]interface{}{"type": "string", "minLength": 1},
		},
	}, map[string]string{"applicationId": "Application ID"})

	assert.True(t, schema.Validate(map[string]interface{}{"applicationId": "abc"}).Valid)

	result := schema.Validate(map[string]interface{}{})
	assert.False(t, result.Valid)
	require.True(t, result.HasErrors("applicationId"))
	assert.Equal(t, "Application ID is required", result.Errors[0].Message)
}
