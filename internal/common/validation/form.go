package validation

import (
	"sync"

	"awards-portal/internal/models"
)

const (
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	// eight digits, whitespace allowed anywhere
	PhonePattern = `^\s*(?:[0-9]\s*){8}$`

	MaxDescriptionLength = 250
	MinPasswordLength    = 8
)

var formLabels = map[string]string{
	"companyNameEng":         "Company Name (English)",
	"entryTitleEng":          "Entry Title (English)",
	"companyDescription":     "Company description",
	"businessRegNo":          "Business Registration No.",
	"incorporationNo":        "Certificate of Incorporation No.",
	"incorporationDate":      "Date of Incorporation",
	"companyAddress":         "Company Address",
	"primaryContactName":     "Primary Contact Name",
	"primaryContactTitle":    "Primary Contact Title",
	"primaryContactPhone":    "Primary Contact Phone",
	"primaryContactEmail":    "Primary Contact Email",
	"secondaryContactName":   "Secondary Contact Name",
	"secondaryContactTitle":  "Secondary Contact Title",
	"secondaryContactPhone":  "Secondary Contact Phone",
	"secondaryContactEmail":  "Secondary Contact Email",
	"awardCategory":          "Award category",
	"submissionUsage":        "Submission usage agreement",
	"applicationDeclaration": "Application declaration",
	"patentStatus":           "Patent status",
	"intellectualProperty":   "Intellectual property declaration",
	"eventAdminCost":         "Event administration cost agreement",
	"verifyCode":             "Verification code",
}

var requiredText = []string{
	"companyNameEng", "entryTitleEng", "companyDescription", "businessRegNo",
	"incorporationNo", "incorporationDate", "companyAddress",
	"primaryContactName", "primaryContactTitle", "primaryContactPhone", "primaryContactEmail",
	"secondaryContactName", "secondaryContactTitle", "secondaryContactPhone", "secondaryContactEmail",
	"verifyCode",
}

var (
	formSchemaOnce sync.Once
	formSchema     *Schema
)

func applicationFormSchema() *Schema {
	formSchemaOnce.Do(func() {
		props := map[string]interface{}{}
		for _, f := range requiredText {
			props[f] = map[string]interface{}{"type": "string", "minLength": 1}
		}

		props["companyDescription"] = map[string]interface{}{"type": "string", "minLength": 1, "maxLength": MaxDescriptionLength}
		for _, f := range []string{"primaryContactEmail", "secondaryContactEmail"} {
			props[f] = map[string]interface{}{"type": "string", "minLength": 1, "pattern": EmailPattern}
		}
		for _, f := range []string{"primaryContactPhone", "secondaryContactPhone"} {
			props[f] = map[string]interface{}{"type": "string", "minLength": 1, "pattern": PhonePattern}
		}
		for _, f := range []string{"submissionUsage", "applicationDeclaration", "eventAdminCost"} {
			props[f] = map[string]interface{}{"type": "boolean", "enum": []interface{}{true}}
		}

		categories := make([]interface{}, 0, len(models.AwardCategories))
		for _, v := range models.AwardCategoryValues() {
			categories = append(categories, v)
		}
		props["awardCategory"] = map[string]interface{}{"type": "string", "enum": categories}
		props["patentStatus"] = map[string]interface{}{"type": "string", "enum": []interface{}{models.PatentStatusNone, models.PatentStatusHas}}
		props["intellectualProperty"] = map[string]interface{}{"type": "string", "enum": []interface{}{models.IPNoDispute, models.IPHasDispute}}

		required := append([]interface{}{}, "awardCategory", "patentStatus", "intellectualProperty",
			"submissionUsage", "applicationDeclaration", "eventAdminCost")
		for _, f := range requiredText {
			required = append(required, f)
		}

		formSchema = MustSchema(map[string]interface{}{
			"type":       "object",
			"properties": props,
			"required":   required,
		}, formLabels)
	})
	return formSchema
}

// ValidateForm applies the public submission rules to a form.
func ValidateForm(form *models.FormData) *ValidationResult {
	return applicationFormSchema().Validate(form)
}

// ValidateAdminEdit applies the lighter rules used when an administrator
// overwrites a stored application.
func ValidateAdminEdit(form *models.FormData) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if isBlank(form.CompanyNameEng) {
		result.add("companyNameEng", "Company name and entry title are required", "REQUIRED_FIELD_MISSING")
	}
	if isBlank(form.EntryTitleEng) {
		result.add("entryTitleEng", "Company name and entry title are required", "REQUIRED_FIELD_MISSING")
	}
	return result
}
