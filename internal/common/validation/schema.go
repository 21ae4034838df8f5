package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON schema plus optional per-field labels used to
// build readable messages.
type Schema struct {
	schema *gojsonschema.Schema
	labels map[string]string
}

func NewSchema(schemaMap map[string]interface{}, labels map[string]string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s, labels: labels}, nil
}

func MustSchema(schemaMap map[string]interface{}, labels map[string]string) *Schema {
	s, err := NewSchema(schemaMap, labels)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks any JSON-serializable document against the schema.
func (s *Schema) Validate(document interface{}) *ValidationResult {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_DOCUMENT"}},
		}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, s.convert(re))
	}
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func (s *Schema) convert(re gojsonschema.ResultError) ValidationError {
	field := re.Field()
	if re.Type() == "required" {
		if p, ok := re.Details()["property"].(string); ok {
			field = p
		}
	}

	label := s.labels[field]
	if label == "" {
		label = field
	}

	switch re.Type() {
	case "required", "string_gte":
		return ValidationError{Field: field, Message: label + " is required", Code: "REQUIRED_FIELD_MISSING"}
	case "string_lte":
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must not exceed %v characters", label, re.Details()["max"]), Code: "MAX_LENGTH_VIOLATION"}
	case "pattern", "format":
		return ValidationError{Field: field, Message: "Invalid " + strings.ToLower(label) + " format", Code: "PATTERN_MISMATCH"}
	case "enum", "const":
		return ValidationError{Field: field, Message: label + " is not an accepted value", Code: "INVALID_ENUM_VALUE"}
	case "invalid_type":
		return ValidationError{Field: field, Message: re.Description(), Code: "INVALID_TYPE"}
	default:
		return ValidationError{Field: field, Message: re.Description(), Code: strings.ToUpper(re.Type())}
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

func (vr *ValidationResult) add(field, message, code string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message, Code: code})
	vr.Valid = false
}
