package validation

import "strings"

// ValidatePasswordChange checks the new password locally. The current
// password is verified by the identity provider.
func ValidatePasswordChange(current, newPassword, confirm string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if current == "" {
		result.add("currentPassword", "Current password is required", "REQUIRED_FIELD_MISSING")
	}
	if newPassword != confirm {
		result.add("confirmPassword", "New passwords do not match", "PASSWORD_MISMATCH")
		return result
	}
	if len(newPassword) < MinPasswordLength {
		result.add("newPassword", "New password must be at least 8 characters long", "MIN_LENGTH_VIOLATION")
	}
	return result
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
