// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/credvault/internal/errors"
)

var (
	// slugRegex matches lowercase identifiers used for providers and
	// credential types (e.g., "github", "oauth_token").
	slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Slug validates lowercase identifier format (letters, digits, "_" and "-",
// must start with a letter or digit).
var Slug = validation.NewStringRuleWithError(
	func(s string) bool {
		return slugRegex.MatchString(s)
	},
	validation.NewError("validation_slug", "must be a lowercase identifier"),
)
