package validator

import (
	"errors"
	"strings"
)

// ValidationError describes one failed rule for one field.
// TranslationKey and TranslationValues let callers re-render Message in
// another language with Translate.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationErrors collects every failed rule of one Apply call.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationErrors.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field has at least one error.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (v ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range v {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// GetErrors returns the errors recorded for field.
func (v ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, e := range v {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first message, or "" when there are no errors.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Field + " " + v[0].Message
}

// Translate rewrites Message in place using fn. Errors without a
// TranslationKey keep their message. A nil fn is a no-op.
func (v ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range v {
		if v[i].TranslationKey == "" {
			continue
		}
		v[i].Message = fn(v[i].TranslationKey, v[i].TranslationValues)
	}
}

// Rule is a deferred check. Error is reported when Check returns false.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns ValidationErrors for those that failed,
// or nil when all passed.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check == nil || r.Check() {
			continue
		}
		errs = append(errs, r.Error)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
