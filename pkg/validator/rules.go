package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Number is the set of types accepted by numeric rules.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func newRule(check func() bool, field, key, message string, values map[string]any) Rule {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// RequiredString fails for empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return newRule(func() bool {
		return strings.TrimSpace(value) != ""
	}, field, "validation.required", "is required", nil)
}

// MinLenString fails when value has fewer than min runes.
func MinLenString(field, value string, min int) Rule {
	return newRule(func() bool {
		return utf8.RuneCountInString(value) >= min
	}, field, "validation.min_length",
		fmt.Sprintf("must be at least %d characters long", min),
		map[string]any{"min": min})
}

// MaxLenString fails when value has more than max runes.
func MaxLenString(field, value string, max int) Rule {
	return newRule(func() bool {
		return utf8.RuneCountInString(value) <= max
	}, field, "validation.max_length",
		fmt.Sprintf("must not exceed %d characters", max),
		map[string]any{"max": max})
}

// LenString fails unless value has exactly length runes.
func LenString(field, value string, length int) Rule {
	return newRule(func() bool {
		return utf8.RuneCountInString(value) == length
	}, field, "validation.exact_length",
		fmt.Sprintf("must be exactly %d characters long", length),
		map[string]any{"length": length})
}

// Email fails for values that are not a single bare address.
func Email(field, value string) Rule {
	return newRule(func() bool {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}
		at := strings.LastIndexByte(value, '@')
		return at > 0 && strings.Contains(value[at+1:], ".")
	}, field, "validation.email", "must be a valid email address", nil)
}

// RequiredNum fails for the zero value.
func RequiredNum[T Number](field string, value T) Rule {
	return newRule(func() bool {
		return value != 0
	}, field, "validation.required", "is required", nil)
}

// MinNum fails when value is below min.
func MinNum[T Number](field string, value, min T) Rule {
	return newRule(func() bool {
		return value >= min
	}, field, "validation.min",
		fmt.Sprintf("must be at least %v", min),
		map[string]any{"min": min})
}

// MaxNum fails when value is above max.
func MaxNum[T Number](field string, value, max T) Rule {
	return newRule(func() bool {
		return value <= max
	}, field, "validation.max",
		fmt.Sprintf("must not exceed %v", max),
		map[string]any{"max": max})
}

// RequiredSlice fails for empty slices.
func RequiredSlice[T any](field string, value []T) Rule {
	return newRule(func() bool {
		return len(value) > 0
	}, field, "validation.required", "is required", nil)
}

// MaxLenSlice fails when value has more than max items.
func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return newRule(func() bool {
		return len(value) <= max
	}, field, "validation.max_items",
		fmt.Sprintf("must not contain more than %d items", max),
		map[string]any{"max": max})
}

// RequiredMap fails for empty maps.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return newRule(func() bool {
		return len(value) > 0
	}, field, "validation.required", "is required", nil)
}
