package validator

import "errors"

// ErrValidation matches any ValidationErrors with errors.Is.
var ErrValidation = errors.New("validator: validation failed")
