package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrMalformed is returned for bodies that are not valid JSON.
var ErrMalformed = errors.New("normalize: malformed response body")

const envelopeKey = "data"

// Unwrap returns the value under a top-level "data" key when the body is an
// object carrying one with a non-null value, and the whole body otherwise.
// An empty body yields nil.
func Unwrap(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, ErrMalformed
	}
	if body[0] != '{' {
		return json.RawMessage(body), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	if data, ok := obj[envelopeKey]; ok && !isNull(data) {
		return data, nil
	}
	return json.RawMessage(body), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
