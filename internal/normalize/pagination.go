package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
)

const paginationKey = "pagination"

// Pagination is the page cursor sent next to list payloads. Raw keeps the
// object exactly as received and is what gets marshaled back out.
type Pagination struct {
	Raw         json.RawMessage `json:"-"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalItems  int             `json:"totalItems"`
	Limit       int             `json:"limit"`
}

// HasNext reports whether a page after CurrentPage exists.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// MarshalJSON echoes Raw when present.
func (p Pagination) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type plain Pagination
	return json.Marshal(plain(p))
}

// ParsePagination reads the top-level "pagination" object of body. It
// returns nil when body is not an object or carries no pagination.
func ParsePagination(body []byte) (*Pagination, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	raw, ok := obj[paginationKey]
	if !ok || isNull(raw) {
		return nil, nil
	}

	p := &Pagination{Raw: append(json.RawMessage(nil), raw...)}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	p.CurrentPage = intField(fields, "currentPage", "paginaAtual", "page")
	p.TotalPages = intField(fields, "totalPages", "totalPaginas")
	p.TotalItems = intField(fields, "totalItems", "totalItens", "total")
	p.Limit = intField(fields, "limit", "limite")
	return p, nil
}

func intField(m map[string]any, keys ...string) int {
	for _, k := range keys {
		if f, ok := m[k].(float64); ok {
			return int(f)
		}
	}
	return 0
}
