package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const maxBodySize = 1 << 20

type pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// paginate slices items by the page and limit query parameters. Unless
// always is set, a request without either parameter gets every item and
// no pagination object.
func paginate(items []record, r *http.Request, always bool) ([]record, *pagination) {
	q := r.URL.Query()
	if !always && !q.Has("page") && !q.Has("limit") {
		return items, nil
	}
	page := positiveInt(q.Get("page"), defaultPage)
	limit := positiveInt(q.Get("limit"), defaultLimit)

	total := len(items)
	pg := &pagination{
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		TotalItems:  total,
		Limit:       limit,
	}
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	return items[start:end], pg
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// send writes payload, wrapped in {"data": ...} in envelope mode.
func (s *Server) send(w http.ResponseWriter, status int, payload any) {
	if s.Enveloped() {
		payload = map[string]any{"data": payload}
	}
	writeJSON(w, status, payload)
}

// sendList writes a listing. A bare listing without pagination is a plain
// array; everything else is an object with data and pagination keys.
func (s *Server) sendList(w http.ResponseWriter, items []record, pg *pagination) {
	if pg == nil && !s.Enveloped() {
		writeJSON(w, http.StatusOK, items)
		return
	}
	body := map[string]any{"data": items}
	if pg != nil {
		body["pagination"] = pg
	}
	writeJSON(w, http.StatusOK, body)
}

// fail writes an error body. Envelope mode uses "message", bare mode the
// Portuguese "mensagem".
func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	key := "mensagem"
	if s.Enveloped() {
		key = "message"
	}
	writeJSON(w, status, map[string]string{key: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request) (record, bool) {
	var body record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&body); err != nil || body == nil {
		return nil, false
	}
	return body, true
}
