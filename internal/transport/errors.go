package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized   = errors.New("transport: unauthorized")
	ErrForbidden      = errors.New("transport: forbidden")
	ErrNotFound       = errors.New("transport: not found")
	ErrServer         = errors.New("transport: server error")
	ErrBadRequest     = errors.New("transport: request rejected")
	ErrNetwork        = errors.New("transport: no response from server")
	ErrSetup          = errors.New("transport: request setup failed")
	ErrInvalidBaseURL = errors.New("transport: invalid base url")
)

// Category classifies a failed exchange.
type Category uint8

const (
	CategoryAuth Category = iota + 1
	CategoryPermission
	CategoryNotFound
	CategoryServer
	CategoryRequest
	CategoryNetwork
	CategorySetup
)

func (c Category) String() string {
	switch c {
	case CategoryAuth:
		return "auth"
	case CategoryPermission:
		return "permission"
	case CategoryNotFound:
		return "not_found"
	case CategoryServer:
		return "server"
	case CategoryRequest:
		return "request"
	case CategoryNetwork:
		return "network"
	case CategorySetup:
		return "setup"
	}
	return "unknown"
}

func (c Category) sentinel() error {
	switch c {
	case CategoryAuth:
		return ErrUnauthorized
	case CategoryPermission:
		return ErrForbidden
	case CategoryNotFound:
		return ErrNotFound
	case CategoryServer:
		return ErrServer
	case CategoryRequest:
		return ErrBadRequest
	case CategoryNetwork:
		return ErrNetwork
	}
	return ErrSetup
}

// CategoryForStatus maps an HTTP error status to its category.
func CategoryForStatus(status int) Category {
	switch {
	case status == http.StatusUnauthorized:
		return CategoryAuth
	case status == http.StatusForbidden:
		return CategoryPermission
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status >= http.StatusInternalServerError:
		return CategoryServer
	}
	return CategoryRequest
}

// Error describes a failed request. Status is zero for network and setup
// failures. Message is the server-supplied message, if any.
type Error struct {
	Err      error
	Method   string
	Path     string
	Message  string
	Status   int
	Category Category
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Category)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the category sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Category.sentinel()}
	}
	return []error{e.Category.sentinel(), e.Err}
}

// ServerMessage returns the server-supplied message carried by err, or "".
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// CategoryOf returns the category of err, or zero when err is not an *Error.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return 0
}

var messageKeys = []string{"message", "mensagem", "error", "erro"}

// serverMessage extracts a human message from an error body.
func serverMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	for _, k := range messageKeys {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
