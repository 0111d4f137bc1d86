package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorBody covers both error shapes the backend produces.
type errorBody struct {
	Erro    string `json:"erro"`
	Message string `json:"message"`
}

func newError(status int, raw []byte) *Error {
	var eb errorBody
	msg := ""
	if json.Unmarshal(raw, &eb) == nil {
		msg = strings.TrimSpace(eb.Erro)
		if msg == "" {
			msg = strings.TrimSpace(eb.Message)
		}
	}
	if msg == "" {
		trimmed := strings.TrimSpace(string(raw))
		if trimmed != "" && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "<") {
			msg = trimmed
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Status: status, Message: msg}
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Message returns the text to show the user for err: the backend message when
// there is one, else the underlying error text, else fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if root := errors.Unwrap(err); root != nil && root.Error() != "" {
		return root.Error()
	}
	if err.Error() != "" {
		return err.Error()
	}
	return fallback
}
