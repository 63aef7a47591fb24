package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrNoToken means no bearer credential is configured outside dev mode
var ErrNoToken = errors.New("no API token configured (set PLANDECK_TOKEN or run with --dev)")

// Error is a non-2xx response from the backend
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsStatus reports whether err is a backend error with the given status
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// decodeError turns a non-2xx response into an *Error. The message comes
// from the body's "error" or "message" field, falling back to the HTTP
// status text.
func decodeError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Error != "" {
		apiErr.Message = payload.Error
	} else if payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}
