// Package httpx writes JSON bodies and RFC 7807 problem responses.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Sentinel errors the handlers wrap to select a status code.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("service unavailable")
)

var statusBySentinel = []struct {
	target error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrValidation, http.StatusBadRequest},
	{ErrUnavailable, http.StatusServiceUnavailable},
}

// ProblemDetail is the application/problem+json body.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// StatusFor returns the code RespondError uses for err.
func StatusFor(err error) int {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// RespondError writes err as a problem. Unmapped errors become a 500 with no
// detail so internals never reach the client.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	detail := ""
	if status != http.StatusInternalServerError {
		detail = err.Error()
	}
	Problem(w, status, http.StatusText(status), detail)
}

// Problem writes an RFC 7807 problem response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	write(w, status, "application/problem+json", ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// JSON writes data as an application/json body.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, "application/json", data)
}

func write(w http.ResponseWriter, status int, contentType string, body any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
