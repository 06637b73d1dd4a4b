// Package response writes the JSON envelope every endpoint answers with:
// {success, data|message, count?, error?}.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fintrack-server/src/apperr"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// List writes data along with its length. data must not be nil so that an
// empty result encodes as [].
func List[T any](w http.ResponseWriter, data []T) {
	count := len(data)
	JSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: true, Message: msg})
}

func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: false, Message: msg})
}

// Writer converts service errors into failure envelopes. With Detailed set,
// internal failures also carry the underlying error text.
type Writer struct {
	Detailed bool
}

func (wr Writer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	env := Envelope{Success: false, Message: apperr.Message(err)}

	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if wr.Detailed {
			env.Error = err.Error()
		}
	}
	JSON(w, status, env)
}
