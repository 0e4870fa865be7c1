package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gymhub/internal/apiclient"
)

// payload is the `{data, message}` envelope every JSON response uses.
type payload struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload{Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload{Message: msg})
}

// internalError logs the real error and returns a generic message to the
// client, preventing leakage of internal details.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

// upstreamError maps a backend call failure onto our response: backend
// envelope messages pass through with their status, anything else is a 502.
func upstreamError(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	slog.Error("upstream_error", "error", err.Error())
	writeMessage(w, http.StatusBadGateway, "backend unavailable")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
