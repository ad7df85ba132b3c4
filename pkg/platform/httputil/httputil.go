// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	derrors "vetform/pkg/domain-errors"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard JSON error envelope.
// Internal errors omit the description so server details never reach clients.
func WriteError(w http.ResponseWriter, err error) {
	code := derrors.CodeOf(err)
	body := errorBody{Error: string(code)}
	var de *derrors.Error
	if code != derrors.CodeInternal && errors.As(err, &de) {
		body.Description = de.Message
	}
	WriteJSON(w, derrors.ToHTTPStatus(code), body)
}
