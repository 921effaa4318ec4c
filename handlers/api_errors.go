package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body every endpoint emits.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given HTTP status.
func WriteJSON(w http.ResponseWriter, httpStatus int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a standardized error response.
func WriteError(w http.ResponseWriter, httpStatus int, detail string) {
	WriteJSON(w, httpStatus, ErrorResponse{Error: detail})
}
