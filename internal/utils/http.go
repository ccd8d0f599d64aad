package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every non-2xx control API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON marshals data and writes it with statusCode. When marshaling
// fails a plain 500 is written instead and the error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes {"error": message} with statusCode.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, ErrorResponse{Error: message}, statusCode)
}
