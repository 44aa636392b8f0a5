package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the API error envelope so middleware can reject a request
// before any handler runs.
type errorBody struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		StatusCode: status,
		Message:    message,
		Errors:     []string{},
	})
}
