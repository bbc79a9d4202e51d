package helpers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every error response. Error carries the
// underlying failure text and is only set for server errors.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONError writes a {message} body with the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteJSONFailure writes a {message, error} body; used for server errors where the
// cause is reported alongside a generic message.
func WriteJSONFailure(w http.ResponseWriter, statusCode int, message string, err error) {
	body := MessageResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	WriteJSON(w, statusCode, body)
}
