package utils

import (
	"encoding/json"
	"net/http"

	"sales-crm/internal/logger"
)

var respLog logger.Logger = logger.NewNop()

// SetLogger routes response encoding failures to log.
func SetLogger(log logger.Logger) {
	respLog = log
}

// APIResponse represents a standard JSON response structure.
type APIResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	resp := APIResponse{Data: payload}
	if payload == nil {
		resp.Message = http.StatusText(status)
	}
	write(w, status, resp)
}

// RespondMessage sends a bare message with no data.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	write(w, status, APIResponse{Message: message})
}

// RespondError sends a JSON error response with the given status code and error message.
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, APIResponse{Error: message})
}

func write(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		respLog.Error("Error encoding JSON response: %v", err)
	}
}
