package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hongminglow/safeguard/internal/models/dto"
)

// Messages shared by handlers and middleware.
const (
	MsgServerError        = "Server error"
	MsgInvalidBody        = "Invalid request body"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized"
)

// JSON writes payload as the response body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Message writes a {"message": ...} body. Errors and plain confirmations share it.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, dto.MessageResponse{Message: message})
}
