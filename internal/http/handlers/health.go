package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/safeguard/internal/http/respond"
	"github.com/hongminglow/safeguard/internal/storage"
)

// HealthHandler returns uptime and credential store reachability.
type HealthHandler struct {
	startedAt time.Time
	store     storage.UserStore
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store storage.UserStore) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into the router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, storageState, code := "ok", "ok", http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status, storageState, code = "degraded", "unavailable", http.StatusServiceUnavailable
	}
	respond.JSON(w, code, map[string]string{
		"status":  status,
		"storage": storageState,
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
