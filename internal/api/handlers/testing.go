package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
)

// TestingHandler is mounted only when APP_ENV=test.
type TestingHandler struct {
	Store repository.Store
}

func (h *TestingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "store reset")
	w.WriteHeader(http.StatusNoContent)
}
