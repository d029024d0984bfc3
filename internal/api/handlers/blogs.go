package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/middleware"
	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type BlogHandler struct {
	Blogs *services.BlogService
}

func NewBlogHandler(bs *services.BlogService) *BlogHandler {
	return &BlogHandler{Blogs: bs}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.Blogs.List(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Blogs.Stats(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, st)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BlogInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteBadJSON(w)
		return
	}
	b, err := h.Blogs.Create(r.Context(), middleware.ClaimsFrom(r.Context()), in)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

// Update only looks at likes; every other field in the body is ignored.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Likes any `json:"likes"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteBadJSON(w)
		return
	}
	b, err := h.Blogs.UpdateLikes(r.Context(), chi.URLParam(r, "id"), req.Likes)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Blogs.Delete(r.Context(), middleware.ClaimsFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BlogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comment string `json:"comment"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteBadJSON(w)
		return
	}
	b, err := h.Blogs.AddComment(r.Context(), middleware.ClaimsFrom(r.Context()), chi.URLParam(r, "id"), req.Comment)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}
