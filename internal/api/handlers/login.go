package handlers

import (
	"net/http"

	"github.com/baharkarakas/bloglist-backend/internal/api/httpx"
	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type LoginHandler struct {
	Users *services.UserService
}

func NewLoginHandler(us *services.UserService) *LoginHandler {
	return &LoginHandler{Users: us}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login answers {token, username, name}.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteBadJSON(w)
		return
	}
	res, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
