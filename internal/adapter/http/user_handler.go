package http

import (
	"encoding/json"
	"net/http"

	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
	"github.com/Muzammil2410/fiver-sub001/internal/user/usecase"
)

type UserHandler struct {
	users  *usecase.UserUsecase
	logger *logger.Logger
}

func NewUserHandler(users *usecase.UserUsecase, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, logger: log.Named("UserHandler")}
}

func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		IsSeller bool   `json:"isSeller"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password, req.IsSeller)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
