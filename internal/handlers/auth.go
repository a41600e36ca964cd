package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/auth"
	"github.com/diewo77/fibertelecom/httpx"
	"github.com/diewo77/fibertelecom/internal/clock"
)

type AuthHandler struct {
	cred  auth.Credential
	clock clock.Clock
	log   *zap.Logger
}

func NewAuthHandler(cred auth.Credential, clk clock.Clock, log *zap.Logger) *AuthHandler {
	return &AuthHandler{cred: cred, clock: clk, log: log}
}

type loginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// Login: POST /login {user, password}
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.cred.Verify(req.User, req.Password); err != nil {
		h.log.Warn("login rejected", zap.String("user", req.User), zap.String("remote", r.RemoteAddr))
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, req.User, h.clock.Now())
	h.log.Info("login", zap.String("user", req.User))
	httpx.JSON(w, http.StatusOK, map[string]any{"user": req.User})
}

// Logout: POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}
