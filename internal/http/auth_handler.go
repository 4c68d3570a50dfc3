package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/fjod/go_cart/storefront-service/internal/backend"
	"go.uber.org/zap"
)

type LoginClient interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
}

type AuthHandler struct {
	errorHandler
	client  LoginClient
	timeout time.Duration
}

func NewAuthHandler(client LoginClient, store *auth.Store, timeout time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		errorHandler: errorHandler{auth: store, logger: logger},
		client:       client,
		timeout:      timeout,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	User *domain.UserProfile `json:"user"`
}

// POST /api/v1/clients/{client_id}/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_credentials", "email and password are required")
		return
	}

	client := clientFromRequest(r)
	result, err := h.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.handle(w, r, err)
		return
	}

	if err := h.auth.Save(ctx, client, result.AccessToken, &result.User); err != nil {
		h.handle(w, r, err)
		return
	}

	h.logger.Info("client logged in", zap.String("client", client.String()))
	respondJSON(w, http.StatusOK, LoginResponseDTO{User: &result.User})
}

// POST /api/v1/clients/{client_id}/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Clear(r.Context(), clientFromRequest(r)); err != nil {
		h.handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
