package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/fjod/go_cart/storefront-service/internal/backend"
	"github.com/fjod/go_cart/storefront-service/internal/service"
	"github.com/fjod/go_cart/storefront-service/internal/store"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// errorHandler maps domain, service and backend errors to responses.
// A backend 401/403 logs the client out, so a stale token is not sent again.
type errorHandler struct {
	auth   *auth.Store
	logger *zap.Logger
}

func (e errorHandler) handle(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	if errors.Is(err, backend.ErrUnauthorized) && e.auth != nil {
		if client, ok := auth.HandleFromContext(r.Context()); ok {
			if clearErr := e.auth.Clear(context.WithoutCancel(r.Context()), client); clearErr != nil {
				e.logger.Error("failed to log out unauthorized client",
					zap.String("client", client.String()),
					zap.Error(clearErr))
			}
		}
	}

	if status >= http.StatusInternalServerError {
		e.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondError(w, status, code, message)
}

func classify(err error) (int, string) {
	var apiErr *backend.APIError
	var netErr *service.NetworkError

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "empty_cart"
	case errors.Is(err, service.ErrNoSession):
		return http.StatusNotFound, "no_session"
	case errors.Is(err, service.ErrInvalidAddress):
		return http.StatusUnprocessableEntity, "invalid_address"
	case errors.Is(err, service.ErrInvalidPayment), errors.Is(err, domain.ErrUnknownPaymentType):
		return http.StatusUnprocessableEntity, "invalid_payment"
	case errors.Is(err, service.ErrProofRequired):
		return http.StatusUnprocessableEntity, "proof_required"
	case errors.Is(err, service.ErrProofNotAllowed):
		return http.StatusUnprocessableEntity, "proof_not_allowed"
	case errors.Is(err, service.ErrInvalidStep):
		return http.StatusUnprocessableEntity, "invalid_step"
	case errors.Is(err, service.ErrInvalidCartLine):
		return http.StatusUnprocessableEntity, "invalid_cart_line"
	case errors.Is(err, backend.ErrUnauthorized), errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apiErr.StatusCode, "backend_rejected"
	case errors.As(err, &netErr), errors.As(err, &apiErr), errors.Is(err, backend.ErrTransport):
		return http.StatusBadGateway, "backend_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// StoreHealth reports unhealthy when the session store cannot answer a read
func StoreHealth(kv store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if _, err := kv.Get(ctx, "healthcheck"); err != nil && !errors.Is(err, store.ErrNotFound) {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
