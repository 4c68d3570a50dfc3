package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxClientIDLength = 128

// ClientMiddleware resolves {client_id} into the handle that keys every session and token
func ClientMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := strings.TrimSpace(chi.URLParam(r, "client_id"))
		if clientID == "" || len(clientID) > maxClientIDLength || strings.ContainsAny(clientID, ": ") {
			respondError(w, http.StatusBadRequest, "invalid_client_id", "client_id must be a non-empty token without ':' or spaces")
			return
		}

		ctx := auth.WithHandle(r.Context(), domain.Handle(clientID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientFromRequest(r *http.Request) domain.Handle {
	h, _ := auth.HandleFromContext(r.Context())
	return h
}

// LoggingMiddleware writes one structured line per request
func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// MetricsMiddleware records request count and latency labelled by route pattern
func MetricsMiddleware(m *ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			handler := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					handler = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
