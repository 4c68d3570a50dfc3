package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/fjod/go_cart/storefront-service/internal/cache"
	"github.com/fjod/go_cart/storefront-service/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	MaxProofBytes = 5 << 20
	ProofField    = "bukti_transfer"
)

type CheckoutHandler struct {
	errorHandler
	svc     service.CheckoutService
	cache   cache.CartCache
	timeout time.Duration
	submits singleflight.Group
}

func NewCheckoutHandler(svc service.CheckoutService, store *auth.Store, timeout time.Duration, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		errorHandler: errorHandler{auth: store, logger: logger},
		svc:          svc,
		timeout:      timeout,
	}
}

// WithCache drops the client's cached cart after a successful submit, the backend empties the cart with the order
func (h *CheckoutHandler) WithCache(c cache.CartCache) *CheckoutHandler {
	h.cache = c
	return h
}

// InitiateCheckoutRequestDTO carries explicit lines. Without lines the backend cart is used.
type InitiateCheckoutRequestDTO struct {
	Items []domain.CartLine `json:"items"`
}

type StepRequestDTO struct {
	Step int `json:"step"`
}

type NoteRequestDTO struct {
	Note string `json:"catatan_pembeli"`
}

// POST /api/v1/clients/{client_id}/checkout
func (h *CheckoutHandler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req InitiateCheckoutRequestDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	client := clientFromRequest(r)
	var (
		session *domain.CheckoutSession
		err     error
	)
	if len(req.Items) > 0 {
		session, err = h.svc.Initialize(ctx, client, req.Items)
	} else {
		session, err = h.svc.InitializeFromCart(ctx, client)
	}
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// GET /api/v1/clients/{client_id}/checkout
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Session(r.Context(), clientFromRequest(r))
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// DELETE /api/v1/clients/{client_id}/checkout
func (h *CheckoutHandler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), clientFromRequest(r)); err != nil {
		h.handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/v1/clients/{client_id}/checkout/step
func (h *CheckoutHandler) SetStep(w http.ResponseWriter, r *http.Request) {
	var req StepRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.respondSession(w, r)(h.svc.AdvanceStep(r.Context(), clientFromRequest(r), req.Step))
}

// PUT /api/v1/clients/{client_id}/checkout/address
func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.AddressRecord
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.respondSession(w, r)(h.svc.SetAddress(r.Context(), clientFromRequest(r), addr))
}

// PUT /api/v1/clients/{client_id}/checkout/payment
func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var selection domain.PaymentSelection
	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		if errors.Is(err, domain.ErrUnknownPaymentType) {
			h.handle(w, r, err)
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.respondSession(w, r)(h.svc.SetPaymentMethod(r.Context(), clientFromRequest(r), selection.Method))
}

// PUT /api/v1/clients/{client_id}/checkout/note
func (h *CheckoutHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	h.respondSession(w, r)(h.svc.SetNote(r.Context(), clientFromRequest(r), req.Note))
}

func (h *CheckoutHandler) respondSession(w http.ResponseWriter, r *http.Request) func(*domain.CheckoutSession, error) {
	return func(session *domain.CheckoutSession, err error) {
		if err != nil {
			h.handle(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, session)
	}
}

// POST /api/v1/clients/{client_id}/checkout/submit
// Accepts multipart/form-data with an optional bukti_transfer file. Concurrent submits
// of one client share a single backend call.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	proof, ok := h.readProof(w, r)
	if !ok {
		return
	}

	client := clientFromRequest(r)

	v, err, shared := h.submits.Do(client.String(), func() (interface{}, error) {
		// callers waiting on this result must not fail because the first one went away
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
		defer cancel()

		record, err := h.svc.Submit(ctx, client, proof)
		if err != nil {
			return nil, err
		}
		invalidateCart(ctx, h.cache, client, h.logger)
		return record, nil
	})
	if shared {
		h.logger.Info("collapsed concurrent checkout submit", zap.String("client", client.String()))
	}
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, v.(*domain.OrderRecord))
}

func (h *CheckoutHandler) readProof(w http.ResponseWriter, r *http.Request) (*domain.ProofArtifact, bool) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, true
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxProofBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxProofBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "proof_too_large", "bukti_transfer must not exceed 5 MiB")
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart body")
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(ProofField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid bukti_transfer file")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxProofBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "failed to read bukti_transfer")
		return nil, false
	}
	if len(data) > MaxProofBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "proof_too_large", "bukti_transfer must not exceed 5 MiB")
		return nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &domain.ProofArtifact{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, true
}
