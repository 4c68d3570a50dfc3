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

type BankClient interface {
	MyBanks(ctx context.Context) ([]domain.UserBank, error)
	AdminBanks(ctx context.Context) ([]domain.AdminBank, error)
	AddBank(ctx context.Context, form backend.BankForm) (*domain.UserBank, error)
	UpdateBank(ctx context.Context, bankID int64, form backend.BankForm) (*domain.UserBank, error)
	DeleteBank(ctx context.Context, bankID int64) error
}

type BankHandler struct {
	errorHandler
	bankClient BankClient
	timeout    time.Duration
}

func NewBankHandler(bankClient BankClient, store *auth.Store, timeout time.Duration, logger *zap.Logger) *BankHandler {
	return &BankHandler{
		errorHandler: errorHandler{auth: store, logger: logger},
		bankClient:   bankClient,
		timeout:      timeout,
	}
}

// GET /api/v1/clients/{client_id}/banks
func (h *BankHandler) MyBanks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	banks, err := h.bankClient.MyBanks(ctx)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, banks)
}

// GET /api/v1/clients/{client_id}/admin-banks
func (h *BankHandler) AdminBanks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	banks, err := h.bankClient.AdminBanks(ctx)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, banks)
}

// POST /api/v1/clients/{client_id}/banks
func (h *BankHandler) AddBank(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	form, ok := decodeBankForm(w, r)
	if !ok {
		return
	}

	bank, err := h.bankClient.AddBank(ctx, form)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, bank)
}

// PUT /api/v1/clients/{client_id}/banks/{bank_id}
func (h *BankHandler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	bankID, ok := pathID(w, r, "bank_id")
	if !ok {
		return
	}
	form, ok := decodeBankForm(w, r)
	if !ok {
		return
	}

	bank, err := h.bankClient.UpdateBank(ctx, bankID, form)
	if err != nil {
		h.handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bank)
}

// DELETE /api/v1/clients/{client_id}/banks/{bank_id}
func (h *BankHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	bankID, ok := pathID(w, r, "bank_id")
	if !ok {
		return
	}

	if err := h.bankClient.DeleteBank(ctx, bankID); err != nil {
		h.handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBankForm(w http.ResponseWriter, r *http.Request) (backend.BankForm, bool) {
	var form backend.BankForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return form, false
	}
	if strings.TrimSpace(form.AccountName) == "" || strings.TrimSpace(form.AccountNumber) == "" {
		respondError(w, http.StatusBadRequest, "invalid_bank", "nama_rekening and no_rekening are required")
		return form, false
	}
	if !form.BankType.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_bank_type", "unknown bank_tipe "+string(form.BankType))
		return form, false
	}
	return form, true
}
