package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/go_cart/storefront-service/domain"
)

type BankForm struct {
	AccountName   string          `json:"nama_rekening"`
	BankType      domain.BankType `json:"bank_tipe"`
	AccountNumber string          `json:"no_rekening"`
}

func (c *Client) MyBanks(ctx context.Context) ([]domain.UserBank, error) {
	var banks []domain.UserBank
	if err := c.doJSON(ctx, http.MethodGet, "/my-banks", nil, &banks); err != nil {
		return nil, fmt.Errorf("failed to get user banks: %w", err)
	}
	if banks == nil {
		banks = []domain.UserBank{}
	}
	return banks, nil
}

// AdminBanks lists the shop's receiving accounts
func (c *Client) AdminBanks(ctx context.Context) ([]domain.AdminBank, error) {
	var banks []domain.AdminBank
	if err := c.doJSON(ctx, http.MethodGet, "/admin-banks", nil, &banks); err != nil {
		return nil, fmt.Errorf("failed to get admin banks: %w", err)
	}
	if banks == nil {
		banks = []domain.AdminBank{}
	}
	return banks, nil
}

func (c *Client) AddBank(ctx context.Context, form BankForm) (*domain.UserBank, error) {
	var bank domain.UserBank
	if err := c.doJSON(ctx, http.MethodPost, "/banks", form, &bank); err != nil {
		return nil, fmt.Errorf("failed to add bank: %w", err)
	}
	return &bank, nil
}

func (c *Client) UpdateBank(ctx context.Context, bankID int64, form BankForm) (*domain.UserBank, error) {
	var bank domain.UserBank
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/banks/%d", bankID), form, &bank); err != nil {
		return nil, fmt.Errorf("failed to update bank: %w", err)
	}
	return &bank, nil
}

func (c *Client) DeleteBank(ctx context.Context, bankID int64) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/banks/%d", bankID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete bank: %w", err)
	}
	return nil
}
