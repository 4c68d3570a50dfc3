package domain

import "time"

// CheckoutSubmitted is published after the backend accepted an order
type CheckoutSubmitted struct {
	CheckoutID    string    `json:"checkout_id"`
	Client        Handle    `json:"client"`
	OrderID       int64     `json:"order_id"`
	OrderCode     string    `json:"kode_transaksi"`
	TotalAmount   string    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
