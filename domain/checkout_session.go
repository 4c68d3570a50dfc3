package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StateKey is the store key a checkout session is persisted under.
const StateKey = "checkout_state"

// CheckoutSession is the client-held assembly of an order before submission.
type CheckoutSession struct {
	ID              string           `json:"id"`
	IdempotencyKey  string           `json:"idempotency_key"`
	Step            int              `json:"step"`
	CartSnapshot    []CartLine       `json:"keranjang_items"`
	ShippingAddress AddressRecord    `json:"alamat_pengiriman"`
	Payment         PaymentSelection `json:"payment_method"`
	Note            string           `json:"catatan_pembeli"`
	ComputedTotal   decimal.Decimal  `json:"total_harga"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PaymentMethod returns the selected method, cash on delivery when none is set.
func (s *CheckoutSession) PaymentMethod() PaymentMethod {
	if s.Payment.Method == nil {
		return CashOnDelivery{}
	}
	return s.Payment.Method
}
