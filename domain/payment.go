package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

type PaymentType string

const (
	PaymentTypeCOD             PaymentType = "cod"
	PaymentTypeTransferBank    PaymentType = "transfer_bank"
	PaymentTypeTransferEWallet PaymentType = "transfer_ewallet"
)

var ErrUnknownPaymentType = errors.New("unknown payment type")

// PaymentMethod is one of CashOnDelivery, BankTransfer or EWalletTransfer.
type PaymentMethod interface {
	Type() PaymentType
	paymentMethod()
}

type CashOnDelivery struct{}

// BankTransfer pays from the user's bank account into the shop's account.
type BankTransfer struct {
	Admin *AdminBank
	User  *UserBank
}

// EWalletTransfer is BankTransfer for e-wallet accounts.
type EWalletTransfer struct {
	Admin *AdminBank
	User  *UserBank
}

func (CashOnDelivery) Type() PaymentType  { return PaymentTypeCOD }
func (BankTransfer) Type() PaymentType    { return PaymentTypeTransferBank }
func (EWalletTransfer) Type() PaymentType { return PaymentTypeTransferEWallet }

func (CashOnDelivery) paymentMethod()  {}
func (BankTransfer) paymentMethod()    {}
func (EWalletTransfer) paymentMethod() {}

// BankRefs returns the admin and user accounts of a transfer method, nil for cash on delivery.
func BankRefs(m PaymentMethod) (*AdminBank, *UserBank) {
	switch v := m.(type) {
	case BankTransfer:
		return v.Admin, v.User
	case EWalletTransfer:
		return v.Admin, v.User
	default:
		return nil, nil
	}
}

// RequiresProof reports whether a transfer proof must accompany the order.
func RequiresProof(m PaymentMethod) bool {
	switch m.(type) {
	case BankTransfer, EWalletTransfer:
		return true
	default:
		return false
	}
}

// MethodString is the metode_pembayaran value the order endpoint expects.
func MethodString(m PaymentMethod) string {
	switch m.(type) {
	case BankTransfer, EWalletTransfer:
		return "transfer"
	default:
		return "cod"
	}
}

// PaymentStatusFor derives the initial payment status of an order.
func PaymentStatusFor(m PaymentMethod) PaymentStatus {
	switch m.(type) {
	case CashOnDelivery:
		return PaymentStatusCODPending
	case BankTransfer, EWalletTransfer:
		return PaymentStatusPaid
	default:
		return PaymentStatusUnpaid
	}
}

// PaymentSelection carries a PaymentMethod through JSON as
// {"type": ..., "bank_admin": ..., "bank_user": ...}.
type PaymentSelection struct {
	Method PaymentMethod
}

type paymentSelectionJSON struct {
	Type      PaymentType `json:"type"`
	BankAdmin *AdminBank  `json:"bank_admin,omitempty"`
	BankUser  *UserBank   `json:"bank_user,omitempty"`
}

func (p PaymentSelection) MarshalJSON() ([]byte, error) {
	if p.Method == nil {
		return []byte("null"), nil
	}
	admin, user := BankRefs(p.Method)
	return json.Marshal(paymentSelectionJSON{
		Type:      p.Method.Type(),
		BankAdmin: admin,
		BankUser:  user,
	})
}

func (p *PaymentSelection) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		p.Method = nil
		return nil
	}
	var raw paymentSelectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m, err := NewPaymentMethod(raw.Type, raw.BankAdmin, raw.BankUser)
	if err != nil {
		return err
	}
	p.Method = m
	return nil
}

// NewPaymentMethod builds the variant named by t. Bank references are ignored for cash on delivery.
func NewPaymentMethod(t PaymentType, admin *AdminBank, user *UserBank) (PaymentMethod, error) {
	switch t {
	case PaymentTypeCOD:
		return CashOnDelivery{}, nil
	case PaymentTypeTransferBank:
		return BankTransfer{Admin: admin, User: user}, nil
	case PaymentTypeTransferEWallet:
		return EWalletTransfer{Admin: admin, User: user}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, t)
	}
}
