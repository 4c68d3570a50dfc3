package domain

import "encoding/json"

// DateLayout is the date format of the order endpoint.
const DateLayout = "2006-01-02"

// PaymentDueDays is how long after ordering a payment is due.
const PaymentDueDays = 7

// ProofArtifact is a user supplied file evidencing a transfer.
type ProofArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Present reports whether the artifact carries any content.
func (p *ProofArtifact) Present() bool {
	return p != nil && len(p.Data) > 0
}

// OrderRequest is the create-order payload, sent as multipart form fields.
type OrderRequest struct {
	OrderDate      string
	TotalPrice     string
	PaymentStatus  PaymentStatus
	ShippingStatus ShippingStatus
	DeliveryType   DeliveryType
	PaymentMethod  string
	DueDate        string
	Address        string
	PostalCode     string
	Note           string
	Proof          *ProofArtifact
	IdempotencyKey string
}

// OrderRecord is the order created by the backend.
type OrderRecord struct {
	ID             int64           `json:"id"`
	Code           string          `json:"kode_transaksi"`
	UserID         int64           `json:"user_id"`
	OrderDate      string          `json:"tanggal_pesanan"`
	TotalPrice     json.RawMessage `json:"total_harga"`
	PaymentStatus  string          `json:"status_pembayaran"`
	ShippingStatus string          `json:"status_pengiriman"`
	DeliveryType   string          `json:"jenis_pengiriman"`
	PaymentMethod  string          `json:"metode_pembayaran"`
	DueDate        string          `json:"tanggal_jatuh_tempo"`
	Address        string          `json:"alamat_pengiriman"`
	PostalCode     string          `json:"kode_pos"`
	Note           string          `json:"catatan_pembeli"`
	ProofPath      string          `json:"bukti_transfer"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}
