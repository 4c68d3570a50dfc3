package domain

type PaymentStatus string

const (
	PaymentStatusUnpaid     PaymentStatus = "belum_bayar"
	PaymentStatusPaid       PaymentStatus = "lunas"
	PaymentStatusCODPending PaymentStatus = "cod_pending"
)

type ShippingStatus string

const (
	ShippingStatusShipped    ShippingStatus = "dikirim"
	ShippingStatusProcessing ShippingStatus = "dalam_proses"
	ShippingStatusDone       ShippingStatus = "selesai"
)

type DeliveryType string

const (
	DeliveryTypeShipped DeliveryType = "dikirim"
	DeliveryTypePickup  DeliveryType = "diambil_sendiri"
)

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}
