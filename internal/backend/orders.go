package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/fjod/go_cart/storefront-service/domain"
)

const proofField = "bukti_transfer"

// CreateOrder posts the order as multipart/form-data, with the proof file when present.
// The request is sent once, deduplication relies on the Idempotency-Key header.
func (c *Client) CreateOrder(ctx context.Context, order *domain.OrderRequest) (*domain.OrderRecord, error) {
	body, contentType, err := encodeOrderForm(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaksi", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if order.IdempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, order.IdempotencyKey)
	}

	var record domain.OrderRecord
	if err := c.do(ctx, req, &record); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &record, nil
}

func encodeOrderForm(order *domain.OrderRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct {
		name     string
		value    string
		optional bool
	}{
		{"tanggal_pesanan", order.OrderDate, false},
		{"total_harga", order.TotalPrice, false},
		{"status_pembayaran", string(order.PaymentStatus), true},
		{"status_pengiriman", string(order.ShippingStatus), false},
		{"jenis_pengiriman", string(order.DeliveryType), false},
		{"metode_pembayaran", order.PaymentMethod, false},
		{"tanggal_jatuh_tempo", order.DueDate, true},
		{"alamat_pengiriman", order.Address, false},
		{"kode_pos", order.PostalCode, false},
		{"catatan_pembeli", order.Note, true},
	}
	for _, f := range fields {
		if f.optional && f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if order.Proof.Present() {
		filename := order.Proof.Filename
		if filename == "" {
			filename = proofField
		}
		contentType := order.Proof.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(order.Proof.Data)
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, proofField, escapeQuotes(filename)))
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(order.Proof.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
