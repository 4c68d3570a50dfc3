package domain

// UserProfile is the authenticated user as returned by the backend.
type UserProfile struct {
	ID         int64  `json:"id"`
	Name       string `json:"nama"`
	Email      string `json:"email"`
	Phone      string `json:"no_hp"`
	Address    string `json:"alamat"`
	PostalCode string `json:"kode_pos"`
	Role       string `json:"role"`
}

func (u UserProfile) IsAdmin() bool {
	return u.Role == "admin"
}

type BankType string

const (
	BankTypeBCA     BankType = "bca"
	BankTypeBNI     BankType = "bni"
	BankTypeBRI     BankType = "bri"
	BankTypeMandiri BankType = "mandiri"
	BankTypeBTN     BankType = "btn"
	BankTypeDana    BankType = "dana"
	BankTypeOVO     BankType = "ovo"
	BankTypeGoPay   BankType = "gopay"
)

func (b BankType) IsEWallet() bool {
	return b == BankTypeDana || b == BankTypeOVO || b == BankTypeGoPay
}

func (b BankType) Valid() bool {
	switch b {
	case BankTypeBCA, BankTypeBNI, BankTypeBRI, BankTypeMandiri, BankTypeBTN,
		BankTypeDana, BankTypeOVO, BankTypeGoPay:
		return true
	}
	return false
}

// AdminBank is a receiving account owned by the shop
type AdminBank struct {
	AccountName   string   `json:"nama_rekening"`
	BankType      BankType `json:"bank_tipe"`
	AccountNumber string   `json:"no_rekening"`
}

// UserBank is a source account registered by the buyer
type UserBank struct {
	ID            int64    `json:"id,omitempty"`
	UserID        int64    `json:"user_id,omitempty"`
	AccountName   string   `json:"nama_rekening"`
	BankType      BankType `json:"bank_tipe"`
	AccountNumber string   `json:"no_rekening"`
}

// CartItem is a backend cart row with its product embedded.
type CartItem struct {
	ID       int64        `json:"id"`
	UserID   int64        `json:"user_id"`
	ItemID   int64        `json:"barang_id"`
	Quantity int32        `json:"jumlah"`
	User     *UserProfile `json:"user,omitempty"`
	Item     Item         `json:"barang"`
}

type Item struct {
	ID        int64  `json:"id"`
	Code      string `json:"kode_barang"`
	Name      string `json:"nama_barang"`
	Brand     string `json:"merek"`
	SellPrice string `json:"harga_jual"`
	Stock     int32  `json:"stok"`
	Unit      string `json:"satuan"`
}
