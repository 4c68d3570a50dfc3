package domain

import "strings"

// AddressRecord is the shipping address of a checkout. Validation is presence only.
type AddressRecord struct {
	Name       string `json:"nama"`
	Phone      string `json:"no_hp"`
	Email      string `json:"email"`
	Address    string `json:"alamat"`
	PostalCode string `json:"kode_pos"`
}

// MissingFields returns the json names of the fields that are empty or whitespace only.
func (a AddressRecord) MissingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("nama", a.Name)
	check("no_hp", a.Phone)
	check("email", a.Email)
	check("alamat", a.Address)
	check("kode_pos", a.PostalCode)
	return missing
}

func (a AddressRecord) IsComplete() bool {
	return len(a.MissingFields()) == 0
}

// AddressFromProfile pre-fills a shipping address from the user's profile.
func AddressFromProfile(u *UserProfile) AddressRecord {
	if u == nil {
		return AddressRecord{}
	}
	return AddressRecord{
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Address:    u.Address,
		PostalCode: u.PostalCode,
	}
}
