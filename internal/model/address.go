package model

// Address mirrors the 'addresses' table. One address row is owned by exactly
// one parent (person or consumption unit) at a time.
type Address struct {
	ID           int64   `json:"id,omitempty"`
	CEP          string  `json:"cep"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement,omitempty"`
	Reference    *string `json:"reference,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	PostalCode   *string `json:"postalCode,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
}

// AddressInput carries the fields accepted when creating an address row.
type AddressInput struct {
	CEP          string  `json:"cep" validate:"required"`
	Street       string  `json:"street" validate:"required"`
	Number       string  `json:"number" validate:"required"`
	Complement   *string `json:"complement"`
	Reference    *string `json:"reference"`
	Neighborhood string  `json:"neighborhood" validate:"required"`
	PostalCode   *string `json:"postalCode"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	Country      string  `json:"country" validate:"required"`
}

// AddressPatch is the partial-update shape. A nil field is "leave untouched".
type AddressPatch struct {
	CEP          *string `json:"cep"`
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Complement   *string `json:"complement"`
	Reference    *string `json:"reference"`
	Neighborhood *string `json:"neighborhood"`
	PostalCode   *string `json:"postalCode"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
}
