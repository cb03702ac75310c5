package model

// Identification holds the naming/contact fields shared by people and
// operators, normalized into its own table.
type Identification struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// IdentificationInput is the create shape; only the name is mandatory.
type IdentificationInput struct {
	Name     string  `json:"name" validate:"required"`
	Nickname *string `json:"nickname"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
}

// IdentificationPatch is the partial-update shape.
type IdentificationPatch struct {
	Name     *string `json:"name"`
	Nickname *string `json:"nickname"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
}

// Document is a typed identity document (CPF, CNPJ, RG, ...).
type Document struct {
	ID     int64  `json:"id,omitempty"`
	Type   string `json:"type"`
	Number string `json:"number"`
}

// DocumentInput is the create shape.
type DocumentInput struct {
	Type   string `json:"type" validate:"required"`
	Number string `json:"number" validate:"required"`
}

// DocumentPatch is the partial-update shape.
type DocumentPatch struct {
	Type   *string `json:"type"`
	Number *string `json:"number"`
}

// Person is a physical ("Física") or legal ("Jurídica") entity. Related rows
// are referenced by foreign key, never embedded; the sub-objects here are the
// joined projection. Missing related rows surface as empty-default values so
// callers never need nil guards.
type Person struct {
	ID       int64   `json:"id"`
	Type     string  `json:"type"`
	Nickname *string `json:"nickname,omitempty"`

	Identification Identification `json:"identification"`
	Address        Address        `json:"address"`
	Document       Document       `json:"document"`

	IdentificationID int64 `json:"-"`
	AddressID        int64 `json:"-"`
	DocumentID       int64 `json:"-"`
}

// PersonInput is the create shape. Address and document are optional.
type PersonInput struct {
	Type           string              `json:"type" validate:"required"`
	Nickname       *string             `json:"nickname"`
	Identification IdentificationInput `json:"identification" validate:"required"`
	Address        *AddressInput       `json:"address"`
	Document       *DocumentInput      `json:"document"`
}

// PersonPatch is the partial-update shape. Each provided sub-object patches
// the existing related row, or inserts one and repoints the foreign key when
// the person does not own that row yet.
type PersonPatch struct {
	Type           *string              `json:"type"`
	Nickname       *string              `json:"nickname"`
	Identification *IdentificationPatch `json:"identification"`
	Address        *AddressPatch        `json:"address"`
	Document       *DocumentPatch       `json:"document"`
}
