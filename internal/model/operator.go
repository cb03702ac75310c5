package model

// Operator is the per-user "operador energético" business record. Exactly one
// exists per user; contact fields live in a referenced identification row.
type Operator struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	ResponsiblePersonID *int64 `json:"responsiblePersonId,omitempty"`

	IdentificationID int64 `json:"-"`
	UserID           int64 `json:"-"`
}

// OperatorInput feeds the create-or-update upsert of the caller's business.
type OperatorInput struct {
	Name                string  `json:"name" validate:"required"`
	Email               string  `json:"email" validate:"required,email"`
	Phone               string  `json:"phone" validate:"required"`
	ResponsiblePersonID *string `json:"responsiblePersonId"`
}
