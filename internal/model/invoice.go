package model

import "time"

// InvoiceStatus enumerates the lifecycle of a monthly invoice.
type InvoiceStatus string

const (
	InvoiceGenerated InvoiceStatus = "generated"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceContested InvoiceStatus = "contested"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceGenerated, InvoiceSent, InvoicePending, InvoicePaid, InvoiceContested:
		return true
	}
	return false
}

// Invoice is one monthly bill for a consumption unit. ReferenceMonth is
// "YYYY-MM" and DueDate "YYYY-MM-DD", as produced by the PDF extraction
// worker.
type Invoice struct {
	ID                int64         `json:"id"`
	ConsumptionUnitID int64         `json:"consumptionUnitId"`
	ReferenceMonth    string        `json:"referenceMonth"`
	DueDate           string        `json:"dueDate"`
	Amount            float64       `json:"amount"`
	Status            InvoiceStatus `json:"status"`
	Observation       *string       `json:"observation,omitempty"`
	PDFPath           *string       `json:"pdfPath,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// InvoicePatch is the partial-update shape.
type InvoicePatch struct {
	ReferenceMonth *string        `json:"referenceMonth" validate:"omitempty,datetime=2006-01"`
	DueDate        *string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Amount         *float64       `json:"amount"`
	Status         *InvoiceStatus `json:"status"`
	Observation    *string        `json:"observation"`
}
