// Package queue defines message payloads exchanged over the message broker.
package queue

// InvoiceProcessedEvent is published after an invoice PDF has been extracted
// and persisted. It carries enough for downstream consumers to log or notify
// without querying the primary database.
type InvoiceProcessedEvent struct {
	InvoiceID         int64   `json:"invoice_id"`
	ConsumptionUnitID int64   `json:"consumption_unit_id"`
	UCCode            string  `json:"uc_code"`
	ReferenceMonth    string  `json:"reference_month"`
	DueDate           string  `json:"due_date"`
	Amount            float64 `json:"amount"`
	Status            string  `json:"status"`
	ProcessedAt       string  `json:"processed_at"`
}
