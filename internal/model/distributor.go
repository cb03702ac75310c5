package model

// Distributor is a read-only lookup entity seeded by migration.
type Distributor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
