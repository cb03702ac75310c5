package model

import "time"

// ConsumptionUnit is a meterable site, optionally a generator. The address is
// referenced by foreign key and joined on read; distributor credentials allow
// scraping the distributor portal on the unit's behalf.
type ConsumptionUnit struct {
	ID          int64  `json:"id"`
	UCCode      string `json:"ucCode"`
	IsGenerator bool   `json:"isGenerator"`
	MeterNumber string `json:"meterNumber"`

	DistributorID   int64  `json:"distributorId"`
	DistributorName string `json:"distributorName,omitempty"`
	OwnerID         int64  `json:"ownerId"`
	Address         Address `json:"address"`

	DistributorLogin    *string `json:"distributorLogin,omitempty"`
	DistributorPassword *string `json:"distributorPassword,omitempty"`

	LastReadingDate    *time.Time `json:"lastReadingDate,omitempty"`
	CurrentReadingDate *time.Time `json:"currentReadingDate,omitempty"`
	NextReadingDate    *time.Time `json:"nextReadingDate,omitempty"`
	LastReading        *int64     `json:"lastReading,omitempty"`
	CurrentReading     *int64     `json:"currentReading,omitempty"`
	NextReading        *int64     `json:"nextReading,omitempty"`

	AverageConsumption float64 `json:"averageConsumption"`

	AddressID int64 `json:"-"`
}

// ConsumptionUnitInput is the create shape. Foreign keys arrive as strings
// and are parsed at the handler boundary.
type ConsumptionUnitInput struct {
	UCCode              string       `json:"ucCode" validate:"required"`
	IsGenerator         bool         `json:"isGenerator"`
	MeterNumber         string       `json:"meterNumber" validate:"required"`
	DistributorID       string       `json:"distributorId" validate:"required"`
	OwnerID             string       `json:"ownerId" validate:"required"`
	Address             AddressInput `json:"address" validate:"required"`
	DistributorLogin    *string      `json:"distributorLogin"`
	DistributorPassword *string      `json:"distributorPassword"`
}

// ConsumptionUnitPatch is the partial-update shape.
type ConsumptionUnitPatch struct {
	UCCode              *string       `json:"ucCode"`
	IsGenerator         *bool         `json:"isGenerator"`
	MeterNumber         *string       `json:"meterNumber"`
	DistributorID       *string       `json:"distributorId"`
	OwnerID             *string       `json:"ownerId"`
	Address             *AddressPatch `json:"address"`
	DistributorLogin    *string       `json:"distributorLogin"`
	DistributorPassword *string       `json:"distributorPassword"`
}
