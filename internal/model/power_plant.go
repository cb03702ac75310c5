package model

// PowerPlant is a generation site tied to one generating consumption unit.
// How its energy is split across consuming units lives in the
// plant_distributions table, not on the plant row.
type PowerPlant struct {
	ID                int64    `json:"id"`
	Identification    string   `json:"identification"`
	MonthlyLossPct    *float64 `json:"monthlyLossPercentage,omitempty"`
	ConsumptionUnitID int64    `json:"consumptionUnitId"`
	KwhGenerated      *int64   `json:"kwhGenerated,omitempty"`
	OperationTime     *int64   `json:"operationTime,omitempty"`
}

// PowerPlantInput is the create shape.
type PowerPlantInput struct {
	Identification    string   `json:"identification" validate:"required"`
	MonthlyLossPct    *float64 `json:"monthlyLossPercentage"`
	ConsumptionUnitID string   `json:"consumptionUnitId" validate:"required"`
	KwhGenerated      *int64   `json:"kwhGenerated"`
	OperationTime     *int64   `json:"operationTime"`
}

// PowerPlantPatch is the partial-update shape.
type PowerPlantPatch struct {
	Identification    *string  `json:"identification"`
	MonthlyLossPct    *float64 `json:"monthlyLossPercentage"`
	ConsumptionUnitID *string  `json:"consumptionUnitId"`
	KwhGenerated      *int64   `json:"kwhGenerated"`
	OperationTime     *int64   `json:"operationTime"`
}

// PlantDistribution is one slice of a plant's energy split. All slices of a
// plant must sum to 100 percent.
type PlantDistribution struct {
	ConsumptionUnitID int64   `json:"consumptionUnitId"`
	Percentage        float64 `json:"percentage"`
}
