package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opergia/energia-backend/internal/model"
)

var plantColumns = []string{"id", "identification", "monthly_loss_pct", "consumption_unit_id", "kwh_generated", "operation_time"}

func plantRow(id, unitID int64) *sqlmock.Rows {
	return sqlmock.NewRows(plantColumns).AddRow(id, "UFV Sol Nascente", 2.5, unitID, 12000, 36)
}

func TestPlantCreate_SeedsFullDistributionToGeneratingUnit(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPowerPlantRepo(pool)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM consumption_units WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO power_plants")).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO plant_distributions (power_plant_id, consumption_unit_id, percentage) VALUES (?,?,100)")).
		WithArgs(int64(2), int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM power_plants").WillReturnRows(plantRow(2, 4))

	p, err := repo.Create(context.Background(), NewPowerPlant{
		Identification:    "UFV Sol Nascente",
		ConsumptionUnitID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlantCreate_UnknownUnit(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPowerPlantRepo(pool)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM consumption_units")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), NewPowerPlant{
		Identification:    "UFV Sol Nascente",
		ConsumptionUnitID: 999,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceDistribution_RejectsBadSlices(t *testing.T) {
	pool, _ := newMockPool(t)
	repo := NewPowerPlantRepo(pool)
	ctx := context.Background()

	cases := map[string][]model.PlantDistribution{
		"empty": {},
		"sum below 100": {
			{ConsumptionUnitID: 1, Percentage: 60},
			{ConsumptionUnitID: 2, Percentage: 30},
		},
		"sum above 100": {
			{ConsumptionUnitID: 1, Percentage: 60},
			{ConsumptionUnitID: 2, Percentage: 50},
		},
		"negative slice": {
			{ConsumptionUnitID: 1, Percentage: 110},
			{ConsumptionUnitID: 2, Percentage: -10},
		},
		"duplicate unit": {
			{ConsumptionUnitID: 1, Percentage: 50},
			{ConsumptionUnitID: 1, Percentage: 50},
		},
	}
	for name, dist := range cases {
		t.Run(name, func(t *testing.T) {
			err := repo.ReplaceDistribution(ctx, 2, dist)
			assert.ErrorIs(t, err, ErrBadDistribution)
		})
	}
}

func TestReplaceDistribution_ToleratesFloatRounding(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPowerPlantRepo(pool)

	// 33.33 * 3 = 99.99 sits inside the ±0.01 tolerance.
	dist := []model.PlantDistribution{
		{ConsumptionUnitID: 1, Percentage: 33.33},
		{ConsumptionUnitID: 2, Percentage: 33.33},
		{ConsumptionUnitID: 3, Percentage: 33.34},
	}

	mock.ExpectQuery("FROM power_plants").WillReturnRows(plantRow(2, 4))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM plant_distributions WHERE power_plant_id = ?")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO plant_distributions (power_plant_id, consumption_unit_id, percentage) VALUES (?, ?, ?),(?, ?, ?),(?, ?, ?)")).
		WillReturnResult(sqlmock.NewResult(3, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceDistribution(context.Background(), 2, dist))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceDistribution_UnknownPlant(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPowerPlantRepo(pool)

	mock.ExpectQuery("FROM power_plants").WillReturnRows(sqlmock.NewRows(plantColumns))

	err := repo.ReplaceDistribution(context.Background(), 77, []model.PlantDistribution{
		{ConsumptionUnitID: 1, Percentage: 100},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlantUpdate_EmptyPatchIssuesNoUpdate(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewPowerPlantRepo(pool)

	mock.ExpectQuery("FROM power_plants").WillReturnRows(plantRow(2, 4))
	mock.ExpectQuery("FROM power_plants").WillReturnRows(plantRow(2, 4))

	_, err := repo.Update(context.Background(), 2, PlantPatch{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
