package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opergia/energia-backend/internal/model"
)

var unitColumns = []string{
	"id", "uc_code", "is_generator", "meter_number",
	"distributor_id", "owner_id", "address_id",
	"distributor_login", "distributor_password",
	"last_reading_date", "current_reading_date", "next_reading_date",
	"last_reading", "current_reading", "next_reading",
	"average_consumption",
	"dist_name",
	"cep", "street", "number", "complement", "reference", "neighborhood",
	"postal_code", "city", "state", "country",
}

// unitRow builds a joined unit row; a nil addrID leaves the unit without an
// owned address.
func unitRow(id int64, addrID any) *sqlmock.Rows {
	rows := sqlmock.NewRows(unitColumns)
	if addrID == nil {
		rows.AddRow(id, "UC-001", false, "MTR-9", 1, 2, nil,
			nil, nil,
			nil, nil, nil,
			nil, nil, nil,
			nil,
			"CEMIG",
			nil, nil, nil, nil, nil, nil,
			nil, nil, nil, nil)
		return rows
	}
	rows.AddRow(id, "UC-001", false, "MTR-9", 1, 2, addrID,
		nil, nil,
		nil, nil, nil,
		nil, nil, nil,
		nil,
		"CEMIG",
		"30110-000", "Rua A", "12", nil, nil, "Centro",
		nil, "Belo Horizonte", "MG", "Brasil")
	return rows
}

func TestUnitFindByID_NotFound(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewConsumptionUnitRepo(pool)

	mock.ExpectQuery("FROM consumption_units").WillReturnRows(sqlmock.NewRows(unitColumns))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnitCreate_DuplicateCode(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewConsumptionUnitRepo(pool)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO addresses")).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO consumption_units")).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'UC-001' for key 'uq_units_code'"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), NewConsumptionUnit{
		UCCode:        "UC-001",
		DistributorID: 1,
		OwnerID:       2,
		Address:       model.AddressInput{Street: "Rua A", City: "Belo Horizonte"},
	})
	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitDelete_RemovesOwnedAddress(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewConsumptionUnitRepo(pool)

	mock.ExpectQuery("FROM consumption_units").WillReturnRows(unitRow(1, 9))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM consumption_units WHERE id = ?")).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM addresses WHERE id = ?")).
		WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitDelete_NoAddressIssuesSingleDelete(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewConsumptionUnitRepo(pool)

	mock.ExpectQuery("FROM consumption_units").WillReturnRows(unitRow(1, nil))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM consumption_units WHERE id = ?")).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitDelete_AbsentIsNotAnError(t *testing.T) {
	pool, mock := newMockPool(t)
	repo := NewConsumptionUnitRepo(pool)

	mock.ExpectQuery("FROM consumption_units").WillReturnRows(sqlmock.NewRows(unitColumns))

	deleted, err := repo.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, deleted)
}
