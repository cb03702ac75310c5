package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// ConsumptionUnitRepo persists meterable sites. The unit's address follows
// the same insert-then-link pattern as a person's, and the distributor name
// is joined in for display.
type ConsumptionUnitRepo struct{ pool *database.Pool }

func NewConsumptionUnitRepo(pool *database.Pool) *ConsumptionUnitRepo {
	return &ConsumptionUnitRepo{pool: pool}
}

const baseUnitQuery = `
SELECT u.id, u.uc_code, u.is_generator, u.meter_number,
       u.distributor_id, u.owner_id, u.address_id,
       u.distributor_login, u.distributor_password,
       u.last_reading_date, u.current_reading_date, u.next_reading_date,
       u.last_reading, u.current_reading, u.next_reading,
       u.average_consumption,
       dist.name,
       a.cep, a.street, a.number, a.complement, a.reference, a.neighborhood,
       a.postal_code, a.city, a.state, a.country
FROM consumption_units u
LEFT JOIN distributors dist ON u.distributor_id = dist.id
LEFT JOIN addresses a ON u.address_id = a.id`

func scanUnit(row rowScanner) (*model.ConsumptionUnit, error) {
	var (
		u model.ConsumptionUnit

		distributorID, ownerID, addrID sql.NullInt64
		login, password                sql.NullString

		lastDate, currentDate, nextDate sql.NullTime
		lastRead, currentRead, nextRead sql.NullInt64
		avg                             sql.NullFloat64

		distName sql.NullString

		aCEP, aStreet, aNumber, aComplement, aReference     sql.NullString
		aNeighborhood, aPostalCode, aCity, aState, aCountry sql.NullString
	)
	err := row.Scan(&u.ID, &u.UCCode, &u.IsGenerator, &u.MeterNumber,
		&distributorID, &ownerID, &addrID,
		&login, &password,
		&lastDate, &currentDate, &nextDate,
		&lastRead, &currentRead, &nextRead,
		&avg,
		&distName,
		&aCEP, &aStreet, &aNumber, &aComplement, &aReference, &aNeighborhood,
		&aPostalCode, &aCity, &aState, &aCountry)
	if err != nil {
		return nil, err
	}
	u.DistributorID = distributorID.Int64
	u.OwnerID = ownerID.Int64
	u.DistributorName = distName.String
	if login.Valid {
		u.DistributorLogin = &login.String
	}
	if password.Valid {
		u.DistributorPassword = &password.String
	}
	if lastDate.Valid {
		u.LastReadingDate = &lastDate.Time
	}
	if currentDate.Valid {
		u.CurrentReadingDate = &currentDate.Time
	}
	if nextDate.Valid {
		u.NextReadingDate = &nextDate.Time
	}
	if lastRead.Valid {
		u.LastReading = &lastRead.Int64
	}
	if currentRead.Valid {
		u.CurrentReading = &currentRead.Int64
	}
	if nextRead.Valid {
		u.NextReading = &nextRead.Int64
	}
	u.AverageConsumption = avg.Float64
	if addrID.Valid {
		u.AddressID = addrID.Int64
		u.Address = model.Address{
			ID:           addrID.Int64,
			CEP:          aCEP.String,
			Street:       aStreet.String,
			Number:       aNumber.String,
			Neighborhood: aNeighborhood.String,
			City:         aCity.String,
			State:        aState.String,
			Country:      aCountry.String,
		}
		if aComplement.Valid {
			u.Address.Complement = &aComplement.String
		}
		if aReference.Valid {
			u.Address.Reference = &aReference.String
		}
		if aPostalCode.Valid {
			u.Address.PostalCode = &aPostalCode.String
		}
	}
	return &u, nil
}

// FindAll returns every consumption unit with distributor and address joined.
func (r *ConsumptionUnitRepo) FindAll(ctx context.Context) ([]*model.ConsumptionUnit, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, baseUnitQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]*model.ConsumptionUnit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// FindByID returns one unit or ErrNotFound.
func (r *ConsumptionUnitRepo) FindByID(ctx context.Context, id int64) (*model.ConsumptionUnit, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	u, err := scanUnit(db.QueryRowContext(ctx, baseUnitQuery+" WHERE u.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// NewConsumptionUnit is the parsed create shape; foreign keys have already
// been converted from their wire strings by the handler.
type NewConsumptionUnit struct {
	UCCode              string
	IsGenerator         bool
	MeterNumber         string
	DistributorID       int64
	OwnerID             int64
	Address             model.AddressInput
	DistributorLogin    *string
	DistributorPassword *string
}

// Create inserts the address row, then the unit referencing it, in one
// transaction, and re-fetches the joined shape after commit.
func (r *ConsumptionUnitRepo) Create(ctx context.Context, in NewConsumptionUnit) (*model.ConsumptionUnit, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	addrID, err := insertAddress(ctx, tx, in.Address)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO consumption_units
		 (uc_code, is_generator, meter_number, distributor_id, owner_id, address_id, distributor_login, distributor_password)
		 VALUES (?,?,?,?,?,?,?,?)`,
		in.UCCode, in.IsGenerator, in.MeterNumber, in.DistributorID, in.OwnerID, addrID,
		in.DistributorLogin, in.DistributorPassword)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	unitID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, unitID)
}

// UnitPatch is the parsed partial-update shape.
type UnitPatch struct {
	UCCode              *string
	IsGenerator         *bool
	MeterNumber         *string
	DistributorID       *int64
	OwnerID             *int64
	Address             *model.AddressPatch
	DistributorLogin    *string
	DistributorPassword *string
}

// Update patches the unit and its address. An address patch updates the
// owned row in place, or inserts one and repoints the foreign key when the
// unit has no address yet.
func (r *ConsumptionUnitRepo) Update(ctx context.Context, id int64, patch UnitPatch) (*model.ConsumptionUnit, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if patch.Address != nil {
		if current.AddressID != 0 {
			err = updateAddress(ctx, tx, current.AddressID, *patch.Address)
		} else {
			var addrID int64
			addrID, err = insertAddress(ctx, tx, addressInputFromPatch(*patch.Address))
			if err == nil {
				_, err = tx.ExecContext(ctx, "UPDATE consumption_units SET address_id = ? WHERE id = ?", addrID, id)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	var b setBuilder
	addIf(&b, "uc_code", patch.UCCode)
	addIf(&b, "is_generator", patch.IsGenerator)
	addIf(&b, "meter_number", patch.MeterNumber)
	addIf(&b, "distributor_id", patch.DistributorID)
	addIf(&b, "owner_id", patch.OwnerID)
	addIf(&b, "distributor_login", patch.DistributorLogin)
	addIf(&b, "distributor_password", patch.DistributorPassword)
	if !b.empty() {
		if _, err := tx.ExecContext(ctx,
			"UPDATE consumption_units SET "+b.clause()+" WHERE id = ?", append(b.args, id)...); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return nil, ErrDuplicateCode
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the unit row and its owned address row.
func (r *ConsumptionUnitRepo) Delete(ctx context.Context, id int64) (bool, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM consumption_units WHERE id = ?", id); err != nil {
		return false, err
	}
	if current.AddressID != 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", current.AddressID); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
