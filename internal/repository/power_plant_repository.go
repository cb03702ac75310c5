package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// PowerPlantRepo persists generation sites and their energy-distribution
// splits. A plant always references its generating consumption unit; the
// split across consuming units lives in plant_distributions and must sum to
// 100 percent.
type PowerPlantRepo struct{ pool *database.Pool }

func NewPowerPlantRepo(pool *database.Pool) *PowerPlantRepo { return &PowerPlantRepo{pool: pool} }

const basePlantQuery = `
SELECT id, identification, monthly_loss_pct, consumption_unit_id, kwh_generated, operation_time
FROM power_plants`

func scanPlant(row rowScanner) (*model.PowerPlant, error) {
	var (
		p    model.PowerPlant
		loss sql.NullFloat64
		kwh  sql.NullInt64
		op   sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Identification, &loss, &p.ConsumptionUnitID, &kwh, &op)
	if err != nil {
		return nil, err
	}
	if loss.Valid {
		p.MonthlyLossPct = &loss.Float64
	}
	if kwh.Valid {
		p.KwhGenerated = &kwh.Int64
	}
	if op.Valid {
		p.OperationTime = &op.Int64
	}
	return &p, nil
}

// FindAll returns every power plant.
func (r *PowerPlantRepo) FindAll(ctx context.Context) ([]*model.PowerPlant, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, basePlantQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plants := make([]*model.PowerPlant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

// FindByID returns one plant or ErrNotFound.
func (r *PowerPlantRepo) FindByID(ctx context.Context, id int64) (*model.PowerPlant, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	p, err := scanPlant(db.QueryRowContext(ctx, basePlantQuery+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// NewPowerPlant is the parsed create shape.
type NewPowerPlant struct {
	Identification    string
	MonthlyLossPct    *float64
	ConsumptionUnitID int64
	KwhGenerated      *int64
	OperationTime     *int64
}

// Create inserts the plant and seeds its distribution with 100% to the
// generating unit, in one transaction. The referenced consumption unit must
// exist (ErrNotFound otherwise).
func (r *PowerPlantRepo) Create(ctx context.Context, in NewPowerPlant) (*model.PowerPlant, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var unitID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM consumption_units WHERE id = ?", in.ConsumptionUnitID).Scan(&unitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO power_plants (identification, monthly_loss_pct, consumption_unit_id, kwh_generated, operation_time) VALUES (?,?,?,?,?)",
		in.Identification, in.MonthlyLossPct, in.ConsumptionUnitID, in.KwhGenerated, in.OperationTime)
	if err != nil {
		return nil, err
	}
	plantID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Until the operator configures a split, all generated energy is
	// allocated to the generating unit itself.
	_, err = tx.ExecContext(ctx,
		"INSERT INTO plant_distributions (power_plant_id, consumption_unit_id, percentage) VALUES (?,?,100)",
		plantID, in.ConsumptionUnitID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, plantID)
}

// PlantPatch is the parsed partial-update shape.
type PlantPatch struct {
	Identification    *string
	MonthlyLossPct    *float64
	ConsumptionUnitID *int64
	KwhGenerated      *int64
	OperationTime     *int64
}

// Update patches the plant's own columns; an empty patch issues no UPDATE.
func (r *PowerPlantRepo) Update(ctx context.Context, id int64, patch PlantPatch) (*model.PowerPlant, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var b setBuilder
	addIf(&b, "identification", patch.Identification)
	addIf(&b, "monthly_loss_pct", patch.MonthlyLossPct)
	addIf(&b, "consumption_unit_id", patch.ConsumptionUnitID)
	addIf(&b, "kwh_generated", patch.KwhGenerated)
	addIf(&b, "operation_time", patch.OperationTime)
	if !b.empty() {
		if _, err := db.ExecContext(ctx,
			"UPDATE power_plants SET "+b.clause()+" WHERE id = ?", append(b.args, id)...); err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the plant; its distribution rows go with it via the cascade
// on plant_distributions.
func (r *PowerPlantRepo) Delete(ctx context.Context, id int64) (bool, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM power_plants WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListDistribution returns the plant's current split.
func (r *PowerPlantRepo) ListDistribution(ctx context.Context, plantID int64) ([]model.PlantDistribution, error) {
	if _, err := r.FindByID(ctx, plantID); err != nil {
		return nil, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		"SELECT consumption_unit_id, percentage FROM plant_distributions WHERE power_plant_id = ? ORDER BY consumption_unit_id",
		plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dist := make([]model.PlantDistribution, 0)
	for rows.Next() {
		var d model.PlantDistribution
		if err := rows.Scan(&d.ConsumptionUnitID, &d.Percentage); err != nil {
			return nil, err
		}
		dist = append(dist, d)
	}
	return dist, rows.Err()
}

// ReplaceDistribution swaps the plant's whole split in one transaction. The
// slices must be positive, name each unit at most once and sum to 100
// (±0.01); otherwise ErrBadDistribution and nothing changes.
func (r *PowerPlantRepo) ReplaceDistribution(ctx context.Context, plantID int64, dist []model.PlantDistribution) error {
	if len(dist) == 0 {
		return ErrBadDistribution
	}
	sum := 0.0
	seen := make(map[int64]bool, len(dist))
	for _, d := range dist {
		if d.Percentage <= 0 || seen[d.ConsumptionUnitID] {
			return ErrBadDistribution
		}
		seen[d.ConsumptionUnitID] = true
		sum += d.Percentage
	}
	if math.Abs(sum-100) > 0.01 {
		return ErrBadDistribution
	}

	if _, err := r.FindByID(ctx, plantID); err != nil {
		return err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM plant_distributions WHERE power_plant_id = ?", plantID); err != nil {
		return err
	}

	query := "INSERT INTO plant_distributions (power_plant_id, consumption_unit_id, percentage) VALUES "
	args := make([]any, 0, len(dist)*3)
	for i, d := range dist {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, plantID, d.ConsumptionUnitID, d.Percentage)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}
