package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// DistributorRepo reads the distributor lookup table. The API surface is
// read-only; rows are seeded by migration.
type DistributorRepo struct{ pool *database.Pool }

func NewDistributorRepo(pool *database.Pool) *DistributorRepo { return &DistributorRepo{pool: pool} }

// FindAll returns every distributor ordered by name.
func (r *DistributorRepo) FindAll(ctx context.Context) ([]*model.Distributor, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM distributors ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Distributor, 0)
	for rows.Next() {
		var d model.Distributor
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// FindByID returns one distributor or ErrNotFound.
func (r *DistributorRepo) FindByID(ctx context.Context, id int64) (*model.Distributor, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var d model.Distributor
	err = db.QueryRowContext(ctx, "SELECT id, name FROM distributors WHERE id = ?", id).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
