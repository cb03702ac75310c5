package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// OperatorRepo persists the per-user "operador energético" record. The
// contact fields live in a referenced identification row, so writes follow
// the same insert-then-link pattern as people.
type OperatorRepo struct{ pool *database.Pool }

func NewOperatorRepo(pool *database.Pool) *OperatorRepo { return &OperatorRepo{pool: pool} }

const baseOperatorQuery = `
SELECT o.id, o.identification_id, o.person_id, o.user_id,
       i.name, i.email, i.phone
FROM operators o
LEFT JOIN identifications i ON o.identification_id = i.id`

func scanOperator(row rowScanner) (*model.Operator, error) {
	var (
		op                 model.Operator
		identID, personID  sql.NullInt64
		name, email, phone sql.NullString
	)
	err := row.Scan(&op.ID, &identID, &personID, &op.UserID, &name, &email, &phone)
	if err != nil {
		return nil, err
	}
	if identID.Valid {
		op.IdentificationID = identID.Int64
	}
	if personID.Valid {
		op.ResponsiblePersonID = &personID.Int64
	}
	op.Name = name.String
	op.Email = email.String
	op.Phone = phone.String
	return &op, nil
}

// FindByUserID returns the caller's business record or ErrNotFound.
func (r *OperatorRepo) FindByUserID(ctx context.Context, userID int64) (*model.Operator, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	op, err := scanOperator(db.QueryRowContext(ctx, baseOperatorQuery+" WHERE o.user_id = ?", userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return op, err
}

// Upsert creates the user's operator record on first call and updates it on
// subsequent ones; either path runs in one transaction and returns the
// re-fetched record.
func (r *OperatorRepo) Upsert(ctx context.Context, userID int64, in model.OperatorInput, responsiblePersonID *int64) (*model.Operator, error) {
	current, err := r.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
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

	ident := model.IdentificationInput{Name: in.Name, Email: &in.Email, Phone: &in.Phone}

	if current == nil {
		identID, err := insertIdentification(ctx, tx, ident)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO operators (identification_id, person_id, user_id) VALUES (?,?,?)",
			identID, responsiblePersonID, userID); err != nil {
			return nil, err
		}
	} else {
		if current.IdentificationID != 0 {
			if _, err := tx.ExecContext(ctx,
				"UPDATE identifications SET name = ?, email = ?, phone = ? WHERE id = ?",
				in.Name, in.Email, in.Phone, current.IdentificationID); err != nil {
				return nil, err
			}
		} else {
			identID, err := insertIdentification(ctx, tx, ident)
			if err != nil {
				return nil, err
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE operators SET identification_id = ? WHERE id = ?", identID, current.ID); err != nil {
				return nil, err
			}
		}
		if in.ResponsiblePersonID != nil {
			if _, err := tx.ExecContext(ctx,
				"UPDATE operators SET person_id = ? WHERE id = ?", responsiblePersonID, current.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, userID)
}
