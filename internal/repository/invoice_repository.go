package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// InvoiceRepo persists monthly invoices for consumption units.
type InvoiceRepo struct{ pool *database.Pool }

func NewInvoiceRepo(pool *database.Pool) *InvoiceRepo { return &InvoiceRepo{pool: pool} }

const invoiceColumns = `id, consumption_unit_id, reference_month, DATE_FORMAT(due_date, '%Y-%m-%d'), amount, status, observation, pdf_path, created_at`

func scanInvoice(row rowScanner) (*model.Invoice, error) {
	var (
		inv         model.Invoice
		observation sql.NullString
		pdfPath     sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.ConsumptionUnitID, &inv.ReferenceMonth, &inv.DueDate,
		&inv.Amount, &inv.Status, &observation, &pdfPath, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	if observation.Valid {
		inv.Observation = &observation.String
	}
	if pdfPath.Valid {
		inv.PDFPath = &pdfPath.String
	}
	return &inv, nil
}

// FindAll lists invoices, optionally filtered to one consumption unit.
func (r *InvoiceRepo) FindAll(ctx context.Context, unitID *int64) ([]*model.Invoice, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	query := "SELECT " + invoiceColumns + " FROM invoices"
	args := []any{}
	if unitID != nil {
		query += " WHERE consumption_unit_id = ?"
		args = append(args, *unitID)
	}
	query += " ORDER BY reference_month DESC, id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]*model.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// FindByID returns one invoice or ErrNotFound.
func (r *InvoiceRepo) FindByID(ctx context.Context, id int64) (*model.Invoice, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := scanInvoice(db.QueryRowContext(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return inv, err
}

// NewInvoice is the parsed create shape. The referenced consumption unit
// must exist (ErrNotFound otherwise).
type NewInvoice struct {
	ConsumptionUnitID int64
	ReferenceMonth    string
	DueDate           string
	Amount            float64
	Status            model.InvoiceStatus
	Observation       *string
	PDFPath           *string
}

// Create inserts an invoice and returns the stored row.
func (r *InvoiceRepo) Create(ctx context.Context, in NewInvoice) (*model.Invoice, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var unitID int64
	err = db.QueryRowContext(ctx, "SELECT id FROM consumption_units WHERE id = ?", in.ConsumptionUnitID).Scan(&unitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO invoices (consumption_unit_id, reference_month, due_date, amount, status, observation, pdf_path) VALUES (?,?,?,?,?,?,?)",
		in.ConsumptionUnitID, in.ReferenceMonth, in.DueDate, in.Amount, in.Status, in.Observation, in.PDFPath)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Update patches an invoice's own columns; an empty patch issues no UPDATE.
func (r *InvoiceRepo) Update(ctx context.Context, id int64, patch model.InvoicePatch) (*model.Invoice, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var b setBuilder
	addIf(&b, "reference_month", patch.ReferenceMonth)
	addIf(&b, "due_date", patch.DueDate)
	addIf(&b, "amount", patch.Amount)
	addIf(&b, "status", patch.Status)
	addIf(&b, "observation", patch.Observation)
	if !b.empty() {
		if _, err := db.ExecContext(ctx,
			"UPDATE invoices SET "+b.clause()+" WHERE id = ?", append(b.args, id)...); err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// UpdateStatus moves an invoice along its lifecycle.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id int64, status model.InvoiceStatus) (*model.Invoice, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	res, err := db.ExecContext(ctx, "UPDATE invoices SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Either absent or already in the requested status; disambiguate.
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes an invoice, reporting whether a row existed.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
