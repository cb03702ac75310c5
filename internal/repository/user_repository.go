package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// UserRepo persists account credentials.
type UserRepo struct{ pool *database.Pool }

func NewUserRepo(pool *database.Pool) *UserRepo { return &UserRepo{pool: pool} }

// NewUser carries the fields persisted at registration. The password is
// hashed by the auth service before it reaches the repository.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Whatsapp     *string
	Phone        *string
	BirthDate    *time.Time
}

// Create inserts a user and returns the stored row without the hash exposed.
// A duplicate email surfaces as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, in NewUser) (*model.User, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	res, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, whatsapp, phone, birth_date) VALUES (?,?,?,?,?,?)",
		in.Name, email, in.PasswordHash, in.Whatsapp, in.Phone, in.BirthDate)
	if err != nil {
		// MySQL 1062 = duplicate entry on the unique email key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

const userColumns = "id, name, email, password_hash, whatsapp, phone, birth_date, created_at"

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		u         model.User
		whatsapp  sql.NullString
		phone     sql.NullString
		birthDate sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &whatsapp, &phone, &birthDate, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if whatsapp.Valid {
		u.Whatsapp = &whatsapp.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if birthDate.Valid {
		u.BirthDate = &birthDate.Time
	}
	return &u, nil
}

// FindByEmail fetches a user by normalized email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email))
}

// FindByID fetches a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return scanUser(db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
}
