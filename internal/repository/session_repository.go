package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/model"
)

// SessionRepo persists login sessions. Sessions are only ever deactivated,
// never deleted, so the login history survives logout.
type SessionRepo struct{ pool *database.Pool }

func NewSessionRepo(pool *database.Pool) *SessionRepo { return &SessionRepo{pool: pool} }

// Create inserts an active session row for one login.
func (r *SessionRepo) Create(ctx context.Context, sessionID string, userID int64, ip, userAgent *string) (*model.Session, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx,
		"INSERT INTO user_sessions (session_id, user_id, login_time, last_activity, ip_address, user_agent, is_active) VALUES (?,?,?,?,?,?,1)",
		sessionID, userID, now, now, ip, userAgent)
	if err != nil {
		return nil, err
	}
	return &model.Session{
		SessionID:    sessionID,
		UserID:       userID,
		LoginTime:    now,
		LastActivity: now,
		IPAddress:    ip,
		UserAgent:    userAgent,
		IsActive:     true,
	}, nil
}

// FindActive returns the session only while it is still active; an inactive
// or unknown session id yields ErrNotFound.
func (r *SessionRepo) FindActive(ctx context.Context, sessionID string) (*model.Session, error) {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var (
		s         model.Session
		ip        sql.NullString
		userAgent sql.NullString
	)
	err = db.QueryRowContext(ctx,
		"SELECT session_id, user_id, login_time, last_activity, ip_address, user_agent, is_active FROM user_sessions WHERE session_id = ? AND is_active = 1 LIMIT 1",
		sessionID).Scan(&s.SessionID, &s.UserID, &s.LoginTime, &s.LastActivity, &ip, &userAgent, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ip.Valid {
		s.IPAddress = &ip.String
	}
	if userAgent.Valid {
		s.UserAgent = &userAgent.String
	}
	return &s, nil
}

// Touch updates the session's last-activity timestamp.
func (r *SessionRepo) Touch(ctx context.Context, sessionID string) error {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"UPDATE user_sessions SET last_activity = ? WHERE session_id = ?",
		time.Now().UTC(), sessionID)
	return err
}

// Invalidate deactivates one session. Idempotent: deactivating an already
// inactive session is not an error.
func (r *SessionRepo) Invalidate(ctx context.Context, sessionID string) error {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"UPDATE user_sessions SET is_active = 0 WHERE session_id = ?", sessionID)
	return err
}

// InvalidateAll deactivates every active session. Run at process startup so
// tokens surviving a restart cannot ride a stale session.
func (r *SessionRepo) InvalidateAll(ctx context.Context) error {
	db, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"UPDATE user_sessions SET is_active = 0 WHERE is_active = 1")
	return err
}
