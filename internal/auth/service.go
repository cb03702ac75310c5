// Package auth implements registration, the dual-token login scheme (signed
// JWT plus a server-side session row) and the per-request authentication
// gate that cross-checks the two.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/model"
	"github.com/opergia/energia-backend/internal/repository"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// a caller cannot probe which of the two failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken covers every token verification failure.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrUnauthenticated is returned by Authenticate when any of its checks
// fails; the HTTP layer turns it into a 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// Service owns credentials, tokens and the session lifecycle.
type Service struct {
	users    *repository.UserRepo
	sessions *repository.SessionRepo
	secret   string
	ttl      time.Duration
	cost     int
	log      *zap.SugaredLogger
}

func NewService(users *repository.UserRepo, sessions *repository.SessionRepo, secret string, ttl time.Duration, bcryptCost int, log *zap.SugaredLogger) *Service {
	return &Service{users: users, sessions: sessions, secret: secret, ttl: ttl, cost: bcryptCost, log: log}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name      string     `json:"name" validate:"required,min=2"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=6"`
	Whatsapp  *string    `json:"whatsapp"`
	Phone     *string    `json:"phone"`
	BirthDate *time.Time `json:"birthDate"`
}

// Register hashes the password and persists the new user. A reused email
// surfaces as repository.ErrEmailExists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hash, err := HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, repository.NewUser{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Whatsapp:     in.Whatsapp,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
	})
}

// LoginResult bundles what a successful login hands back to the client.
type LoginResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	SessionID string      `json:"sessionId"`
}

// Login verifies the credentials, issues an access token and opens a new
// session. Each login gets its own session row; concurrent sessions per user
// are allowed.
func (s *Service) Login(ctx context.Context, email, password string, ip, userAgent *string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := NewAccessToken(s.secret, u.ID, u.Email, s.ttl)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Create(ctx, uuid.NewString(), u.ID, ip, userAgent)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token, SessionID: sess.SessionID}, nil
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *Service) ValidateToken(raw string) (Claims, error) {
	return ParseAccessToken(s.secret, raw)
}

// Logout deactivates the session. Idempotent.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Invalidate(ctx, sessionID)
}

// SessionContext is the resolved identity attached to an authenticated
// request.
type SessionContext struct {
	User      *model.User
	SessionID string
}

// Authenticate performs the four ordered checks of the dual-token scheme:
//
//  1. the JWT verifies and has not expired;
//  2. the session exists and is still active (token expiry and session
//     invalidation are independent — both must hold);
//  3. the session's stored user id equals the token's user id claim, so a
//     token and session id swapped between accounts never pass together;
//  4. the user referenced by the session still exists.
//
// On success the session's last-activity timestamp is touched; a failed
// touch is logged and does not fail the request.
func (s *Service) Authenticate(ctx context.Context, token, sessionID string) (*SessionContext, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessions.FindActive(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, ErrUnauthenticated
	}
	// Load the user via the session's user id; the claim was only asserted equal.
	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if err := s.sessions.Touch(ctx, sessionID); err != nil {
		s.log.Warnw("session touch failed", "sessionId", sessionID, "err", err)
	}
	return &SessionContext{User: u, SessionID: sessionID}, nil
}

// InvalidateAllSessions force-logs-out everyone. Called once at startup so
// sessions from a previous process cannot be replayed.
func (s *Service) InvalidateAllSessions(ctx context.Context) error {
	return s.sessions.InvalidateAll(ctx)
}
