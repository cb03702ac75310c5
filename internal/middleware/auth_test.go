package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/auth"
	"github.com/opergia/energia-backend/internal/database"
	"github.com/opergia/energia-backend/internal/repository"
)

const secret = "mw-test-secret"

func newAuthService(t *testing.T) (*auth.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pool := database.NewPoolWithOpener(func() (*sql.DB, error) { return db, nil })
	return auth.NewService(
		repository.NewUserRepo(pool),
		repository.NewSessionRepo(pool),
		secret, time.Hour, 4, zap.NewNop().Sugar(),
	), mock
}

func doRequest(svc *auth.Service, authorization, sessionID string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		sc := SessionFrom(c)
		return c.JSON(http.StatusOK, echo.Map{"userId": sc.User.ID})
	}
	err := RequireSession(svc)(next)(c)
	return rec, err
}

func TestRequireSession_MissingBearer(t *testing.T) {
	svc, _ := newAuthService(t)
	rec, err := doRequest(svc, "", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_MissingSessionID(t *testing.T) {
	svc, _ := newAuthService(t)
	rec, err := doRequest(svc, "Bearer whatever", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_BadToken(t *testing.T) {
	svc, _ := newAuthService(t)
	rec, err := doRequest(svc, "Bearer not-a-jwt", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_Success(t *testing.T) {
	svc, mock := newAuthService(t)

	token, err := auth.NewAccessToken(secret, 11, "op@example.com", time.Hour)
	require.NoError(t, err)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_sessions WHERE session_id = ? AND is_active = 1")).
		WithArgs("sess-ok").
		WillReturnRows(sqlmock.NewRows(
			[]string{"session_id", "user_id", "login_time", "last_activity", "ip_address", "user_agent", "is_active"}).
			AddRow("sess-ok", 11, now, now, nil, nil, true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password_hash", "whatsapp", "phone", "birth_date", "created_at"}).
			AddRow(11, "Operator", "op@example.com", "$2a$04$hash", nil, nil, nil, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_sessions SET last_activity")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := doRequest(svc, "Bearer "+token, "sess-ok")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":11`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFrom_UnprotectedRoute(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, SessionFrom(c))
}
