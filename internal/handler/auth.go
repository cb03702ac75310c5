package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/auth"
	"github.com/opergia/energia-backend/internal/middleware"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *auth.Service
	Log  *zap.SugaredLogger
}

func NewAuthHandler(svc *auth.Service, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{Auth: svc, Log: log}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a user account. A reused email is a 409.
func (h *AuthHandler) Register(c echo.Context) error {
	var req auth.RegisterInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return respondErr(c, h.Log, err)
	}

	u, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return created(c, u)
}

// Login verifies the credentials and hands back the token pair: a signed JWT
// and a fresh session id. Both must accompany every protected request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return respondErr(c, h.Log, err)
	}

	ip := c.RealIP()
	ua := c.Request().UserAgent()
	var ipPtr, uaPtr *string
	if ip != "" {
		ipPtr = &ip
	}
	if ua != "" {
		uaPtr = &ua
	}

	res, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password, ipPtr, uaPtr)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, res)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	return ok(c, sc.User)
}

// Logout deactivates the caller's session. Idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	if err := h.Auth.Logout(c.Request().Context(), sc.SessionID); err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, echo.Map{"loggedOut": true})
}
