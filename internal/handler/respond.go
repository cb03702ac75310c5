// Package handler contains the HTTP endpoints. Every reply uses the same
// envelope: {"success":true,"data":...} on success and
// {"success":false,"message":...,"details":[...]} on failure.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/auth"
	"github.com/opergia/energia-backend/internal/pdfreader"
	"github.com/opergia/energia-backend/internal/repository"
	"github.com/opergia/energia-backend/internal/validate"
)

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

func failDetails(c echo.Context, status int, msg string, details []string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg, "details": details})
}

// respondErr maps domain errors onto the error taxonomy. Anything unmapped is
// a 500, logged once here so handlers do not log it again.
func respondErr(c echo.Context, log *zap.SugaredLogger, err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return failDetails(c, http.StatusBadRequest, "validation failed", verr.Details)
	case errors.Is(err, repository.ErrNotFound):
		return fail(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, repository.ErrEmailExists):
		return fail(c, http.StatusConflict, "email already registered")
	case errors.Is(err, repository.ErrDuplicateCode):
		return fail(c, http.StatusConflict, "uc code already registered")
	case errors.Is(err, repository.ErrBadDistribution):
		return fail(c, http.StatusBadRequest, "distribution percentages must be positive, unique per unit and sum to 100")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrUnauthenticated):
		return fail(c, http.StatusUnauthorized, "invalid token or session")
	case errors.Is(err, pdfreader.ErrWorker):
		return fail(c, http.StatusBadGateway, "invoice extraction service failed")
	default:
		log.Errorw("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the :id route param. A non-numeric id is a 400 per the API
// contract, not a 404.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseFK converts a wire-string foreign key into an id.
func parseFK(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &validate.Error{Details: []string{field + " must be a numeric id"}}
	}
	return id, nil
}

// parseFKPtr converts an optional wire-string foreign key.
func parseFKPtr(field string, raw *string) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseFK(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
