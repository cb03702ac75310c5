package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/middleware"
	"github.com/opergia/energia-backend/internal/model"
	"github.com/opergia/energia-backend/internal/repository"
)

// OperatorHandler exposes the per-user business record. The record belongs to
// the authenticated user; no id travels in the URL.
type OperatorHandler struct {
	Operators *repository.OperatorRepo
	Log       *zap.SugaredLogger
}

func NewOperatorHandler(ops *repository.OperatorRepo, log *zap.SugaredLogger) *OperatorHandler {
	return &OperatorHandler{Operators: ops, Log: log}
}

// Get returns the caller's operator record, 404 before the first save.
func (h *OperatorHandler) Get(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	op, err := h.Operators.FindByUserID(c.Request().Context(), sc.User.ID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, op)
}

// Save creates the record on first call and updates it afterwards.
func (h *OperatorHandler) Save(c echo.Context) error {
	sc := middleware.SessionFrom(c)
	var in model.OperatorInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&in); err != nil {
		return respondErr(c, h.Log, err)
	}
	personID, err := parseFKPtr("responsiblePersonId", in.ResponsiblePersonID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	op, err := h.Operators.Upsert(c.Request().Context(), sc.User.ID, in, personID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, op)
}
