package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/repository"
)

// DistributorHandler exposes the read-only distributor catalog.
type DistributorHandler struct {
	Distributors *repository.DistributorRepo
	Log          *zap.SugaredLogger
}

func NewDistributorHandler(d *repository.DistributorRepo, log *zap.SugaredLogger) *DistributorHandler {
	return &DistributorHandler{Distributors: d, Log: log}
}

func (h *DistributorHandler) List(c echo.Context) error {
	list, err := h.Distributors.FindAll(c.Request().Context())
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, list)
}

func (h *DistributorHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	d, err := h.Distributors.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, d)
}
