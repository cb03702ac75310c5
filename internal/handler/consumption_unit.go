package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/model"
	"github.com/opergia/energia-backend/internal/repository"
)

// ConsumptionUnitHandler exposes CRUD over meterable sites. Foreign keys
// arrive as wire strings and are parsed here; a non-numeric id is a 400.
type ConsumptionUnitHandler struct {
	Units *repository.ConsumptionUnitRepo
	Log   *zap.SugaredLogger
}

func NewConsumptionUnitHandler(units *repository.ConsumptionUnitRepo, log *zap.SugaredLogger) *ConsumptionUnitHandler {
	return &ConsumptionUnitHandler{Units: units, Log: log}
}

func (h *ConsumptionUnitHandler) List(c echo.Context) error {
	units, err := h.Units.FindAll(c.Request().Context())
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, units)
}

func (h *ConsumptionUnitHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	u, err := h.Units.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, u)
}

func (h *ConsumptionUnitHandler) Create(c echo.Context) error {
	var in model.ConsumptionUnitInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&in); err != nil {
		return respondErr(c, h.Log, err)
	}
	distributorID, err := parseFK("distributorId", in.DistributorID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	ownerID, err := parseFK("ownerId", in.OwnerID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	u, err := h.Units.Create(c.Request().Context(), repository.NewConsumptionUnit{
		UCCode:              in.UCCode,
		IsGenerator:         in.IsGenerator,
		MeterNumber:         in.MeterNumber,
		DistributorID:       distributorID,
		OwnerID:             ownerID,
		Address:             in.Address,
		DistributorLogin:    in.DistributorLogin,
		DistributorPassword: in.DistributorPassword,
	})
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return created(c, u)
}

func (h *ConsumptionUnitHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var patch model.ConsumptionUnitPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	distributorID, err := parseFKPtr("distributorId", patch.DistributorID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	ownerID, err := parseFKPtr("ownerId", patch.OwnerID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	u, err := h.Units.Update(c.Request().Context(), id, repository.UnitPatch{
		UCCode:              patch.UCCode,
		IsGenerator:         patch.IsGenerator,
		MeterNumber:         patch.MeterNumber,
		DistributorID:       distributorID,
		OwnerID:             ownerID,
		Address:             patch.Address,
		DistributorLogin:    patch.DistributorLogin,
		DistributorPassword: patch.DistributorPassword,
	})
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, u)
}

func (h *ConsumptionUnitHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	deleted, err := h.Units.Delete(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "resource not found")
	}
	return c.NoContent(http.StatusNoContent)
}
