package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/model"
	"github.com/opergia/energia-backend/internal/repository"
)

// PowerPlantHandler exposes CRUD over generation sites plus the two
// distribution endpoints that read and replace a plant's energy split.
type PowerPlantHandler struct {
	Plants *repository.PowerPlantRepo
	Log    *zap.SugaredLogger
}

func NewPowerPlantHandler(plants *repository.PowerPlantRepo, log *zap.SugaredLogger) *PowerPlantHandler {
	return &PowerPlantHandler{Plants: plants, Log: log}
}

func (h *PowerPlantHandler) List(c echo.Context) error {
	plants, err := h.Plants.FindAll(c.Request().Context())
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, plants)
}

func (h *PowerPlantHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	p, err := h.Plants.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, p)
}

func (h *PowerPlantHandler) Create(c echo.Context) error {
	var in model.PowerPlantInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&in); err != nil {
		return respondErr(c, h.Log, err)
	}
	unitID, err := parseFK("consumptionUnitId", in.ConsumptionUnitID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	p, err := h.Plants.Create(c.Request().Context(), repository.NewPowerPlant{
		Identification:    in.Identification,
		MonthlyLossPct:    in.MonthlyLossPct,
		ConsumptionUnitID: unitID,
		KwhGenerated:      in.KwhGenerated,
		OperationTime:     in.OperationTime,
	})
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return created(c, p)
}

func (h *PowerPlantHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var patch model.PowerPlantPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	unitID, err := parseFKPtr("consumptionUnitId", patch.ConsumptionUnitID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	p, err := h.Plants.Update(c.Request().Context(), id, repository.PlantPatch{
		Identification:    patch.Identification,
		MonthlyLossPct:    patch.MonthlyLossPct,
		ConsumptionUnitID: unitID,
		KwhGenerated:      patch.KwhGenerated,
		OperationTime:     patch.OperationTime,
	})
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, p)
}

func (h *PowerPlantHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	deleted, err := h.Plants.Delete(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "resource not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDistribution returns the plant's current energy split.
func (h *PowerPlantHandler) GetDistribution(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	dist, err := h.Plants.ListDistribution(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, dist)
}

type distributionReq struct {
	Distribution []model.PlantDistribution `json:"distribution" validate:"required,min=1"`
}

// PutDistribution replaces the whole split atomically. The slices must sum to
// 100 percent or nothing changes.
func (h *PowerPlantHandler) PutDistribution(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req distributionReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, h.Log, err)
	}
	if err := h.Plants.ReplaceDistribution(c.Request().Context(), id, req.Distribution); err != nil {
		return respondErr(c, h.Log, err)
	}
	dist, err := h.Plants.ListDistribution(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, dist)
}
