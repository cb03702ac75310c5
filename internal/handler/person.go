package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/model"
	"github.com/opergia/energia-backend/internal/repository"
)

// PersonHandler exposes CRUD over people and their related identification,
// address and document rows.
type PersonHandler struct {
	People *repository.PersonRepo
	Log    *zap.SugaredLogger
}

func NewPersonHandler(people *repository.PersonRepo, log *zap.SugaredLogger) *PersonHandler {
	return &PersonHandler{People: people, Log: log}
}

func (h *PersonHandler) List(c echo.Context) error {
	people, err := h.People.FindAll(c.Request().Context())
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, people)
}

func (h *PersonHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	p, err := h.People.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, p)
}

func (h *PersonHandler) Create(c echo.Context) error {
	var in model.PersonInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&in); err != nil {
		return respondErr(c, h.Log, err)
	}
	p, err := h.People.Create(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return created(c, p)
}

func (h *PersonHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var patch model.PersonPatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	p, err := h.People.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, p)
}

func (h *PersonHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	deleted, err := h.People.Delete(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "resource not found")
	}
	return c.NoContent(http.StatusNoContent)
}
