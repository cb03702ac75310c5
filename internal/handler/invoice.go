package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/opergia/energia-backend/internal/model"
	"github.com/opergia/energia-backend/internal/pdfreader"
	"github.com/opergia/energia-backend/internal/queue"
	"github.com/opergia/energia-backend/internal/repository"
)

// InvoiceHandler exposes invoice CRUD plus the PDF upload flow that delegates
// field extraction to the Python worker.
type InvoiceHandler struct {
	Invoices  *repository.InvoiceRepo
	Units     *repository.ConsumptionUnitRepo
	PDF       *pdfreader.Client
	UploadDir string
	Log       *zap.SugaredLogger
}

func NewInvoiceHandler(inv *repository.InvoiceRepo, units *repository.ConsumptionUnitRepo, pdf *pdfreader.Client, uploadDir string, log *zap.SugaredLogger) *InvoiceHandler {
	return &InvoiceHandler{Invoices: inv, Units: units, PDF: pdf, UploadDir: uploadDir, Log: log}
}

// List returns invoices, optionally filtered by ?consumptionUnitId=.
func (h *InvoiceHandler) List(c echo.Context) error {
	var unitID *int64
	if raw := c.QueryParam("consumptionUnitId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return fail(c, http.StatusBadRequest, "consumptionUnitId must be a numeric id")
		}
		unitID = &id
	}
	invoices, err := h.Invoices.FindAll(c.Request().Context(), unitID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, invoices)
}

func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	inv, err := h.Invoices.FindByID(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, inv)
}

type invoiceCreateReq struct {
	ConsumptionUnitID string  `json:"consumptionUnitId" form:"consumptionUnitId" validate:"required"`
	ReferenceMonth    string  `json:"referenceMonth" form:"referenceMonth" validate:"required,datetime=2006-01"`
	DueDate           string  `json:"dueDate" form:"dueDate" validate:"required,datetime=2006-01-02"`
	Amount            float64 `json:"amount" form:"amount" validate:"gte=0"`
	Status            *string `json:"status" form:"status"`
	Observation       *string `json:"observation" form:"observation"`
}

// Create accepts either a plain JSON/form body or multipart data with a PDF
// attached. With a PDF the reference month, due date and amount come from the
// extraction worker instead of the body.
func (h *InvoiceHandler) Create(c echo.Context) error {
	if fh, err := c.FormFile("pdf"); err == nil && fh != nil {
		return h.createFromPDF(c, fh)
	}
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		return h.createFromPDF(c, fh)
	}

	var req invoiceCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondErr(c, h.Log, err)
	}
	unitID, err := parseFK("consumptionUnitId", req.ConsumptionUnitID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	status := model.InvoiceGenerated
	if req.Status != nil {
		status = model.InvoiceStatus(*req.Status)
		if !status.Valid() {
			return fail(c, http.StatusBadRequest, "unknown invoice status")
		}
	}

	inv, err := h.Invoices.Create(c.Request().Context(), repository.NewInvoice{
		ConsumptionUnitID: unitID,
		ReferenceMonth:    req.ReferenceMonth,
		DueDate:           req.DueDate,
		Amount:            req.Amount,
		Status:            status,
		Observation:       req.Observation,
	})
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return created(c, inv)
}

func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var patch model.InvoicePatch
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&patch); err != nil {
		return respondErr(c, h.Log, err)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fail(c, http.StatusBadRequest, "unknown invoice status")
	}
	inv, err := h.Invoices.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, inv)
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an invoice along its lifecycle.
func (h *InvoiceHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	status := model.InvoiceStatus(req.Status)
	if !status.Valid() {
		return fail(c, http.StatusBadRequest, "unknown invoice status")
	}
	inv, err := h.Invoices.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	return ok(c, inv)
}

func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	deleted, err := h.Invoices.Delete(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "resource not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// createFromPDF stores a local copy of the uploaded PDF, delegates extraction
// to the worker and persists the resulting invoice. The processed event is
// published best-effort; a broker outage never fails the request.
func (h *InvoiceHandler) createFromPDF(c echo.Context, fh *multipart.FileHeader) error {
	unitID, err := parseFK("consumptionUnitId", c.FormValue("consumptionUnitId"))
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	unit, err := h.Units.FindByID(c.Request().Context(), unitID)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	if filepath.Ext(fh.Filename) != ".pdf" {
		return fail(c, http.StatusBadRequest, "only pdf files are accepted")
	}

	src, err := fh.Open()
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	defer src.Close()

	localPath, err := h.saveLocal(fh.Filename, src)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	defer f.Close()

	ctx := c.Request().Context()
	workerPath, err := h.PDF.Upload(ctx, fh.Filename, f)
	if err != nil {
		return respondErr(c, h.Log, err)
	}
	extracted, err := h.PDF.Process(ctx, workerPath)
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	inv, err := h.Invoices.Create(ctx, repository.NewInvoice{
		ConsumptionUnitID: unitID,
		ReferenceMonth:    extracted.Referencia,
		DueDate:           extracted.Vencimento,
		Amount:            extracted.ValorTotal,
		Status:            model.InvoiceGenerated,
		PDFPath:           &localPath,
	})
	if err != nil {
		return respondErr(c, h.Log, err)
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.PublishInvoiceProcessed(pubCtx, queue.InvoiceProcessedEvent{
			InvoiceID:         inv.ID,
			ConsumptionUnitID: inv.ConsumptionUnitID,
			UCCode:            unit.UCCode,
			ReferenceMonth:    inv.ReferenceMonth,
			DueDate:           inv.DueDate,
			Amount:            inv.Amount,
			Status:            string(inv.Status),
			ProcessedAt:       time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return created(c, inv)
}

func (h *InvoiceHandler) saveLocal(original string, src io.Reader) (string, error) {
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(original)
	path := filepath.Join(h.UploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}
