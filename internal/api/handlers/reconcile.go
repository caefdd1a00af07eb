package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ledger-reconciler/internal/api/dto"
	"ledger-reconciler/internal/domain"
	"ledger-reconciler/internal/gateway"
	"ledger-reconciler/internal/report"
	"ledger-reconciler/internal/usecase"
)

const (
	defaultNameA = "Opera"
	defaultNameB = "POS"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReconcileHandler runs reconciliations over uploaded exports.
type ReconcileHandler struct {
	uc     *usecase.ReconcileUseCase
	loader *gateway.TableLoader
	logger *slog.Logger
}

// NewReconcileHandler creates a new reconciliation handler.
func NewReconcileHandler(uc *usecase.ReconcileUseCase, logger *slog.Logger) *ReconcileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileHandler{
		uc:     uc,
		loader: gateway.NewTableLoader(),
		logger: logger,
	}
}

// Reconcile matches the two uploaded exports and returns the full result as
// JSON.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// Export matches the two uploaded exports and returns the result as an xlsx
// workbook attachment.
func (h *ReconcileHandler) Export(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.ExportWorkbook(&buf, res); err != nil {
		h.logger.Error("workbook export failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	filename := report.Filename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// run loads both uploads and reconciles them, writing the error response
// itself when anything fails.
func (h *ReconcileHandler) run(c *gin.Context) (*domain.Result, bool) {
	tableA, ok := h.readUpload(c, "source_a")
	if !ok {
		return nil, false
	}
	tableB, ok := h.readUpload(c, "source_b")
	if !ok {
		return nil, false
	}

	nameA := c.DefaultPostForm("name_a", defaultNameA)
	nameB := c.DefaultPostForm("name_b", defaultNameB)

	res, err := h.uc.ReconcileTables(c.Request.Context(), tableA, tableB, nameA, nameB)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			c.JSON(http.StatusBadRequest, dto.ValidationError(schemaErr.Error()))
			return nil, false
		}
		h.logger.Error("reconciliation failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	return res, true
}

// readUpload pulls one multipart file out of the request and parses it into a
// table.
func (h *ReconcileHandler) readUpload(c *gin.Context, field string) (*domain.Table, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(field+" file is required"))
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error("could not open upload", "field", field, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	defer f.Close()

	table, err := h.loader.Read(f, fh.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(fmt.Sprintf("could not parse %s: %v", field, err)))
		return nil, false
	}
	return table, true
}
