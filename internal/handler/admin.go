package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vyaha-be/internal/apperror"
	"vyaha-be/internal/metrics"
	"vyaha-be/internal/middleware"
	"vyaha-be/internal/product"
	"vyaha-be/internal/report"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Default.Snapshot())
}

func (h *Handler) ExportProducts(c *gin.Context) {
	var status *product.Status
	if raw := strings.ToLower(strings.TrimSpace(c.Query("status"))); raw != "" {
		s := product.Status(raw)
		if !s.Valid() {
			respondError(c, apperror.Validation("invalid status filter", map[string]string{"status": "unknown status"}))
			return
		}
		status = &s
	}

	// Rendered into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.reports.ExportProducts(c.Request.Context(), middleware.Identity(c), status, &buf); err != nil {
		respondError(c, err)
		return
	}
	sendSpreadsheet(c, "products", buf.Bytes())
}

func (h *Handler) ExportOrders(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reports.ExportOrders(c.Request.Context(), middleware.Identity(c), orderStatusQuery(c), &buf); err != nil {
		respondError(c, err)
		return
	}
	sendSpreadsheet(c, "orders", buf.Bytes())
}

func sendSpreadsheet(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, report.ContentType, data)
}
