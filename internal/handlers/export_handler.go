package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prizeday/contest-backend/internal/contest"
	"github.com/prizeday/contest-backend/internal/services"
)

// ExportHandler handles admin CSV download requests
type ExportHandler struct {
	exportService services.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export handles GET /admin/export?type=participants&date=YYYY-MM-DD
func (h *ExportHandler) Export(c *gin.Context) {
	exportType := c.DefaultQuery("type", "participants")
	date := c.Query("date")
	if date == "" {
		date = contest.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (YYYY-MM-DD)"})
		return
	}

	filename, data, err := h.exportService.ExportCSV(c.Request.Context(), exportType, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}
