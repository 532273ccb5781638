package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prizeday/contest-backend/internal/models"
	"github.com/prizeday/contest-backend/internal/services"
)

// EntryHandler handles paid contest entry HTTP requests
type EntryHandler struct {
	entryService services.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService services.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// Enter handles POST /entries
func (h *EntryHandler) Enter(c *gin.Context) {
	var req models.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.entryService.Enter(c.Request.Context(), &req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEntryFee),
			errors.Is(err, services.ErrInvalidEmail),
			errors.Is(err, services.ErrInvalidPhone),
			errors.Is(err, services.ErrUPIOnly):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDuplicateEntry), errors.Is(err, services.ErrSessionFull):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPaymentRequired):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register entry"})
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}
