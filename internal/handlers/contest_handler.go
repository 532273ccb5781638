package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prizeday/contest-backend/internal/services"
)

// ContestHandler handles contest statistics, winner listing and the
// selection trigger
type ContestHandler struct {
	statsService     services.StatsService
	winnersService   services.WinnersService
	selectionService services.SelectionService
}

// NewContestHandler creates a new ContestHandler
func NewContestHandler(
	statsService services.StatsService,
	winnersService services.WinnersService,
	selectionService services.SelectionService,
) *ContestHandler {
	return &ContestHandler{
		statsService:     statsService,
		winnersService:   winnersService,
		selectionService: selectionService,
	}
}

// Stats handles GET /contest/stats
func (h *ContestHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.ContestStats(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contest stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Winners handles GET /winners
func (h *ContestHandler) Winners(c *gin.Context) {
	days, err := h.winnersService.ListGrouped(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load winners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// SelectWinners handles POST /admin/contests/:date/sessions/:session/select
// and POST /admin/select-winners.
//
// Without date and session the current session is drawn. force=true
// overrides the minimum-participants guard.
func (h *ContestHandler) SelectWinners(c *gin.Context) {
	force := c.Query("force") == "true"
	date := c.Param("date")
	if date == "" {
		date = c.Query("date")
	}
	sessionStr := c.Param("session")
	if sessionStr == "" {
		sessionStr = c.Query("session")
	}

	var (
		result interface{}
		err    error
	)
	if date == "" && sessionStr == "" {
		result, err = h.selectionService.SelectCurrent(c.Request.Context(), time.Now(), force)
	} else {
		if date == "" || sessionStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date and session must be provided together"})
			return
		}
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (YYYY-MM-DD)"})
			return
		}
		session, perr := strconv.Atoi(sessionStr)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session"})
			return
		}
		result, err = h.selectionService.SelectWinners(c.Request.Context(), date, session, force)
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySelected):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoParticipants), errors.Is(err, services.ErrBelowMinimum):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to select winners"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
