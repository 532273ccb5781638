package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prizeday/contest-backend/internal/services"
)

// UserHandler handles account profile and history HTTP requests
type UserHandler struct {
	authService  services.AuthService
	statsService services.StatsService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService services.AuthService, statsService services.StatsService) *UserHandler {
	return &UserHandler{
		authService:  authService,
		statsService: statsService,
	}
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe handles PUT /users/me
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), c.GetString("userID"), req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// MyStats handles GET /users/me/stats
func (h *UserHandler) MyStats(c *gin.Context) {
	stats, err := h.statsService.UserStats(c.Request.Context(), c.GetString("userEmail"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MyContests handles GET /users/me/contests
func (h *UserHandler) MyContests(c *gin.Context) {
	entries, err := h.statsService.UserContests(c.Request.Context(), c.GetString("userEmail"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contest history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
