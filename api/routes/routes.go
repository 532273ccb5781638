package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prizeday/contest-backend/internal/config"
	"github.com/prizeday/contest-backend/internal/handlers"
	"github.com/prizeday/contest-backend/internal/middleware"
)

// Handlers bundles the handler set wired in main
type Handlers struct {
	Auth    *handlers.AuthHandler
	Entry   *handlers.EntryHandler
	Payment *handlers.PaymentHandler
	Contest *handlers.ContestHandler
	User    *handlers.UserHandler
	Export  *handlers.ExportHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		contest := public.Group("/contest")
		{
			contest.GET("/stats", h.Contest.Stats)
			contest.GET("/winners", h.Contest.Winners)
		}

		payment := public.Group("/payment")
		{
			payment.POST("/order", h.Payment.CreateOrder)
			payment.POST("/verify", h.Payment.VerifyPayment)
			payment.GET("/order/:orderId", h.Payment.OrderStatus)
		}

		// Entry is paid, not authenticated: the payment is the gate.
		public.POST("/entries", h.Entry.Enter)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		users := protected.Group("/users")
		{
			users.GET("/me", h.User.Me)
			users.PUT("/me", h.User.UpdateMe)
			users.GET("/me/stats", h.User.MyStats)
			users.GET("/me/contests", h.User.MyContests)
		}

		admin := protected.Group("/admin")
		{
			// Cron hits the bare route to draw the current session; a
			// specific session is replayed through the dated route.
			admin.POST("/select-winners", h.Contest.SelectWinners)
			admin.POST("/contests/:date/sessions/:session/select", h.Contest.SelectWinners)
			admin.GET("/export", h.Export.Export)
		}
	}

	return router
}
