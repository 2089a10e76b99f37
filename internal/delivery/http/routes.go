// Package http exposes the styling services over a JSON API.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Veraticus/easy-style/internal/config"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(NewIPLimiter(rate.Limit(cfg.Server.RateLimitPerIP), cfg.Server.RateBurst)))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", handler.Signup)
			auth.POST("/login", handler.Login)
		}

		private := v1.Group("")
		private.Use(AuthMiddleware(handler.accounts))

		styling := private.Group("/styling")
		{
			styling.POST("/questions", handler.ProposeQuestion)
			styling.POST("/generate", BodyLimitMiddleware(cfg.Server.MaxUploadMB<<20), handler.GenerateStyle)
		}

		history := private.Group("/history")
		{
			history.POST("", handler.SaveHistory)
			history.GET("", handler.ListHistory)
			history.GET("/:id", handler.GetHistory)
			history.POST("/:id/share", handler.ShareHistory)
		}

		purchases := private.Group("/purchase-requests")
		{
			purchases.POST("", handler.CreatePurchaseRequest)
			purchases.GET("", handler.ListPurchaseRequests)
			purchases.POST("/:id/complete", handler.CompletePurchaseRequest)
		}
	}

	return router
}
