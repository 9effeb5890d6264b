package routes

import (
	"gigcampus_backend/internal/auth"
	"gigcampus_backend/internal/config"
	"gigcampus_backend/internal/handlers"
	"gigcampus_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func perMinute(n int) (rate.Limit, int) {
	return rate.Limit(float64(n) / 60.0), n
}

// RegisterRoutes wires the full /api/v1 surface. Read endpoints on
// projects and ratings are public; everything that writes requires a
// valid token.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, jwt *auth.JWTManager, cfg *config.Config) {
	authRequired := middleware.AuthMiddleware(jwt)
	authOptional := middleware.OptionalAuthMiddleware(jwt)

	r.GET("/health", h.HealthHandler.Check)

	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		// Brute-force protection on the credential endpoints only.
		loginLimiter := middleware.RateLimitPerIP(perMinute(cfg.RateLimit.AuthPerMinute))
		users.POST("/register", loginLimiter, h.AuthHandler.Register)
		users.POST("/login", loginLimiter, h.AuthHandler.Login)

		users.GET("/me", authRequired, h.UserHandler.GetMe)
		users.PUT("/me", authRequired, h.UserHandler.UpdateMe)
		users.PUT("/me/password", authRequired, h.AuthHandler.ChangePassword)
		users.GET("/me/stats", authRequired, h.UserHandler.GetMyStats)
		users.GET("", h.UserHandler.List)
		users.GET("/:id", h.UserHandler.GetUser)
	}

	projects := api.Group("/projects")
	{
		projects.GET("", authOptional, h.ProjectHandler.List)
		projects.GET("/:id", authOptional, h.ProjectHandler.Get)

		projects.POST("", authRequired, h.ProjectHandler.Create)
		projects.PUT("/:id", authRequired, h.ProjectHandler.Update)
		projects.DELETE("/:id", authRequired, h.ProjectHandler.Delete)
		projects.POST("/:id/accept-bid/:bidId", authRequired, h.ProjectHandler.AcceptBid)
		projects.POST("/:id/complete", authRequired, h.ProjectHandler.Complete)
	}

	bids := api.Group("/bids")
	bids.Use(authRequired)
	{
		bids.POST("", h.BidHandler.Create)
		bids.GET("/my", h.BidHandler.GetMine)
		bids.GET("/project/:projectId", h.BidHandler.GetByProject)
		bids.GET("/:id", h.BidHandler.Get)
		bids.PUT("/:id", h.BidHandler.Update)
		bids.DELETE("/:id", h.BidHandler.Withdraw)
	}

	ratings := api.Group("/ratings")
	{
		ratings.GET("/user/:userId", h.RatingHandler.GetForUser)
		ratings.GET("/project/:projectId", h.RatingHandler.GetForProject)

		ratings.POST("", authRequired, h.RatingHandler.Create)
		ratings.GET("/my", authRequired, h.RatingHandler.GetMine)
		ratings.PUT("/:id", authRequired, h.RatingHandler.Update)
		ratings.POST("/:id/helpful", authRequired, h.RatingHandler.VoteHelpful)
	}

	messages := api.Group("/messages")
	messages.Use(authRequired)
	{
		// Spam guard on sending, reads are unlimited.
		sendLimiter := middleware.RateLimitPerIP(perMinute(cfg.RateLimit.MessagePerMinute))
		messages.POST("", sendLimiter, h.MessageHandler.Send)

		messages.GET("/project/:projectId", h.MessageHandler.GetByProject)
		messages.GET("/conversations", h.MessageHandler.GetConversations)
		messages.GET("/unread-count", h.MessageHandler.UnreadCount)
		messages.PUT("/:id", h.MessageHandler.Edit)
		messages.DELETE("/:id", h.MessageHandler.Delete)
		messages.POST("/:id/read", h.MessageHandler.MarkRead)
	}

	payments := api.Group("/payments")
	payments.Use(authRequired)
	{
		payments.POST("/intent", h.PaymentHandler.CreateIntent)
		payments.POST("/confirm", h.PaymentHandler.Confirm)
		payments.GET("/history", h.PaymentHandler.History)
	}
}
