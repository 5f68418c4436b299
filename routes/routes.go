package routes

import (
	"net/http"
	"time"

	"bikefix/handlers"
	"bikefix/middleware"
	"bikefix/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("/logout", hb.Auth.Logout)
		protected.GET("/profile", hb.Auth.GetProfile)
		protected.PUT("/profile", hb.Auth.UpdateProfile)
	}

	r.GET("/api/workshops", hb.Auth.ListWorkshops)
}

// RegisterAppointmentRoutes registers the booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.Appointments.Create)
		api.GET("", hb.Appointments.List)
		api.GET("/available-slots", hb.Appointments.AvailableSlots)
		api.GET("/:id", hb.Appointments.Get)
		api.PUT("/:id/status", hb.Appointments.UpdateStatus)
		api.PUT("/:id/cancel", hb.Appointments.Cancel)
		api.POST("/:id/budgets", hb.Appointments.AddBudget)
		api.PUT("/:id/budgets/:index/approve", hb.Appointments.RespondBudget(true))
		api.PUT("/:id/budgets/:index/reject", hb.Appointments.RespondBudget(false))
	}
}

// RegisterCommissionRoutes registers the admin-only policy endpoints.
func RegisterCommissionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/commission")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo, models.RoleAdmin))
		api.GET("", hb.Commission.GetPolicy)
		api.PUT("/default-rate", hb.Commission.SetDefaultRate)
		api.POST("/overrides", hb.Commission.AddOverride)
		api.PUT("/tiers", hb.Commission.SetTiers)
		api.PUT("/clamps", hb.Commission.SetClamps)
		api.GET("/history", hb.Commission.GetHistory)
	}
}

// RegisterReviewRoutes registers the review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/workshop/:id", hb.Reviews.ListByWorkshop)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("", hb.Reviews.Create)
		protected.POST("/:id/respond", hb.Reviews.Respond)
		protected.POST("/:id/vote", hb.Reviews.Vote)
		protected.POST("/:id/report", hb.Reviews.Report)
	}
}

// RegisterPaymentRoutes registers the payment endpoints. The webhook stays
// public; Stripe authenticates it with its signature header.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/webhook", hb.Payments.Webhook)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo))
		protected.POST("/create-preference", hb.Payments.CreatePreference)
		protected.GET("/:id/status", hb.Payments.GetStatus)
		protected.POST("/:id/refund", hb.Payments.Refund)
	}
}

// RegisterServiceRoutes registers the workshop catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("/workshop/:id", hb.Services.ListByWorkshop)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.UserRepo, models.RoleWorkshop))
		protected.POST("", hb.Services.Create)
		protected.PUT("/:id", hb.Services.Update)
		protected.DELETE("/:id", hb.Services.Delete)
	}
}

// RegisterNotificationRoutes registers the in-app feed endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.Notifications.List)
		api.PUT("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterCommissionRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
