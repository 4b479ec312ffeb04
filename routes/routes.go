// File: kts/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"kts/handlers"
	"kts/middleware"
	"kts/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSiteRoutes registers the public marketing-site endpoints.
func RegisterSiteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/site")
	{
		api.GET("/services", hb.Catalog.ListPublicHandler)
		api.GET("/team", hb.Content.PublicTeamHandler)
		api.GET("/testimonials", hb.Content.PublicTestimonialsHandler)
		api.GET("/blog", hb.Content.PublicBlogListHandler)
		api.GET("/blog/:slug", hb.Content.PublicBlogPostHandler)
		api.POST("/contact", hb.Content.ContactHandler)
		api.POST("/track", hb.Analytics.TrackHandler)
		api.POST("/coupons/validate", hb.Coupons.ValidateHandler)
		api.GET("/payments/gateway", hb.Payments.GatewayConfigHandler)
		api.POST("/payments/intent", hb.Payments.CreateIntentHandler)
		api.POST("/appointments/cancel", hb.Appointments.CancelByReferenceHandler)
	}
}

// RegisterBookingRoutes sets up the chat-widget booking wizard endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", hb.Wizard.StartHandler)
		bookingGroup.POST("/session/:sessionID/chat", hb.Wizard.ChatHandler)
		bookingGroup.POST("/session/:sessionID/date", hb.Wizard.ChooseDateHandler)
		bookingGroup.POST("/session/:sessionID/time", hb.Wizard.ChooseTimeHandler)
		bookingGroup.POST("/session/:sessionID/details", hb.Wizard.SubmitDetailsHandler)
		bookingGroup.POST("/session/:sessionID/change-time", hb.Wizard.ChangeTimeHandler)
		bookingGroup.DELETE("/session/:sessionID", hb.Wizard.CancelHandler)
	}
}

// RegisterAdminRoutes sets up the back-office endpoints. Everything here
// requires a valid admin token; write surfaces are additionally gated on
// per-admin permission flags.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.POST("/login", hb.Auth.LoginHandler)

	api.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSvc))
	api.GET("/me", hb.Auth.MeHandler)
	api.POST("/password", hb.Auth.ChangePasswordHandler)

	dashboard := api.Group("", middleware.RequirePermission(models.PermViewDashboard))
	{
		dashboard.GET("/dashboard", hb.Analytics.DashboardHandler)
		dashboard.GET("/analytics/traffic", hb.Analytics.TrafficHandler)
		dashboard.GET("/analytics/growth", hb.Analytics.GrowthHandler)
		dashboard.GET("/analytics/appointments", hb.Analytics.AppointmentsSeriesHandler)
	}

	services := api.Group("/services", middleware.RequirePermission(models.PermManageServices))
	{
		services.GET("", hb.Catalog.ListAllHandler)
		services.GET("/:id", hb.Catalog.GetHandler)
		services.POST("", hb.Catalog.CreateHandler)
		services.PUT("/:id", hb.Catalog.UpdateHandler)
		services.DELETE("/:id", hb.Catalog.DeleteHandler)
	}

	appts := api.Group("/appointments", middleware.RequirePermission(models.PermManageAppointments))
	{
		appts.GET("", hb.Appointments.ListHandler)
		appts.GET("/:id", hb.Appointments.GetHandler)
		// Transition and delete enforce their own finer-grained flags.
		appts.PUT("/:id/status", hb.Appointments.TransitionHandler)
		appts.DELETE("/:id", hb.Appointments.DeleteHandler)
		appts.GET("/deletion-requests", hb.Appointments.ListDeletionRequestsHandler)
		appts.PUT("/deletion-requests/:id", hb.Appointments.ReviewDeletionRequestHandler)
	}

	coupons := api.Group("/coupons", middleware.RequirePermission(models.PermManageCoupons))
	{
		coupons.GET("", hb.Coupons.ListHandler)
		coupons.POST("", hb.Coupons.CreateHandler)
		coupons.PUT("/:id", hb.Coupons.UpdateHandler)
		coupons.DELETE("/:id", hb.Coupons.DeleteHandler)
	}

	invoices := api.Group("/invoices", middleware.RequirePermission(models.PermManageInvoices))
	{
		invoices.GET("", hb.Invoices.ListHandler)
		invoices.GET("/:id", hb.Invoices.GetHandler)
		invoices.POST("", hb.Invoices.CreateHandler)
		invoices.PUT("/:id/status", hb.Invoices.UpdateStatusHandler)
	}

	content := api.Group("/content", middleware.RequirePermission(models.PermManageContent))
	{
		content.GET("/team", hb.Content.AdminTeamHandler)
		content.POST("/team", hb.Content.SaveTeamMemberHandler)
		content.PUT("/team/:id", hb.Content.SaveTeamMemberHandler)
		content.DELETE("/team/:id", hb.Content.DeleteTeamMemberHandler)

		content.GET("/testimonials", hb.Content.AdminTestimonialsHandler)
		content.POST("/testimonials", hb.Content.SaveTestimonialHandler)
		content.PUT("/testimonials/:id", hb.Content.SaveTestimonialHandler)
		content.DELETE("/testimonials/:id", hb.Content.DeleteTestimonialHandler)

		content.GET("/blog", hb.Content.AdminBlogListHandler)
		content.POST("/blog", hb.Content.SaveBlogPostHandler)
		content.PUT("/blog/:id", hb.Content.SaveBlogPostHandler)
		content.DELETE("/blog/:id", hb.Content.DeleteBlogPostHandler)

		content.GET("/messages", hb.Content.MessagesHandler)
		content.PUT("/messages/:id/read", hb.Content.MarkMessageReadHandler)

		content.POST("/upload/:bucket", hb.Storage.UploadFileHandler)
	}

	settings := api.Group("/settings", middleware.RequirePermission(models.PermManageSettings))
	{
		settings.GET("", hb.Settings.GetAllHandler)
		settings.PUT("", hb.Settings.SetHandler)
	}

	admins := api.Group("/admins", middleware.RequirePermission(models.PermManageAdmins))
	{
		admins.GET("", hb.Admins.ListHandler)
		admins.POST("", hb.Admins.CreateHandler)
		admins.DELETE("/:id", hb.Admins.DeleteHandler)
		admins.GET("/:id/permissions", hb.Admins.GetPermissionsHandler)
		admins.PUT("/:id/permissions", hb.Admins.SetPermissionsHandler)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", hb.Notifications.UnseenHandler)
		notifications.PUT("/seen", hb.Notifications.MarkSeenHandler)
		notifications.GET("/stream", hb.Notifications.StreamHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Krishna Tech Solutions API"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSiteRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
