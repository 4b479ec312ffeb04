// File: kts/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kts/config"
	"kts/cron"
	"kts/database"
	adminRepo "kts/database/repository/admin"
	analyticsRepo "kts/database/repository/analytics"
	appointmentRepo "kts/database/repository/appointment"
	contentRepo "kts/database/repository/content"
	couponRepo "kts/database/repository/coupon"
	invoiceRepo "kts/database/repository/invoice"
	notificationRepo "kts/database/repository/notification"
	serviceRepo "kts/database/repository/service"
	settingsRepo "kts/database/repository/settings"
	"kts/handlers"
	"kts/middleware"
	"kts/routes"
	adminsvc "kts/services/admin"
	"kts/services/analytics"
	"kts/services/appointment"
	"kts/services/booking"
	"kts/services/catalog"
	"kts/services/content"
	"kts/services/coupon"
	"kts/services/invoice"
	"kts/services/notification"
	"kts/services/payment"
	"kts/services/settings"
	"kts/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	services := serviceRepo.NewMongoServiceRepo()
	coupons := couponRepo.NewMongoCouponRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	invoices := invoiceRepo.NewMongoInvoiceRepo()
	admins := adminRepo.NewMongoAdminRepo()
	siteSettings := settingsRepo.NewMongoSettingsRepo()
	siteContent := contentRepo.NewMongoContentRepo()
	pageViews := analyticsRepo.NewMongoAnalyticsRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{Repo: notifications}
	catalogService := &catalog.DefaultCatalogService{Repo: services}
	couponService := &coupon.DefaultCouponService{Repo: coupons}
	settingsService := &settings.DefaultSettingsService{Repo: siteSettings}
	contentService := &content.DefaultContentService{Repo: siteContent, Notify: notificationService}
	adminService := &adminsvc.DefaultAdminService{Repo: admins}
	paymentService := &payment.StripePaymentService{Settings: settingsService}

	reminderScheduler := cron.NewReminderScheduler()
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:      appointments,
		Notify:    notificationService,
		Reminders: reminderScheduler,
	}
	invoiceService := &invoice.DefaultInvoiceService{
		Invoices:     invoices,
		Appointments: appointments,
		Settings:     settingsService,
	}
	analyticsService := &analytics.DefaultAnalyticsService{
		Views:        pageViews,
		Appointments: appointments,
		Invoices:     invoices,
	}
	wizardService := &booking.DefaultWizardService{
		Sessions:     booking.NewRedisSessionStore(),
		Catalog:      catalogService,
		Coupons:      couponService,
		Appointments: appointments,
		Settings:     settingsService,
		Notify:       notificationService,
		Messages:     &booking.ContentMessageSink{Repo: siteContent, Notify: notificationService},
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AdminSvc:      adminService,
		Wizard:        handlers.NewWizardHandler(wizardService),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Coupons:       handlers.NewCouponHandler(couponService),
		Appointments:  handlers.NewAppointmentHandler(appointmentService),
		Invoices:      handlers.NewInvoiceHandler(invoiceService),
		Analytics:     handlers.NewAnalyticsHandler(analyticsService),
		Settings:      handlers.NewSettingsHandler(settingsService),
		Content:       handlers.NewContentHandler(contentService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Auth:          handlers.NewAuthHandler(adminService),
		Admins:        handlers.NewAdminHandler(adminService),
		Storage:       handlers.NewStorageHandler(cloudinaryStorageService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker.
	cron.InitReminderWorker(appointments, notificationService)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
