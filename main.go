package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consultly/config"
	"consultly/handlers"
	"consultly/middleware"
	"consultly/routes"
	"consultly/services/calendar"
	"consultly/services/payment"
	"consultly/services/storage"
	"consultly/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Adapter clients are process-lifetime singletons: initialized here,
	// read-only afterwards. A missing credential disables its adapter
	// instead of failing startup.
	stripe.Key = config.AppConfig.StripeKey

	calendarSvc := calendar.NewGraphService(calendar.Config{
		TenantID:     config.AppConfig.CalendarTenantID,
		ClientID:     config.AppConfig.CalendarClientID,
		ClientSecret: config.AppConfig.CalendarClientSecret,
		Mailbox:      config.AppConfig.BookingMailbox,
		Logger:       logger,
	})
	if !calendarSvc.Configured() {
		logger.Warn("calendar service credentials missing; calendar endpoints will return 503")
	}

	storageSvc, err := storage.NewCloudinaryService(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}
	if !storageSvc.Configured() {
		logger.Warn("storage connection string missing; photo uploads will return 503")
	}

	paymentSvc := payment.NewStripeService(
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
		logger,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.MaxMultipartMemory = 10 << 20

	calendarHandler := handlers.NewCalendarHandler(calendarSvc, logger)
	storageHandler := handlers.NewStorageHandler(storageSvc, logger)
	checkoutHandler := handlers.NewCheckoutHandler(calendarSvc, paymentSvc, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ListEventsHandler:            calendarHandler.ListEventsHandler,
		CheckAvailabilityHandler:     calendarHandler.CheckAvailabilityHandler,
		UploadPhotosHandler:          storageHandler.UploadPhotosHandler,
		CreateCheckoutSessionHandler: checkoutHandler.CreateCheckoutSessionHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
