// File: shotfolio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shotfolio/config"
	"shotfolio/database"
	bookingRepoPkg "shotfolio/database/repository/booking"
	clientRepoPkg "shotfolio/database/repository/client"
	photographerRepoPkg "shotfolio/database/repository/photographer"
	"shotfolio/handlers"
	"shotfolio/middleware"
	"shotfolio/routes"
	"shotfolio/services/booking"
	"shotfolio/services/contract"
	"shotfolio/services/notification"
	"shotfolio/services/payment"
	"shotfolio/services/photographer"
	"shotfolio/services/portal"
	"shotfolio/services/reminder"
	"shotfolio/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	photographerRepo := photographerRepoPkg.NewMongoPhotographerRepo()

	// Services.
	mailer := notification.NewSMTPMailer()

	photographerService := &photographer.DefaultPhotographerService{
		Repo: photographerRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:          bookingRepo,
		Clients:       clientRepo,
		Photographers: photographerRepo,
		Mailer:        mailer,
		DepositRate:   config.AppConfig.DefaultDepositRate,
		PortalBaseURL: config.AppConfig.PortalBaseURL,
	}

	checkoutService := &payment.CheckoutService{
		Bookings:      bookingRepo,
		Photographers: photographerRepo,
		FeeRate:       decimal.NewFromFloat(config.AppConfig.PlatformFeeRate),
		Currency:      "usd",
		PortalBaseURL: config.AppConfig.PortalBaseURL,
		Logger:        logger,
	}

	portalService := &portal.DefaultPortalService{
		Bookings:      bookingRepo,
		Clients:       clientRepo,
		Photographers: photographerRepo,
		Checkout:      checkoutService,
	}

	reminderEngine := &reminder.DefaultReminderEngine{
		Bookings:      bookingRepo,
		Clients:       clientRepo,
		Photographers: photographerRepo,
		Mailer:        mailer,
		Logger:        logger,
		PortalBaseURL: config.AppConfig.PortalBaseURL,
	}

	geminiClient, err := contract.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	draftingService := &contract.DraftingService{
		Generator: geminiClient,
		Logger:    logger,
	}

	// Handlers.
	photographerHandler := handlers.NewPhotographerHandler(photographerService, photographerRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	clientHandler := handlers.NewClientHandler(clientRepo)
	contractHandler := handlers.NewContractHandler(draftingService, bookingRepo, clientRepo, photographerRepo)
	portalHandler := handlers.NewPortalHandler(portalService)
	cronHandler := handlers.NewCronHandler(reminderEngine)
	webhookHandler := handlers.NewWebhookHandler(checkoutService, portalService, bookingRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		PhotographerRepo: photographerRepo,

		// Photographer account endpoints.
		RegisterPhotographerHandler:     photographerHandler.RegisterHandler,
		AuthenticatePhotographerHandler: photographerHandler.AuthenticateHandler,
		GetProfileHandler:               photographerHandler.GetProfileHandler,
		UpdateSettingsHandler:           photographerHandler.UpdateSettingsHandler,

		// Booking endpoints.
		CreateBookingHandler:       bookingHandler.CreateBookingHandler,
		GetBookingHandler:          bookingHandler.GetBookingHandler,
		ListBookingsHandler:        bookingHandler.ListBookingsHandler,
		UpdateBookingStatusHandler: bookingHandler.UpdateBookingStatusHandler,
		SaveContractHandler:        bookingHandler.SaveContractHandler,
		SendContractHandler:        bookingHandler.SendContractHandler,
		ActivityTimelineHandler:    bookingHandler.ActivityTimelineHandler,

		// Client roster endpoints.
		CreateClientHandler: clientHandler.CreateClientHandler,
		ListClientsHandler:  clientHandler.ListClientsHandler,
		GetClientHandler:    clientHandler.GetClientHandler,
		UpdateClientHandler: clientHandler.UpdateClientHandler,

		// Contract drafting endpoints.
		DraftContractHandler: contractHandler.DraftContractHandler,

		// Client portal endpoints.
		GetPortalHandler:      portalHandler.GetPortalHandler,
		SignContractHandler:   portalHandler.SignContractHandler,
		CreateCheckoutHandler: portalHandler.CreateCheckoutHandler,

		// Cron trigger endpoints.
		PreDueSweepHandler:    cronHandler.PreDueSweepHandler,
		PostEventSweepHandler: cronHandler.PostEventSweepHandler,

		// Webhook endpoints.
		StripeWebhookHandler: webhookHandler.StripeWebhookHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
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
