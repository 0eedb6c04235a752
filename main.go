// File: glowdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowdesk/config"
	"glowdesk/cron"
	"glowdesk/database"
	conversationRepo "glowdesk/database/repository/conversation"
	"glowdesk/handlers"
	"glowdesk/middleware"
	"glowdesk/routes"
	"glowdesk/services/assistant"
	"glowdesk/services/booking"
	"glowdesk/services/calendar"
	"glowdesk/services/knowledge"
	"glowdesk/services/notification"
	"glowdesk/services/offers"
	"glowdesk/services/tasks"
	"glowdesk/services/timezone"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	tz, err := timezone.New(config.AppConfig.BusinessTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	convRepo := conversationRepo.NewMongoConversationRepo()

	// services.
	calendarSvc, err := calendar.NewGoogleCalendarService(
		context.Background(),
		config.AppConfig.GoogleServiceAccountFile,
		config.AppConfig.GoogleCalendarID,
		tz,
		30,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar service: %v", err)
	}

	offerSvc := &offers.DefaultOfferService{
		Repo: convRepo,
		TZ:   tz,
		TTL:  time.Duration(config.AppConfig.SlotOfferTTLMinutes) * time.Minute,
	}

	catalog := booking.StaticCatalog{}
	notificationSvc := notification.NewDefaultNotificationService(config.AppConfig.StaffNotifyTopic)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	bookingSvc := &booking.DefaultBookingService{
		Calendar:  calendarSvc,
		Offers:    offerSvc,
		Catalog:   catalog,
		TZ:        tz,
		Deposits:  booking.NewStripeDepositHandler(logger),
		Reminders: &tasks.AsynqReminderScheduler{Client: asynqClient},
		Notifier:  notificationSvc,
	}

	knowledgeSvc := &knowledge.DefaultKnowledgeService{
		Sections: knowledge.Sections{
			ClinicName: config.AppConfig.ClinicName,
			Hours:      config.AppConfig.ClinicHours,
			Address:    config.AppConfig.ClinicAddress,
			Phone:      config.AppConfig.ClinicPhone,
			Policies: knowledge.PolicySection{
				Cancellation:   "We ask for 24 hours notice to cancel or reschedule; late cancellations forfeit the deposit.",
				Deposit:        "Injectable appointments require a refundable deposit that is applied to your treatment.",
				AgeRequirement: "Clients must be 18 or older for injectable treatments.",
			},
		},
	}

	ctxStore := assistant.NewRedisContextStore(utils.GetAssistantCacheClient(), 30*time.Minute)
	gemini, err := assistant.NewGeminiClient(
		config.AppConfig.GeminiAPIKey,
		"You are the booking assistant for "+config.AppConfig.ClinicName+". "+
			"Offer appointment times only from check_availability results, and book only after the customer confirms a time.\n\n"+
			knowledgeSvc.ClinicSummary(catalog.All()),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	assistantSvc := &assistant.DefaultAssistantService{
		Repo:      convRepo,
		Offers:    offerSvc,
		Booking:   bookingSvc,
		Catalog:   catalog,
		Knowledge: knowledgeSvc,
		CtxStore:  ctxStore,
		Gemini:    gemini,
		TZ:        tz,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Assistant: handlers.NewAssistantHandler(assistantSvc),
		Booking:   handlers.NewBookingHandler(bookingSvc, convRepo, logger),
		Voice:     handlers.NewVoiceHandler(assistantSvc),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// background workers and health monitoring.
	cron.InitReminderWorker(notificationSvc)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAssistantCacheClient()},
		database.MongoClient,
	)

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
