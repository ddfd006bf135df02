package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelsupport/config"
	"hotelsupport/cron"
	"hotelsupport/database"
	"hotelsupport/handlers"
	"hotelsupport/middleware"
	"hotelsupport/models"
	"hotelsupport/routes"
	"hotelsupport/services/booking"
	"hotelsupport/services/directions"
	"hotelsupport/services/intelligence"
	"hotelsupport/services/issues"
	"hotelsupport/services/notification"
	"hotelsupport/services/session"
	"hotelsupport/services/storage"
	"hotelsupport/services/voice"
	"hotelsupport/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// session store.
	var store session.Store
	switch cfg.SessionBackend {
	case "redis":
		if err := utils.InitSessionCache(); err != nil {
			logger.Sugar().Fatalf("main: failed to initialize redis: %v", err)
		}
		store = session.NewRedisStore(utils.SessionCacheClient, cfg.SessionTTL)
	case "mongo":
		db, err := database.InitDB(ctx)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize mongo: %v", err)
		}
		store = session.NewMongoStore(db)
	default:
		store = session.NewMemoryStore()
	}
	utils.StartHealthMonitor(ctx, utils.SessionCacheClient, database.MongoClient)

	sessions := session.NewManager(store, cfg.Rooms, cfg.DefaultUserName, logger)
	sweeper, err := cron.StartSessionSweeper(sessions, cfg.SessionSweepSchedule, cfg.SessionTTL, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid SESSION_SWEEP_SCHEDULE: %v", err)
	}

	// staff notifications.
	var notifier notification.Notifier = notification.NopNotifier{}
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := utils.FirebaseInit(ctx)
		if err != nil {
			logger.Warn("Staff notifications disabled", zap.Error(err))
		} else {
			notifier = notification.NewFCMNotifier(fcm, cfg.StaffTopic, logger)
		}
	}

	// handlers' services.
	bookingService := booking.NewRoomLedgerService(sessions, logger)
	issueService := issues.NewIssueService(sessions, notifier, logger)
	directionsService := directions.NewDirectionsService(
		directions.Hotel{Name: cfg.HotelName, Location: models.Location{Lat: cfg.HotelLat, Lng: cfg.HotelLng}},
		directions.NewGoogleMapsProvider(cfg.GoogleAPIKey, cfg.ExternalTimeout),
		logger,
	)

	var classifier intelligence.Classifier = intelligence.NewLocalClassifier()
	if cfg.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel,
			intelligence.CoordinatorInstruction(cfg.HotelName, cfg.ReplyLanguage))
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer gemini.Close()
		classifier = intelligence.NewGeminiClassifier(gemini)
	} else {
		logger.Info("GEMINI_API_KEY not set, using keyword routing")
	}
	router := intelligence.NewRouter(sessions, classifier, bookingService, issueService, directionsService, cfg.ExternalTimeout, logger)

	// voice.
	stt, tts, closeVoice, err := voice.NewFromConfig(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize voice backend: %v", err)
	}
	defer closeVoice()

	var audioStore storage.AudioStore
	if cfg.CloudinaryCloudName != "" {
		cld, err := storage.NewCloudinaryAudioStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.AudioFolder)
		if err != nil {
			logger.Warn("Reply audio will be inlined", zap.Error(err))
		} else {
			audioStore = cld
		}
	}

	sessionHandler := handlers.NewSessionHandler(sessions, router)
	voiceHandler := handlers.NewVoiceHandler(router, stt, tts, audioStore, cfg.ExternalTimeout)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	issueHandler := handlers.NewIssueHandler(issueService)
	directionsHandler := handlers.NewDirectionsHandler(directionsService)

	handlerBundle := &handlers.HandlerBundle{
		StartSessionHandler:   sessionHandler.StartSession,
		GetSessionHandler:     sessionHandler.GetSession,
		EndSessionHandler:     sessionHandler.EndSession,
		UpdateUserNameHandler: sessionHandler.UpdateUserName,
		MessageHandler:        sessionHandler.HandleMessage,
		VoiceHandler:          voiceHandler.HandleVoice,

		ListRoomsHandler:     bookingHandler.ListRooms,
		CheckRoomHandler:     bookingHandler.CheckRoom,
		ReserveHandler:       bookingHandler.Reserve,
		GetBookingHandler:    bookingHandler.GetBooking,
		CancelBookingHandler: bookingHandler.CancelBooking,

		CreateTicketHandler:  issueHandler.CreateTicket,
		GetTicketHandler:     issueHandler.GetTicket,
		ResolveTicketHandler: issueHandler.ResolveTicket,

		DirectionsHandler: directionsHandler.GetDirections,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	routes.RegisterRoutes(r, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: r,
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

	sweeper.Stop()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("Mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
