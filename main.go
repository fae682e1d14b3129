// File: carenow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"carenow/config"
	"carenow/cron"
	"carenow/database"
	availabilityRepoPkg "carenow/database/repository/availability"
	earningsRepoPkg "carenow/database/repository/earnings"
	jobRepoPkg "carenow/database/repository/job"
	notificationRepoPkg "carenow/database/repository/notification"
	"carenow/handlers"
	"carenow/middleware"
	"carenow/routes"
	"carenow/services/availability"
	"carenow/services/dashboard"
	"carenow/services/earnings"
	"carenow/services/job"
	"carenow/services/notification"
	"carenow/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(cfg.DatabaseName)

	cacheClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to cache Redis: %v", err)
	}
	authClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisAuthDB)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to auth Redis: %v", err)
	}

	fcmClient, err := utils.NewMessagingClient(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Firebase messaging: %v", err)
	}

	// Repositories.
	jobRepo := jobRepoPkg.NewMongoJobRepo(db)
	earningsRepo := earningsRepoPkg.NewMongoEarningsRepo(db)
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo(db)
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo(db)

	if err := jobRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure job indexes: %v", err)
	}
	if err := earningsRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure earnings indexes: %v", err)
	}
	if err := availabilityRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := notificationRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure notification indexes: %v", err)
	}

	// Services.
	notificationService := &notification.DefaultNotificationService{
		FCM:    fcmClient,
		Repo:   notificationRepo,
		Logger: logger,
	}

	earningsService := &earnings.DefaultEarningsService{
		Repo:   earningsRepo,
		Logger: logger,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Repo:   availabilityRepo,
		Logger: logger,
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisTaskQueueDB,
	}
	offerQueue := cron.NewOfferQueue(redisOpts)

	jobService := &job.DefaultJobService{
		Repo:     jobRepo,
		Earnings: earningsService,
		Notifier: notificationService,
		Offers:   offerQueue,
		Logger:   logger,
	}

	dashboardService := &dashboard.DefaultDashboardService{
		Jobs:          jobRepo,
		Earnings:      earningsRepo,
		Availability:  availabilityRepo,
		Notifications: notificationRepo,
		Cache:         cacheClient,
		CacheTTL:      time.Duration(cfg.DashboardCacheTTL) * time.Second,
		Logger:        logger,
	}

	// Background workers.
	offerWorker := cron.NewOfferWorker(redisOpts, notificationService, logger)
	if err := offerWorker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start offer worker: %v", err)
	}

	sweeper, err := cron.StartAvailabilitySweep(cfg.AvailabilitySweepSpec, availabilityService, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start availability sweep: %v", err)
	}

	// HTTP layer.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(cfg.MaxRequestsPerMin, logger))

	tokens := utils.NewAuthTokens(cfg.JWTSecret)
	partnerAuth := middleware.PartnerAuth(tokens, authClient, logger)
	serviceAuth := middleware.ServiceAuth(cfg.ServiceAPIKey)

	jobHandler := handlers.NewJobHandler(jobService, dashboardService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, dashboardService, logger)
	earningsHandler := handlers.NewEarningsHandler(earningsService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, logger)

	handlerBundle := &handlers.HandlerBundle{
		CreateJobHandler:   jobHandler.CreateJobHandler,
		GetJobHandler:      jobHandler.GetJobHandler,
		PendingJobsHandler: jobHandler.PendingJobsHandler,
		ActiveJobsHandler:  jobHandler.ActiveJobsHandler,
		JobHistoryHandler:  jobHandler.JobHistoryHandler,
		AcceptJobHandler:   jobHandler.AcceptJobHandler,
		RejectJobHandler:   jobHandler.RejectJobHandler,
		StartJobHandler:    jobHandler.StartJobHandler,
		CompleteJobHandler: jobHandler.CompleteJobHandler,
		CancelJobHandler:   jobHandler.CancelJobHandler,

		GetDashboardHandler:    dashboardHandler.GetDashboardHandler,
		StreamDashboardHandler: dashboardHandler.StreamDashboardHandler,

		GetAvailabilityHandler:              availabilityHandler.GetAvailabilityHandler,
		SetAvailableHandler:                 availabilityHandler.SetAvailableHandler,
		SetOnlineHandler:                    availabilityHandler.SetOnlineHandler,
		SetWorkingHoursHandler:              availabilityHandler.SetWorkingHoursHandler,
		BlockDatesHandler:                   availabilityHandler.BlockDatesHandler,
		UnblockDatesHandler:                 availabilityHandler.UnblockDatesHandler,
		SetTemporaryUnavailabilityHandler:   availabilityHandler.SetTemporaryUnavailabilityHandler,
		ClearTemporaryUnavailabilityHandler: availabilityHandler.ClearTemporaryUnavailabilityHandler,

		GetEarningsHandler:             earningsHandler.GetEarningsHandler,
		RecalculateWindowTotalsHandler: earningsHandler.RecalculateWindowTotalsHandler,

		RecentNotificationsHandler: notificationHandler.RecentNotificationsHandler,
		UnreadCountHandler:         notificationHandler.UnreadCountHandler,
		MarkReadHandler:            notificationHandler.MarkReadHandler,
	}

	routes.RegisterRoutes(router, handlerBundle, partnerAuth, serviceAuth)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	sweeper.Stop()
	offerWorker.Shutdown()
	if err := offerQueue.Close(); err != nil {
		logger.Warn("main: failed to close offer queue", zap.Error(err))
	}
	if err := database.Disconnect(shutdownCtx, mongoClient); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
