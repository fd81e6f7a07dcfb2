// File: roamly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roamly/config"
	"roamly/cron"
	"roamly/database"
	bookingRepoPkg "roamly/database/repository/booking"
	cancellationRepoPkg "roamly/database/repository/cancellation"
	"roamly/handlers"
	"roamly/routes"
	"roamly/services/admin"
	"roamly/services/cancel"
	"roamly/services/notification"
	"roamly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	requestRepo := cancellationRepoPkg.NewMongoCancellationRepo()

	// queue client for fire-and-forget dispatch.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	notificationService, err := notification.NewQueueNotificationService(queueClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	intakeService := &cancel.DefaultCancellationIntakeService{
		BookingRepo: bookingRepo,
		RequestRepo: requestRepo,
		Notifier:    notificationService,
		Secret:      config.AppConfig.CancelTokenSecret,
		Logger:      logger,
	}

	adminService := &admin.DefaultAdminCancellationService{
		RequestRepo: requestRepo,
		Logger:      logger,
	}

	cancellationHandler := handlers.NewCancellationHandler(intakeService, logger)
	adminHandler := handlers.NewAdminCancellationHandler(adminService, logger)

	// Register routes.
	routes.RegisterRoutes(router, cancellationHandler, adminHandler)

	// Background notification worker and dependency health monitor.
	cron.InitNotificationWorker(utils.NewMailer())
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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

	ctx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFn()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
