package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikefix/config"
	"bikefix/database"
	appointmentRepoPkg "bikefix/database/repository/appointment"
	commissionRepoPkg "bikefix/database/repository/commission"
	notificationRepoPkg "bikefix/database/repository/notification"
	paymentRepoPkg "bikefix/database/repository/payment"
	reviewRepoPkg "bikefix/database/repository/review"
	serviceRepoPkg "bikefix/database/repository/service"
	userRepoPkg "bikefix/database/repository/user"
	"bikefix/handlers"
	"bikefix/middleware"
	"bikefix/routes"
	"bikefix/services/booking"
	"bikefix/services/catalog"
	"bikefix/services/commission"
	"bikefix/services/notification"
	"bikefix/services/payment"
	"bikefix/services/review"
	"bikefix/services/user"
	"bikefix/utils"
	"bikefix/worker"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	handlers.RegisterValidators()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	commissionRepo := commissionRepoPkg.NewMongoCommissionRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// background task queue.
	queueClient := asynq.NewClient(worker.RedisOpt())
	defer queueClient.Close()
	enqueuer := worker.NewEnqueuer(queueClient)

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:     notificationRepo,
		UserRepo: userRepo,
	}
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Notifier: notificationService,
	}
	commissionService := &commission.DefaultCommissionService{
		Repo: commissionRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:        appointmentRepo,
		UserRepo:    userRepo,
		ServiceRepo: serviceRepo,
		Commission:  commissionService,
		Notifier:    notificationService,
		Reminders:   enqueuer,
		Cache:       utils.GetCacheClient(),
	}
	reviewService := &review.DefaultReviewService{
		Repo:            reviewRepo,
		AppointmentRepo: appointmentRepo,
		UserRepo:        userRepo,
		Notifier:        notificationService,
		Queue:           enqueuer,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:            paymentRepo,
		AppointmentRepo: appointmentRepo,
		Gateway:         &payment.StripeGateway{},
		Notifier:        notificationService,
		Cache:           utils.GetCacheClient(),
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo: serviceRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		Auth:          handlers.NewAuthHandler(userService),
		Appointments:  handlers.NewAppointmentHandler(bookingService),
		Commission:    handlers.NewCommissionHandler(commissionService),
		Reviews:       handlers.NewReviewHandler(reviewService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Services:      handlers.NewServiceHandler(catalogService),
		Notifications: handlers.NewNotificationHandler(notificationService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for rating aggregation and reminders.
	go worker.Run(reviewService, notificationService)

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
