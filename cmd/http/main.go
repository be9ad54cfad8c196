package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"roombook-service/internal/app/config"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/app/delivery/http/controllers"
	"roombook-service/internal/app/delivery/http/middlewares"
	"roombook-service/internal/app/delivery/http/routers"
	"roombook-service/internal/app/drivers/database"
	"roombook-service/internal/app/drivers/logger"
	"roombook-service/internal/app/drivers/messaging"
	"roombook-service/internal/app/drivers/storage"
	"roombook-service/internal/app/services/core/auth"
	"roombook-service/internal/app/services/core/bookings"
	"roombook-service/internal/app/services/core/livestatus"
	"roombook-service/internal/app/services/core/schedules"
	"roombook-service/internal/app/services/core/session"
	"roombook-service/internal/app/services/core/users"
	"roombook-service/internal/app/services/shared/bookingstore"
	"roombook-service/internal/app/services/shared/events"
	"roombook-service/internal/app/services/shared/locker"
	"roombook-service/internal/app/services/shared/redis"
	minioStorage "roombook-service/internal/app/services/shared/storage"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/utils"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	err := internalConfig.Validate()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		Logger:         logger.NewZapLogger(driverConfig, internalConfig),
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	// The memory driver is for local runs: no databases and no broker.
	switch internalConfig.Booking.StoreDriver {
	case constvars.BookingStoreDriverMongo:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	case constvars.BookingStoreDriverPostgres:
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
		bootstrap.PostgresDB = database.NewPostgresDB(driverConfig)
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	err = bootstrapingTheApp(appCtx, bootstrap)
	if err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s with %s booking store", internalConfig.App.Port, internalConfig.Booking.StoreDriver)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	stopApp()
	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Errorf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	clock := utils.RealClock{}

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	sessionService := session.NewSessionService(redisRepository, clock)

	// Repositories
	var (
		bookingRepository contracts.BookingRepository
		userRepository    contracts.UserRepository
	)
	switch internalConfig.Booking.StoreDriver {
	case constvars.BookingStoreDriverPostgres:
		err := bookingstore.EnsureBookingsTable(ctx, bootstrap.PostgresDB)
		if err != nil {
			return err
		}
		bookingRepository = bookingstore.NewBookingPostgresRepository(bootstrap.PostgresDB, bootstrap.Logger)
	case constvars.BookingStoreDriverMongo:
		bookingRepository = bookingstore.NewBookingMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName, bootstrap.Logger)
	default:
		bookingRepository = bookingstore.NewMemoryRepository()
	}

	if bootstrap.MongoDB != nil {
		err := users.EnsureUserIndexes(ctx, bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
		if err != nil {
			return err
		}
		userRepository = users.NewUserMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	} else {
		userRepository = users.NewMemoryRepository()
	}

	// Booking store
	bookingStore := bookingstore.NewLiveStore(
		bookingRepository,
		redisRepository,
		bootstrap.Logger,
		time.Duration(internalConfig.Booking.SnapshotReloadInSeconds)*time.Second,
	)
	err := bookingStore.Start(ctx)
	if err != nil {
		return err
	}

	// Events
	var eventPublisher contracts.BookingEventPublisher = events.NopPublisher{}
	if bootstrap.RabbitMQ != nil {
		channel, err := messaging.DeclareTopicExchange(bootstrap.RabbitMQ, internalConfig.RabbitMQ.EventsExchange)
		if err != nil {
			return err
		}
		eventPublisher, err = events.NewPublisher(channel, bootstrap.Logger, internalConfig.RabbitMQ.EventsExchange)
		if err != nil {
			return err
		}
	}

	// Schedule export
	scheduleExporter := minioStorage.NewMinioStorage(
		bootstrap.Minio,
		internalConfig.Minio.BucketName,
		time.Duration(internalConfig.Minio.ScheduleExportPreSignedUrlExpiryInMinute)*time.Minute,
	)

	// Identity
	var identityProvider contracts.IdentityProvider
	if internalConfig.Auth.Provider == constvars.AuthProviderSupertokens {
		supertokensClient, err := auth.InitializeSupertokens(bootstrap.DriverConfig, internalConfig, bootstrap.Logger)
		if err != nil {
			return err
		}
		identityProvider = auth.NewSupertokensIdentityProvider(supertokensClient, userRepository, internalConfig, clock, bootstrap.Logger)
	} else {
		identityProvider = auth.NewLocalIdentityProvider(userRepository, internalConfig, clock, bootstrap.Logger)
	}

	// Usecases
	bookingUsecase := bookings.NewBookingUsecase(bookingStore, lockerService, eventPublisher, internalConfig, clock, bootstrap.Logger)
	authUsecase := auth.NewAuthUsecase(identityProvider, sessionService, bookingUsecase, internalConfig, clock, bootstrap.Logger)
	scheduleUsecase := schedules.NewScheduleUsecase(bookingStore, bookingUsecase, sessionService, scheduleExporter, internalConfig, clock, bootstrap.Logger)

	// Live status worker
	liveStatusWorker := livestatus.NewWorker(bootstrap.Logger, internalConfig, lockerService, bookingStore, redisRepository, eventPublisher, clock)
	err = liveStatusWorker.Start(ctx)
	if err != nil {
		return err
	}
	bootstrap.WorkerStops = append(bootstrap.WorkerStops, liveStatusWorker.Stop)

	// Delivery
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, authUsecase, internalConfig)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, authController, bookingController, scheduleController)
	return nil
}
