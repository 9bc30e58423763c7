package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-storefront/configs"
	"golang-storefront/internal/handlers"
	"golang-storefront/internal/middleware"
	"golang-storefront/internal/repositories"
	"golang-storefront/internal/services"
	"golang-storefront/pkg/cache"
	"golang-storefront/pkg/database"
	"golang-storefront/pkg/messaging"
	"golang-storefront/pkg/storeapi"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize per-profile local storage
	storage, closeStorage, err := openStorage(config)
	if err != nil {
		log.Fatal("Failed to open local storage: ", err)
	}
	defer closeStorage()

	// Storefront backend client
	api := storeapi.NewClient(config.Backend.BaseURL, config.Backend.Timeout)

	// Initialize Kafka (optional)
	var publisher services.OrderEventPublisher
	if len(config.Kafka.Brokers) > 0 {
		kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers, config.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
	} else {
		log.Println("KAFKA_BROKERS not set, order events are disabled")
	}

	// Initialize services
	sessionStore := services.NewSessionStore(storage)
	authService := services.NewAuthService(api, sessionStore)
	otpService := services.NewOTPService(api, config.OTP.ResendSeconds, config.OTP.Tick)
	defer otpService.Close()

	cartLocks := services.NewProfileLocks()
	catalogService := services.NewCatalogService(api)
	cartService := services.NewCartService(storage, cartLocks, catalogService)
	addressService := services.NewAddressService(api)
	orderService := services.NewOrderService(api, publisher, cartLocks)
	checkoutService := services.NewCheckoutService(storage, addressService, orderService)
	profileService := services.NewProfileService(api)
	adminService := services.NewAdminService(api)

	// Evict idle in-memory flows
	cronService := services.NewCronService(config.Flows.SweepInterval, config.Flows.MaxIdle, checkoutService, otpService)
	if err := cronService.Start(); err != nil {
		log.Fatal("Failed to start cron service: ", err)
	}
	defer cronService.Stop()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// Initialize handlers
	router := handlers.SetupRouter(handlers.RouterOptions{
		AllowOrigins:   config.Server.AllowOrigins,
		SecureCookie:   config.Server.SecureCookie,
		AuthMiddleware: authMiddleware,
		BackendErrors:  authService,
		Handlers: []handlers.RouteRegistrar{
			handlers.NewAuthHandler(authService, otpService),
			handlers.NewProductHandler(catalogService),
			handlers.NewCartHandler(cartService),
			handlers.NewOrderHandler(checkoutService),
			handlers.NewAddressHandler(addressService, profileService),
			handlers.NewAdminHandler(adminService),
		},
	})

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s (storage: %s, backend: %s)", config.Server.Port, config.Storage.Driver, config.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// openStorage builds the configured LocalStorage backend and its cleanup.
func openStorage(config *configs.Config) (repositories.LocalStorage, func(), error) {
	switch config.Storage.Driver {
	case "memory":
		return repositories.NewMemoryStorage(), func() {}, nil

	case "file":
		storage, err := repositories.NewFileStorage(config.Storage.Dir)
		return storage, func() {}, err

	case "redis":
		redisCache := cache.NewRedisCache(cache.Options{
			Addr:     config.Redis.URL,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
			Prefix:   config.Redis.Prefix,
			TTL:      config.Redis.TTL,
		})
		if redisCache == nil {
			return nil, nil, errors.New("failed to connect to Redis")
		}
		return repositories.NewRedisStorage(redisCache), func() { redisCache.Close() }, nil

	case "postgres":
		db, err := database.NewDatabase(config.Database.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(&repositories.LocalStorageEntry{}); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repositories.NewPostgresStorage(db.Postgres), func() { db.Close() }, nil
	}
	return nil, nil, errors.New("unknown STORAGE_DRIVER " + config.Storage.Driver)
}
