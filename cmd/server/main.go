package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/nicholasjackson/env"
	"github.com/shopkart/commerce-api/internal/auth"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/events"
	"github.com/shopkart/commerce-api/internal/files"
	"github.com/shopkart/commerce-api/internal/repository"
	"github.com/shopkart/commerce-api/internal/service"
	httpTransport "github.com/shopkart/commerce-api/internal/transport/http"
	websocketTransport "github.com/shopkart/commerce-api/internal/transport/websocket"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [debug, info, trace]")
	mongoURI = env.String("MONGO_URI", false,
		"mongodb://localhost:27017", "MongoDB connection string")
	mongoDB = env.String("MONGO_DB", false,
		"shopkart", "MongoDB database name")
	jwtSecret = env.String("JWT_SECRET", false,
		"change-me-in-production", "Secret used to sign access tokens")
	uploadPath = env.String("UPLOAD_PATH", false,
		"./uploads", "Base directory for stored product images")
	maxUploadSize = env.Int("MAX_UPLOAD_SIZE", false,
		5*1024*1024, "Maximum product image size in bytes")
)

func main() {
	env.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "commerce-api",
		Level: hclog.LevelFromString(*logLevel),
	})

	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	db, err := repository.Connect(context.Background(), *mongoURI, *mongoDB)
	if err != nil {
		logger.Error("Unable to connect to the document store", "error", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())

	store, err := files.NewLocal(*uploadPath, *maxUploadSize)
	if err != nil {
		logger.Error("Unable to initialize the upload store", "error", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus[any]()
	validator := domain.NewValidation()
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenManager(*jwtSecret, "commerce-api", 24*time.Hour)

	productRepo := repository.NewMongoProductRepository(db)
	cartRepo := repository.NewMongoCartRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	userRepo := repository.NewMongoUserRepository(db)

	productService := service.NewProductService(
		productRepo, store, eventBus, logger.Named("product-service"))
	cartService := service.NewCartService(
		cartRepo, productRepo, logger.Named("cart-service"))
	orderService := service.NewOrderService(
		orderRepo, cartRepo, eventBus, logger.Named("order-service"))
	userService := service.NewUserService(
		userRepo, hasher, tokens, validator, logger.Named("user-service"))

	mw := httpTransport.NewMiddleware(logger.Named("http"), tokens)
	router := httpTransport.NewRouter(httpTransport.Handlers{
		Products:  httpTransport.NewProductHandler(productService, logger.Named("product-handler")),
		Orders:    httpTransport.NewOrderHandler(orderService, logger.Named("order-handler")),
		Carts:     httpTransport.NewCartHandler(cartService, logger.Named("cart-handler")),
		Users:     httpTransport.NewUserHandler(userService, logger.Named("user-handler")),
		Uploads:   httpTransport.NewUploadsHandler(store, logger.Named("uploads-handler")),
		WebSocket: websocketTransport.NewHandler(logger.Named("websocket-handler"), eventBus),
	}, mw)

	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "bind_address", *bindAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	server.Shutdown(shutdownCtx)
}
