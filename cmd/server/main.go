package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Shehap111/big-store-server/internal/cache"
	"github.com/Shehap111/big-store-server/internal/gateway"
	"github.com/Shehap111/big-store-server/internal/httpapi"
	"github.com/Shehap111/big-store-server/internal/metrics"
	"github.com/Shehap111/big-store-server/internal/repository"
	"github.com/Shehap111/big-store-server/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDB         string
	RedisAddr       string
	StripeSecretKey string
	SuccessURL      string
	CancelURL       string
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("PORT", "4242"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "bigstore"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		SuccessURL:      getEnv("SUCCESS_URL", "http://localhost:3000/success?success=true&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:       getEnv("CANCEL_URL", "http://localhost:3000?canceled=true"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "https://big-store-bj54000.vercel.app,http://localhost:5187"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	store := repository.NewMongoStore(db)
	if err := store.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		cartCache = cache.NewRedisCache(redisClient)
		log.Printf("Connected to redis at %s", cfg.RedisAddr)
	}

	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, 15*time.Second)
	fulfillment := service.NewFulfillmentService(store, stripeGateway, cartCache, cfg.SuccessURL, cfg.CancelURL)

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	handler := httpapi.NewHandler(fulfillment, checkoutMetrics)
	router := httpapi.NewRouter(handler, cfg.AllowedOrigins, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Checkout server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
