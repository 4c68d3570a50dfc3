package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/storefront-service/internal/auth"
	"github.com/fjod/go_cart/storefront-service/internal/backend"
	"github.com/fjod/go_cart/storefront-service/internal/cache"
	h "github.com/fjod/go_cart/storefront-service/internal/http"
	"github.com/fjod/go_cart/storefront-service/internal/publisher"
	"github.com/fjod/go_cart/storefront-service/internal/service"
)

type Config struct {
	HTTPPort        string
	BackendBaseURL  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string

	StoreBackend   string
	RedisAddr      string
	RedisPassword  string
	SessionTTL     time.Duration
	CartCacheTTL   time.Duration
	SQLitePath     string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	MigrationsPath string
	MongoURI       string
	MongoDBName    string

	KafkaBrokers []string
}

func loadConfig() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, errors.New("invalid DB_PORT")
	}
	requestTimeout, err := getDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getDuration("SESSION_TTL", 0)
	if err != nil {
		return nil, err
	}
	cartCacheTTL, err := getDuration("CART_CACHE_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", backend.DefaultBaseURL),
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		StoreBackend:   getEnv("STORE_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SessionTTL:     sessionTTL,
		CartCacheTTL:   cartCacheTTL,
		SQLitePath:     getEnv("SQLITE_PATH", "./storefront.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         dbPort,
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "storefront"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/store/migrations"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "storefront"),

		KafkaBrokers: brokers,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.New("invalid " + key + ": " + err.Error())
	}
	return d, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		// logger config depends on cfg, fall back to a plain production logger
		zap.Must(zap.NewProduction()).Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("storefront-service starting",
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("backend_url", cfg.BackendBaseURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opened, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}
	defer func() {
		if err := opened.close(); err != nil {
			logger.Warn("failed to close session store", zap.Error(err))
		}
	}()
	kv := opened.kv

	authStore := auth.NewStore(kv, logger)
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.RequestTimeout,
	}, authStore, logger)

	var events interface {
		service.EventPublisher
		Close() error
	} = publisher.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		events = publisher.NewKafkaPublisher(logger, cfg.KafkaBrokers...)
		logger.Info("publishing checkout events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", publisher.SubmittedTopic))
	}
	defer events.Close()

	checkoutService := service.NewCheckoutService(
		kv,
		service.NewCartHandler(client, cfg.RequestTimeout),
		service.NewProfileHandler(authStore, client, cfg.RequestTimeout),
		service.NewOrderHandler(client, cfg.RequestTimeout),
		logger,
		service.WithPublisher(events),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cartHandler := h.NewCartHandler(client, authStore, cfg.RequestTimeout, logger)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, authStore, cfg.RequestTimeout, logger)
	if opened.redis != nil {
		cartCache := cache.NewRedisCache(opened.redis, cfg.CartCacheTTL)
		cartHandler.WithCache(cartCache)
		checkoutHandler.WithCache(cartCache)
		logger.Info("cart cache enabled", zap.Duration("ttl", cfg.CartCacheTTL))
	}

	router := h.NewRouter(h.Handlers{
		Auth:     h.NewAuthHandler(client, authStore, cfg.RequestTimeout, logger),
		Cart:     cartHandler,
		Banks:    h.NewBankHandler(client, authStore, cfg.RequestTimeout, logger),
		Checkout: checkoutHandler,
		Metrics:  h.NewServerMetrics(registry),
		Health:   h.StoreHealth(kv),
	}, cfg.RequestTimeout, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
