package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fjod/go_cart/storefront-service/internal/store"
)

type openedStore struct {
	kv    store.Store
	close func() error
	// redis is set only for the redis backend, the cart cache shares its connection
	redis *redis.Client
}

// openStore builds the backend named by STORE_BACKEND
func openStore(ctx context.Context, cfg *Config, logger *zap.Logger) (*openedStore, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case "memory":
		return &openedStore{kv: store.NewMemoryStore(), close: noop}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.SessionTTL))
		return &openedStore{kv: store.NewRedisStore(client, cfg.SessionTTL), close: client.Close, redis: client}, nil

	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(cfg.MigrationsPath); err != nil {
			_ = s.Close()
			return nil, err
		}
		logger.Info("sqlite store ready", zap.String("path", cfg.SQLitePath))
		return &openedStore{kv: s, close: s.Close}, nil

	case "postgres":
		s, err := store.NewPostgresStore(&store.Credentials{
			Host:              cfg.DBHost,
			Port:              cfg.DBPort,
			User:              cfg.DBUser,
			Password:          cfg.DBPassword,
			DBName:            cfg.DBName,
			MigrationsDirPath: cfg.MigrationsPath,
		})
		if err != nil {
			return nil, err
		}
		if err := s.RunMigrations(cfg.MigrationsPath); err != nil {
			_ = s.Close()
			return nil, err
		}
		logger.Info("postgres store ready", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
		return &openedStore{kv: s, close: s.Close}, nil

	case "mongo":
		db, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		closeFn := func() error {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return db.Client().Disconnect(disconnectCtx)
		}
		logger.Info("mongo store ready", zap.String("db", cfg.MongoDBName))
		return &openedStore{kv: store.NewMongoStore(db), close: closeFn}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
