// Package app opens the stores selected by configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"neurodiverse/internal/cache"
	"neurodiverse/internal/config"
	"neurodiverse/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// App holds the repositories and caches shared by the entrypoints
type App struct {
	TextRepo    repository.TextRepo
	ChapterRepo repository.ChapterRepo
	FlowCache   cache.FlowCache

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// New opens the configured store backend and flow cache
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	switch cfg.StoreBackend {
	case config.BackendFile:
		a.TextRepo = repository.NewFileTextRepo(cfg.TextFile)
		a.ChapterRepo = repository.NewFileChapterRepo(cfg.ChaptersFile)
		logger.Info("using file store",
			zap.String("text", cfg.TextFile),
			zap.String("chapters", cfg.ChaptersFile))

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		a.mongoClient = client

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("ping MongoDB: %w", err)
		}

		db := client.Database(cfg.MongoDB)
		a.TextRepo = repository.NewMongoTextRepo(db)
		a.ChapterRepo = repository.NewMongoChapterRepo(db)
		logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if !cfg.CacheEnabled() {
		a.FlowCache = cache.NewNoopFlowCache()
		logger.Info("flow cache disabled, REDIS_URI not set")
		return a, nil
	}

	a.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := a.redisClient.Ping(pingCtx).Err(); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("ping Redis: %w", err)
	}
	a.FlowCache = cache.NewFlowCache(a.redisClient, cfg.CacheTTL)
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))

	return a, nil
}

// Close releases the database connections
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.mongoClient != nil {
		a.mongoClient.Disconnect(ctx)
	}
}
