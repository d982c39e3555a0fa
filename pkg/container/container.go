package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"gallery-backend/internal/config"
	infraCache "gallery-backend/internal/infrastructure/cache"
	"gallery-backend/internal/infrastructure/database"
	"gallery-backend/internal/infrastructure/revalidate"
	"gallery-backend/internal/storage"
	storagePostgres "gallery-backend/internal/storage/postgres"
	"gallery-backend/pkg/cache"

	"gallery-backend/internal/domains/asset"
	assetHandler "gallery-backend/internal/domains/asset/handler"
	assetService "gallery-backend/internal/domains/asset/service"
	"gallery-backend/internal/domains/audit"
	auditHandler "gallery-backend/internal/domains/audit/handler"
	auditService "gallery-backend/internal/domains/audit/service"
	"gallery-backend/internal/domains/collection"
	collectionHandler "gallery-backend/internal/domains/collection/handler"
	collectionService "gallery-backend/internal/domains/collection/service"
	"gallery-backend/internal/domains/location"
	locationHandler "gallery-backend/internal/domains/location/handler"
	locationService "gallery-backend/internal/domains/location/service"
	"gallery-backend/internal/domains/year"
	yearHandler "gallery-backend/internal/domains/year/handler"
	yearService "gallery-backend/internal/domains/year/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then the store, then services, then handlers.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	AsynqClient *asynq.Client
	Store       storage.Store
	Broadcaster *revalidate.Broadcaster

	YearService       year.Service
	LocationService   location.Service
	CollectionService collection.Service
	AssetService      asset.Service
	AuditService      audit.Service

	YearHandler       *yearHandler.Handler
	LocationHandler   *locationHandler.Handler
	CollectionHandler *collectionHandler.Handler
	AssetHandler      *assetHandler.Handler
	AuditHandler      *auditHandler.Handler
}

func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("🗄️  Connecting to PostgreSQL...")
	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	log.Println("🔌 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.Store = storagePostgres.NewStore(db.Pool)
	c.Broadcaster = revalidate.NewBroadcaster(c.Cache, c.AsynqClient, cfg.Revalidate.Enabled)

	c.YearService = yearService.NewService(c.Store, c.Broadcaster)
	c.LocationService = locationService.NewService(c.Store, c.Broadcaster)
	c.CollectionService = collectionService.NewService(c.Store, c.Broadcaster)
	c.AssetService = assetService.NewService(c.Store, c.Broadcaster)
	c.AuditService = auditService.NewService(c.Store)

	c.YearHandler = yearHandler.NewHandler(c.YearService, c.Cache)
	c.LocationHandler = locationHandler.NewHandler(c.LocationService)
	c.CollectionHandler = collectionHandler.NewHandler(c.CollectionService, c.Cache)
	c.AssetHandler = assetHandler.NewHandler(c.AssetService)
	c.AuditHandler = auditHandler.NewHandler(c.AuditService)

	log.Println("✅ DI Container initialized")
	return c, nil
}

// Cleanup releases infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("👋 Container cleaned up")
}
