package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bugtracker-backend/internal/config"
	bugHandler "bugtracker-backend/internal/domains/bug/handler"
	bugRepo "bugtracker-backend/internal/domains/bug/repository"
	bugService "bugtracker-backend/internal/domains/bug/service"
	infraCache "bugtracker-backend/internal/infrastructure/cache"
	"bugtracker-backend/internal/infrastructure/database"
	"bugtracker-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container là root của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// ========================================
	// BUG DOMAIN
	// ========================================
	BugRepo    bugRepo.BugRepository
	BugService bugService.ServiceInterface
	BugHandler *bugHandler.BugHandler
}

// HealthCheck một dependency cần kiểm tra trong /health
type HealthCheck func(ctx context.Context) error

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo theo thứ tự:
// Config -> Database -> Cache -> Repository -> Service -> Handler
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.Cache = newCache(ctx, cfg)

	// ========================================
	// STEP 3: BUG DOMAIN
	// ========================================
	c.BugRepo = bugRepo.NewPostgresBugRepository(db.Pool, dbConfig.QueryTimeout)
	c.BugService = bugService.NewBugService(c.BugRepo, c.Cache, cfg.Cache.StatsTTL)
	c.BugHandler = bugHandler.NewBugHandler(c.BugService)

	log.Info().Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

// newCache chọn backend theo CACHE_DRIVER
// Redis không kết nối được thì vẫn dùng client đó: lỗi cache chỉ được log
func newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		log.Info().Msg("[CACHE] Using in-memory cache")
		return cache.NewMemoryCache(cache.DefaultMemoryCacheSize, cfg.Cache.StatsTTL)

	case config.CacheDriverNone:
		log.Info().Msg("[CACHE] Cache disabled")
		return cache.NoopCache{}

	default:
		rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("[CACHE] Redis connection failed (non-critical)")
		}
		return rc
	}
}

// HealthChecks các dependency được báo cáo trong /health
func (c *Container) HealthChecks() map[string]HealthCheck {
	checks := make(map[string]HealthCheck, 2)
	if c.DB != nil {
		checks["database"] = c.DB.HealthCheck
	}
	if c.Cache != nil {
		checks["cache"] = c.Cache.Ping
	}
	return checks
}

// PoolStats snapshot connection pool cho /health
func (c *Container) PoolStats() (*database.PoolStats, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	return c.DB.Stats()
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[CACHE] Failed to close Redis")
		} else {
			log.Info().Msg("[CACHE] Redis connections closed")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
