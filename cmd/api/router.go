package main

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"bugtracker-backend/internal/config"
	bugHandler "bugtracker-backend/internal/domains/bug/handler"
	"bugtracker-backend/internal/shared/middleware"
	"bugtracker-backend/pkg/container"
)

const (
	healthStatusOK       = "OK"
	healthStatusDegraded = "DEGRADED"
	healthCheckTimeout   = 2 * time.Second
)

// routerDeps những gì router cần từ container
type routerDeps struct {
	Config     *config.Config
	BugHandler *bugHandler.BugHandler
	Checks     map[string]container.HealthCheck
	PoolStats  func() (interface{}, error)
}

func SetupRouter(c *container.Container) *gin.Engine {
	return newRouter(routerDeps{
		Config:     c.Config,
		BugHandler: c.BugHandler,
		Checks:     c.HealthChecks(),
		PoolStats: func() (interface{}, error) {
			return c.PoolStats()
		},
	})
}

func newRouter(deps routerDeps) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(deps.Config.CORS.AllowedOrigins),
	)

	// ========================================
	// SYSTEM ROUTES
	// ========================================
	router.GET("/", indexHandler(deps.Config))
	router.GET("/health", healthCheckHandler(deps))
	router.GET("/api/health", healthCheckHandler(deps))

	// ========================================
	// BUG ROUTES
	// ========================================
	// Mount ở cả /api/bugs và /bugs
	deps.BugHandler.RegisterRoutes(router.Group("/api/bugs"))
	deps.BugHandler.RegisterRoutes(router.Group("/bugs"))

	router.NoRoute(middleware.NotFound())

	return router
}

// ========================================
// INDEX
// ========================================
func indexHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": cfg.App.Name,
			"version": cfg.App.Version,
			"endpoints": gin.H{
				"health":  "/health",
				"bugs":    "/api/bugs",
				"bugsAlt": "/bugs",
			},
		})
	}
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler luôn trả 200, dependency lỗi chỉ làm status = DEGRADED
func healthCheckHandler(deps routerDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := healthStatusOK
		services := gin.H{}

		names := make([]string, 0, len(deps.Checks))
		for name := range deps.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			err := deps.Checks[name](ctx)
			cancel()

			if err != nil {
				services[name] = "error: " + err.Error()
				status = healthStatusDegraded
				continue
			}
			services[name] = "ok"
		}

		health := gin.H{
			"status":    status,
			"message":   deps.Config.App.Name + " is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   deps.Config.App.Version,
			"services":  services,
		}

		if deps.PoolStats != nil {
			if stats, err := deps.PoolStats(); err == nil {
				health["pool"] = stats
			}
		}

		c.JSON(http.StatusOK, health)
	}
}
