package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/handler"
	"github.com/festwine/tasting-gate/internal/middleware"
)

// RegisterRoutes registers routes that need no dependencies.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterGuest registers the unauthenticated pre-selection and
// dashboard endpoints: session minting, catalog browsing, queue wait
// estimates and the throughput rollups rendered by the operator UI.
func RegisterGuest(e *echo.Echo, s *handler.SessionHandler, cat *handler.CatalogHandler, dash *handler.DashboardHandler) {
	g := e.Group("/v1")
	g.POST("/session", s.Create)
	g.GET("/catalog", cat.Tribes)
	g.GET("/catalog/:tribe", cat.ItemsForTribe)
	g.GET("/wait", cat.WaitEstimate)
	g.POST("/dashboard", dash.Summary)
	g.GET("/dashboard/live", dash.Live)
}

// RegisterBooth registers the booth-device endpoints behind the booth
// key check and the scan-flood rate limiter.  These are the only two
// interfaces a booth needs: issue during pre-selection, scan at the
// pour.
func RegisterBooth(e *echo.Echo, t *handler.TicketHandler, cfg config.Config, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	booth := e.Group("/v1")
	booth.Use(middleware.BoothKeyAuth(cfg.BoothKeyHash))
	booth.Use(middleware.NewTokenBucket(rlCfg, rdb))
	booth.POST("/tickets", t.Issue)
	booth.POST("/scan", t.Scan)
}
