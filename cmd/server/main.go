package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/festwine/tasting-gate/internal/catalog"
	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/config"
	"github.com/festwine/tasting-gate/internal/database"
	"github.com/festwine/tasting-gate/internal/handler"
	"github.com/festwine/tasting-gate/internal/queue"
	"github.com/festwine/tasting-gate/internal/repository"
	"github.com/festwine/tasting-gate/internal/router"
	queue_publisher "github.com/festwine/tasting-gate/internal/service/queue_publisher"
	"github.com/festwine/tasting-gate/internal/ticket"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	clk := clock.Real()

	// Catalog: venue file when configured, built-in seed otherwise.
	cat := catalog.Seed()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("load catalog %s: %v", cfg.CatalogPath, err)
		}
		cat = loaded
	}

	// Redis backs the consumed-ticket seen-set and the rate limiter.
	// Without it the seen-set degrades to in-process, which is fine
	// for a single-node deployment.
	rdb := config.NewRedisClient()
	var consumed ticket.ConsumedStore
	if rdb != nil {
		consumed = repository.NewRedisConsumedStore(rdb)
	} else {
		log.Printf("redis unavailable; consumed-ticket set is process-local")
		consumed = repository.NewMemoryConsumedStore(clk)
	}

	issuer := ticket.NewIssuer(cfg.TicketSecret, cfg.TicketTTL, clk)
	validator := ticket.NewValidator(cfg.TicketSecret, cfg.ValidateBudget, clk, consumed)

	// Optional MySQL audit store: exact dashboard counts when
	// present, proportional estimates when not.
	var audit *repository.AuditRepo
	if cfg.HasDB() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Printf("audit store unavailable: %v; running without auditing", err)
		} else {
			audit = repository.NewAuditRepo(db)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := audit.EnsureSchema(ctx); err != nil {
				log.Printf("audit schema: %v; running without auditing", err)
				audit = nil
			}
			cancel()
		}
	}

	ticketHandler := &handler.TicketHandler{
		Cfg:       cfg,
		Catalog:   cat,
		Issuer:    issuer,
		Validator: validator,
		Audit:     audit,
		Publish:   queue_publisher.PublishPourCompleted,
		Clk:       clk,
	}
	dashHandler := &handler.DashboardHandler{Cfg: cfg, Audit: audit, Clk: clk}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterGuest(e, handler.NewSessionHandler(clk), handler.NewCatalogHandler(cfg, cat), dashHandler)
	router.RegisterBooth(e, ticketHandler, cfg, config.LoadRateLimitConfig(), rdb)

	if cfg.ConsumerEnabled {
		go queue.StartPourConsumer()
	}

	addr := ":" + cfg.Port
	log.Printf("tasting gate listening on %s (env=%s, ttl=%s, budget=%s)", addr, cfg.Env, cfg.TicketTTL, cfg.ValidateBudget)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
