package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/chainsearch/chainsearch/internal/addresses"
	"github.com/chainsearch/chainsearch/internal/auth"
	"github.com/chainsearch/chainsearch/internal/blockchain"
	"github.com/chainsearch/chainsearch/internal/config"
	"github.com/chainsearch/chainsearch/internal/identity"
	"github.com/chainsearch/chainsearch/internal/middleware"
	"github.com/chainsearch/chainsearch/internal/notification"
	"github.com/chainsearch/chainsearch/internal/search"
	"github.com/chainsearch/chainsearch/internal/searchlog"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// may be nil in development, in which case in-memory stores are used.
type Deps struct {
	Cfg        config.Config
	DB         *pgxpool.Pool
	Cache      *redis.Client
	Logger     *slog.Logger
	Blockchain *blockchain.Client
	Notifier   notification.Notifier
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if d.Cfg.IsDev() {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	chain := d.Blockchain
	if chain == nil {
		chain = blockchain.NewClient(&http.Client{Timeout: d.Cfg.UpstreamTimeout})
	}
	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	var (
		identityRepo identity.Repository
		addressRepo  addresses.Repository
		historyRepo  searchlog.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		addressRepo = addresses.NewPostgresRepository(d.DB)
		historyRepo = searchlog.NewPostgresRepository(d.DB)
	} else {
		d.Logger.Warn("no database configured, using in-memory stores")
		identityRepo = identity.NewMemoryRepository()
		addressRepo = addresses.NewMemoryRepository()
		historyRepo = searchlog.NewMemoryRepository()
	}

	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	addressSvc := addresses.NewService(addressRepo, chain)
	historySvc := searchlog.NewService(historyRepo, notifier, d.Logger)

	requireAuth := auth.RequireAuth(authSvc)
	// Replays are keyed by the authenticated caller, so idempotency only
	// guards routes behind requireAuth.
	registry := []fiber.Handler{requireAuth}
	if d.Cache != nil {
		registry = append(registry, middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterAuthRoutes(app, auth.NewHandler(identitySvc, authSvc), requireAuth)

	RegisterAddressRoutes(app.Group("/my", registry...), addresses.NewHandler(addressSvc))
	RegisterHistoryRoutes(app.Group("/searches", requireAuth), searchlog.NewHandler(historySvc))

	RegisterLookupRoutes(app, search.NewHandler(chain, historySvc, d.Logger), auth.OptionalAuth(authSvc))

	return nil
}
