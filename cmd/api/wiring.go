package main

import (
	"context"
	"fmt"
	"strings"

	"payment-webhook-bridge/config"
	httpHandler "payment-webhook-bridge/internal/adapter/http/handler"
	"payment-webhook-bridge/internal/adapter/metrics"
	"payment-webhook-bridge/internal/adapter/provider"
	"payment-webhook-bridge/internal/adapter/storage/memory"
	pgStorage "payment-webhook-bridge/internal/adapter/storage/postgres"
	redisStorage "payment-webhook-bridge/internal/adapter/storage/redis"
	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// eventPurger is implemented by event guards that keep claims in a table.
type eventPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// storage bundles the repositories for the configured backend.
type storage struct {
	mappings ports.MappingRepository
	orders   ports.OrderRepository
	subs     ports.SubscriptionRepository
	catalog  ports.CatalogRepository
	audit    ports.AuditRepository
	guard    ports.EventGuard
	limiter  ports.RateLimiter
	checkers []ports.HealthChecker
	closers  []func()
}

// Close releases connections in reverse order of opening.
func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	st := &storage{}

	if cfg.Database.InMemory() {
		mem := memory.NewStore()
		st.mappings = mem.Mappings()
		st.orders = mem.Orders()
		st.subs = mem.Subscriptions()
		st.catalog = mem.Catalog()
		st.audit = mem.Audit()
		st.guard = memory.NewEventGuard()
		st.limiter = memory.NewRateLimiter()
		log.Warn().Msg("Using in-memory storage; state is lost on restart")
	} else {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		st.mappings = pgStorage.NewMappingRepo(pool)
		st.orders = pgStorage.NewOrderRepo(pool)
		st.subs = pgStorage.NewSubscriptionRepo(pool)
		st.catalog = pgStorage.NewCatalogRepo(pool)
		st.audit = pgStorage.NewAuditRepo(pool)
		st.guard = pgStorage.NewEventGuard(pool)
		st.limiter = memory.NewRateLimiter()
		st.checkers = append(st.checkers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")
	}

	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st.closers = append(st.closers, func() { _ = rdb.Close() })
		st.guard = redisStorage.NewEventGuard(rdb)
		st.limiter = redisStorage.NewRateLimitStore(rdb)
		st.mappings = redisStorage.NewCachedMappingRepository(st.mappings, rdb, redisStorage.DefaultMappingTTL, log)
		st.checkers = append(st.checkers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	return st, nil
}

// application is the fully wired HTTP surface plus what main has to look after.
type application struct {
	deps     httpHandler.RouterDeps
	registry *prometheus.Registry
	purger   eventPurger
}

func buildApplication(cfg *config.Config, st *storage, log zerolog.Logger) *application {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	webhookMetrics := metrics.NewWebhookCollector(registry)

	gw := cfg.Gateway
	verifier, err := service.NewStandardWebhookVerifier(gw.WebhookKey(), cfg.Webhook.Tolerance)
	if err != nil {
		// Every webhook fails verification until the secret is fixed.
		log.Error().Err(err).Str("mode", gw.Mode()).Msg("Webhook signing secret is unusable")
		verifier = nil
	}

	client := provider.New(provider.Config{
		BaseURL: gw.BaseURL(),
		APIKey:  gw.APIKey(),
		Timeout: cfg.Provider.Timeout,
		Retry: provider.RetryPolicy{
			MaxRetries: cfg.Provider.MaxRetries,
			MinWait:    cfg.Provider.MinWait,
			MaxWait:    cfg.Provider.MaxWait,
		},
		BreakerFailures: cfg.Provider.BreakerFailures,
		BreakerTimeout:  cfg.Provider.BreakerTimeout,
	}, log)

	resolver := service.NewEventResolver(st.mappings, st.orders, st.subs, gw.ID, log)
	deps := service.DispatcherDeps{
		Guard:    st.guard,
		Resolver: resolver,
		Orders:   st.orders,
		Subs:     st.subs,
		Provider: client,
		Metrics:  webhookMetrics,
	}
	// A typed nil would defeat the dispatcher's nil check.
	if verifier != nil {
		deps.Verifier = verifier
	}
	dispatcher := service.NewWebhookDispatcher(deps, service.DispatcherConfig{
		TestMode:          gw.TestMode,
		ReplayTTL:         cfg.Webhook.ReplayTTL,
		ProcessingTimeout: cfg.Webhook.ProcessingTimeout,
	}, log)

	catalogSvc := service.NewCatalogSyncService(st.catalog, st.mappings, st.orders, client, service.CatalogConfig{
		Currency:     gw.Currency,
		TaxInclusive: gw.TaxInclusive,
		TaxCategory:  gw.TaxCategory,
	}, log)
	checkoutSvc := service.NewCheckoutService(st.orders, st.subs, st.mappings, catalogSvc, client, service.CheckoutConfig{
		APIKey:           gw.APIKey(),
		Mode:             titleCase(gw.Mode()),
		CheckoutSessions: gw.CheckoutSessions,
		ReturnURL:        gw.ReturnURL,
	}, log)

	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	if cfg.Admin.KeyHash != "" && cfg.JWT.Secret == "" {
		log.Warn().Msg("Admin login is enabled without a JWT secret")
	}

	app := &application{
		registry: registry,
		deps: httpHandler.RouterDeps{
			WebhookSvc:      dispatcher,
			ReturnCapture:   service.NewReturnCaptureService(st.mappings, st.orders, st.subs, gw.ID, log),
			CheckoutSvc:     checkoutSvc,
			SubscriptionSvc: service.NewSubscriptionSyncService(st.subs, st.mappings, client, gw.ID, log),
			MappingAdmin:    service.NewMappingAdminService(st.mappings, log),
			AuthSvc:         service.NewAdminAuthService(cfg.Admin.KeyHash, hashSvc, tokenSvc),
			TokenSvc:        tokenSvc,
			RateLimiter:     st.limiter,
			AuditSvc:        service.NewAuditService(st.audit, log),
			HealthCheckers:  st.checkers,
			MaxBodyBytes:    cfg.Webhook.MaxBodyBytes,
			Logger:          log,
		},
	}
	if cfg.Metrics.Enabled {
		app.deps.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
		app.deps.MetricsPath = cfg.Metrics.Path
	}
	if p, ok := st.guard.(eventPurger); ok {
		app.purger = p
	}
	return app
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
