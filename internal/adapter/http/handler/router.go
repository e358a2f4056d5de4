package handler

import (
	"net/http"

	"payment-webhook-bridge/internal/adapter/http/middleware"
	"payment-webhook-bridge/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WebhookSvc      ports.WebhookService
	ReturnCapture   ports.ReturnCaptureService
	CheckoutSvc     ports.CheckoutService
	SubscriptionSvc ports.SubscriptionSyncService
	MappingAdmin    ports.MappingAdminService
	AuthSvc         ports.AuthService
	TokenSvc        ports.TokenService
	RateLimiter     ports.RateLimiter  // nil = rate limiting disabled
	AuditSvc        ports.AuditService // nil = audit logging disabled
	HealthCheckers  []ports.HealthChecker
	MetricsHandler  http.Handler // nil = /metrics not served
	MetricsPath     string
	OpenAPISpec     []byte // nil = /docs answers 404
	MaxBodyBytes    int64
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	docs := NewDocsHandler(deps.OpenAPISpec, "/docs/openapi.yaml")
	r.GET("/docs", docs.Viewer)
	r.GET("/docs/openapi.yaml", docs.Spec)

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Provider-facing routes (authenticated by signature, not by token) ---
	webhookHandler := NewWebhookHandler(deps.WebhookSvc, deps.Logger)
	v1.POST("/webhooks/provider", webhookHandler.Receive)

	checkoutHandler := NewCheckoutHandler(deps.ReturnCapture, deps.CheckoutSvc, deps.Logger)
	v1.GET("/checkout/return", checkoutHandler.Return)

	// --- Admin routes ---
	admin := v1.Group("/admin")
	if deps.AuditSvc != nil {
		admin.Use(middleware.AuditLog(deps.AuditSvc))
	}

	authHandler := NewAuthHandler(deps.AuthSvc)
	admin.POST("/login", rl("admin_login"), authHandler.Login)

	adminHandler := NewAdminHandler(deps.SubscriptionSvc, deps.MappingAdmin)
	protected := admin.Group("", middleware.JWTAuth(deps.TokenSvc, deps.Logger), rl("admin"))
	{
		protected.POST("/orders/:id/checkout", checkoutHandler.StartCheckout)
		protected.POST("/subscriptions/:id/status-changed", adminHandler.SubscriptionStatusChanged)
		protected.DELETE("/mappings/products", adminHandler.ClearProductMappings)
	}

	return r
}
