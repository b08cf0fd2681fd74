package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/olistboard/internal/pkg/metrics"
)

// requestTimeout bounds API handlers. Chart renders over the full dataset
// are the slowest path.
const requestTimeout = 30 * time.Second

// SetupRoutes registers the page, REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(DeprecationMiddleware(deprecatedRoutes))

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// Dashboard page
	app.Get("/", timeout.NewWithContext(PageHandler(deps), requestTimeout))

	// REST API v1
	v1 := app.Group("/v1")
	v1.Get("/date-range", DateRangeHandler(deps))
	v1.Get("/summary", timeout.NewWithContext(SummaryHandler(deps), requestTimeout))
	v1.Get("/products/top", timeout.NewWithContext(TopProductHandler(deps), requestTimeout))
	v1.Get("/products/revenue", timeout.NewWithContext(ProductRevenueHandler(deps), requestTimeout))
	v1.Get("/regions/spend", timeout.NewWithContext(RegionSpendHandler(deps), requestTimeout))
	v1.Get("/customers/locations", timeout.NewWithContext(CustomerLocationsHandler(deps), requestTimeout))
	v1.Get("/customers/top-spenders", timeout.NewWithContext(TopSpendersHandler(deps), requestTimeout))
	v1.Get("/customers/density", timeout.NewWithContext(StateDensityHandler(deps), requestTimeout))
	v1.Get("/charts/:file", timeout.NewWithContext(ChartHandler(deps), requestTimeout))
	v1.Get("/assets/portrait", timeout.NewWithContext(PortraitHandler(deps), requestTimeout))

	// Deprecated alias of /v1/charts/customer-map.png
	v1.Get("/map.png", timeout.NewWithContext(MapHandler(deps), requestTimeout))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app, deps.DocsPath)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
