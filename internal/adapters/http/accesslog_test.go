package http

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/olistboard/internal/pkg/logging"
)

func captureLogs(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, level, "json"))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestAccessLog_RangeAttrs(t *testing.T) {
	buf := captureLogs(t, "info")

	app := fiber.New()
	app.Use(AccessLogMiddleware())
	app.Get("/v1/summary", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/v1/summary?start=2018-01-01&end=2018-02-01", nil)
	if _, err := app.Test(req, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"range":{"start":"2018-01-01","end":"2018-02-01"}`) {
		t.Errorf("expected range group in log line, got %s", out)
	}
	if !strings.Contains(out, `"status":200`) {
		t.Errorf("expected status in log line, got %s", out)
	}
}

func TestAccessLog_HealthChecksAreQuiet(t *testing.T) {
	buf := captureLogs(t, "info")

	app := fiber.New()
	app.Use(AccessLogMiddleware())
	app.Get("/v1/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/v1/health", nil)
	if _, err := app.Test(req, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("successful health check should log below info, got %s", buf.String())
	}
}
