package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// quietPaths are polled by health checkers and scrapers; successful hits log at DEBUG.
var quietPaths = map[string]bool{
	"/metrics":   true,
	"/v1/health": true,
	"/v1/ready":  true,
}

// AccessLogMiddleware logs one structured line per request: method, path,
// status, latency, bytes sent, request ID, the selected date range and error
// (if any). 4xx responses log at WARN, 5xx and handler errors at ERROR.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		began := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		status := c.Response().StatusCode()
		requestID, _ := c.Locals("requestid").(string)

		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(began)),
			slog.Int("bytes_out", len(c.Response().Body())),
			slog.String("request_id", requestID),
		}
		if start, end := c.Query("start"), c.Query("end"); start != "" || end != "" {
			attrs = append(attrs, slog.Group("range", slog.String("start", start), slog.String("end", end)))
		}

		level := slog.LevelInfo
		if quietPaths[path] && status < 400 {
			level = slog.LevelDebug
		}
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			level = slog.LevelError
		}

		slog.LogAttrs(c.UserContext(), level, method+" "+path, attrs...)
		return err
	}
}
