package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger logs each HTTP request as one structured line:
// request_id (from RequestID), method, path, status and latency in milliseconds.
// Timestamps are rendered in loc.
func Logger(logger zerolog.Logger, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Run the error handler first so the logged status is the one sent.
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		rid, _ := c.Locals(RequestIDLocalKey).(string)

		level := zerolog.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		ev := logger.WithLevel(level).
			Time("ts", time.Now().In(loc)).
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000)
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			ev = ev.Str("trace_id", sc.TraceID().String())
		}
		if err != nil && status >= fiber.StatusInternalServerError {
			ev = ev.Err(err)
		}
		ev.Msg("request")

		return nil
	}
}

// LoggerWithWriter is Logger writing JSON lines to w.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(zerolog.New(w), loc)
}
