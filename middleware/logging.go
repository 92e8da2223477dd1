// Package middleware provides ready-made interceptors for resourceful
// registries.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tavish/resourceful"
)

// Logging creates an interceptor that logs endpoint calls using slog.
// It logs the start and end of each call, including duration and status.
func Logging(logger *slog.Logger) resourceful.UnaryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, info *resourceful.CallInfo, req *http.Request, next resourceful.HandlerFunc) (*http.Response, error) {
		start := time.Now()

		logger.InfoContext(ctx, "call started",
			slog.String("endpoint", info.Endpoint),
			slog.String("action", info.Action),
			slog.String("method", info.Method),
		)

		res, err := next(ctx, req)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "call failed",
				slog.String("endpoint", info.Endpoint),
				slog.String("action", info.Action),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "call completed",
				slog.String("endpoint", info.Endpoint),
				slog.String("action", info.Action),
				slog.Int("status", res.StatusCode),
				slog.Duration("duration", duration),
			)
		}

		return res, err
	}
}
