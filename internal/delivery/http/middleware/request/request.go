package http_request_middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/krishkpatil/getflix/internal/metrics"
)

const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "request_id"
)

const unmatchedPath = "unmatched"

// Logger tags every request with an id and records its outcome.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set(RequestIDKey, requestID)
		ctx.Header(RequestIDHeader, requestID)

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		status := ctx.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(ctx.Request.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(elapsed.Seconds())

		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", ctx.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("elapsed", elapsed),
		}
		switch {
		case status >= 500:
			logger.Error("request failed", attrs...)
		case status >= 400:
			logger.Warn("request rejected", attrs...)
		default:
			logger.Info("request served", attrs...)
		}
	}
}
