// Package ctxmanage plumbs per-request values, currently just the trace id
// set by the logging middleware.
package ctxmanage

import (
	"context"

	"github.com/gin-gonic/gin"
)

type key string

const traceIdKey key = "trace_id"

func WithTraceId(ctx context.Context, traceId string) context.Context {
	return context.WithValue(ctx, traceIdKey, traceId)
}

func GetTraceId(ctx context.Context) string {
	traceId, ok := ctx.Value(traceIdKey).(string)
	if !ok {
		return "unknown"
	}
	return traceId
}

// GetTraceIdOfRequest fetches the trace id the middleware attached to the
// incoming request.
func GetTraceIdOfRequest(c *gin.Context) string {
	return GetTraceId(c.Request.Context())
}
