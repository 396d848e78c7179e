package core

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ContextKey string

const (
	CorrelationIDHeader                = "Correlation-Id"
	CorrelationIDContextKey ContextKey = "correlation_id"
)

// CorrelationIDMiddleware propagates the caller-supplied correlation id, or
// mints one, so log entries for a request can be tied together.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		correlationID := r.Header.Get(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		ctx = context.WithValue(ctx, CorrelationIDContextKey, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
