package middleware

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fitplan/pkg/tracing"
)

// Tracing her istek için bir span açar ve trace kimliğini yanıt
// başlığında dışarı verir.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.StartSpan(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
			attribute.String("http.remote_addr", r.RemoteAddr),
		)

		if traceID := trace.SpanContextFromContext(ctx).TraceID(); traceID.IsValid() {
			w.Header().Set("X-Trace-ID", traceID.String())
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
