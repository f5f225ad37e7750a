package middleware

import (
	"net/http"
	"strconv"
	"time"

	"fitplan/pkg/metrics"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics her HTTP isteği için sayaç ve süre metriklerini kaydeder.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		metrics.RecordHttpRequest(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode), duration)
	})
}
