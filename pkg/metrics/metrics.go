package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_http_requests_total",
			Help: "Toplam HTTP istek sayısı",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitplan_http_request_duration_seconds",
			Help:    "HTTP istek süresi (saniye)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	DatabaseOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_database_operations_total",
			Help: "Toplam veritabanı operasyonu sayısı",
		},
		[]string{"operation", "entity"},
	)

	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitplan_database_operation_duration_seconds",
			Help:    "Veritabanı operasyon süresi (saniye)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "entity"},
	)

	AccountOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_account_operations_total",
			Help: "Hesap operasyonu sayısı (register, login, ...)",
		},
		[]string{"operation", "status"},
	)

	AuditQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitplan_audit_queue_size",
			Help: "Denetim kuyruğundaki iş sayısı",
		},
	)

	AuditWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitplan_audit_workers",
			Help: "Aktif denetim işçisi sayısı",
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_cache_hits_total",
			Help: "Önbellek isabet sayısı",
		},
		[]string{"source"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_cache_misses_total",
			Help: "Önbellek isabet etmeme sayısı",
		},
		[]string{"source"},
	)
)

func RecordHttpRequest(method, endpoint, status string, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordDatabaseOperation(operation, entity string, duration time.Duration) {
	DatabaseOperationsTotal.WithLabelValues(operation, entity).Inc()
	DatabaseOperationDuration.WithLabelValues(operation, entity).Observe(duration.Seconds())
}

func RecordAccountOperation(operation, status string) {
	AccountOperationsTotal.WithLabelValues(operation, status).Inc()
}

func UpdateAuditQueueStats(queueSize, activeWorkers int) {
	AuditQueueSize.Set(float64(queueSize))
	AuditWorkers.Set(float64(activeWorkers))
}

func RecordCacheHit(source string) {
	CacheHits.WithLabelValues(source).Inc()
}

func RecordCacheMiss(source string) {
	CacheMisses.WithLabelValues(source).Inc()
}
