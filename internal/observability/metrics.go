// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache-aside hits per key class.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_cache_hits_total",
		Help: "Cache-aside lookups served from Redis",
	}, []string{"key"})

	// CacheMisses counts cache-aside misses per key class.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_cache_misses_total",
		Help: "Cache-aside lookups that fell through to the database",
	}, []string{"key"})

	// NotificationsPublished counts live notifications pushed to Redis.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_notifications_published_total",
		Help: "Notifications published to per-user Redis channels",
	}, []string{"verb"})

	// NotificationFailures counts notification persistence and delivery errors.
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookclub_notification_failures_total",
		Help: "Notification sink failures by stage",
	}, []string{"stage"})
)
