// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatherly_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DefaultScheduleApplies counts weeks synthesized from a default schedule.
	DefaultScheduleApplies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatherly_default_schedule_applies_total",
		Help: "Total number of weeks synthesized from a user default schedule",
	})

	// CalendarSyncFailures counts external calendar sync failures by provider.
	CalendarSyncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatherly_calendar_sync_failures_total",
		Help: "Total number of external calendar sync failures",
	}, []string{"provider"})

	// RemindersSent counts availability reminder SMS sends by outcome.
	RemindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatherly_reminders_sent_total",
		Help: "Total number of availability reminder SMS sends",
	}, []string{"outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
