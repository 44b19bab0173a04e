// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobcard_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobcard_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	JobcardsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobcard_jobcards_created_total",
		Help: "Jobcards successfully created.",
	})

	JobcardsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobcard_jobcards_deleted_total",
		Help: "Jobcards deleted.",
	})

	PaymentsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobcard_payments_applied_total",
			Help: "Payments applied to jobcards, by payment method.",
		},
		[]string{"method"},
	)

	PaymentAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobcard_payment_amount_total",
		Help: "Sum of all payment amounts applied.",
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "jobcard_websocket_clients",
		Help: "Connected realtime clients.",
	})

	BackupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobcard_backups_total",
			Help: "Backup uploads by result.",
		},
		[]string{"result"},
	)
)
