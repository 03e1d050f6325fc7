package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of rejected order creations",
	}, []string{"reason"})

	OrderStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Total number of buyer-driven order status transitions",
	}, []string{"to"})

	OrderItemUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_item_updates_total",
		Help: "Total number of seller-driven order item status updates",
	})

	OrderRollupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_rollups_total",
		Help: "Total number of order statuses derived from a uniform item set",
	})

	PaymentsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_processed_total",
		Help: "Total number of payments moved to completed",
	})

	PaymentsRefundedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_refunded_total",
		Help: "Total number of payments refunded",
	})

	PaymentsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_rejected_total",
		Help: "Total number of rejected payment state changes",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
