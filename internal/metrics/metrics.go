package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dodopayments_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dodopayments_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dodopayments_webhook_events_total",
			Help: "Webhook events received, by event type and outcome",
		},
		[]string{"type", "result"},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dodopayments_settlements_total",
			Help: "Settlement transitions applied, by transaction kind and final status",
		},
		[]string{"kind", "status"},
	)

	GiftsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dodopayments_gifts_sent_total",
			Help: "Gifts transferred between accounts",
		},
		[]string{"gift"},
	)

	PayoutsRequestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dodopayments_payouts_requested_total",
			Help: "Creator payout requests accepted",
		},
	)

	CheckoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dodopayments_checkout_sessions_total",
			Help: "Checkout sessions created, by purchase kind",
		},
		[]string{"kind"},
	)

	ReconciliationAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dodopayments_reconciliation_alerts_total",
			Help: "Alerts queued for manual reconciliation, by kind",
		},
		[]string{"kind"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWebhookEvent(eventType, result string) {
	WebhookEventsTotal.WithLabelValues(eventType, result).Inc()
}

func RecordSettlement(kind, status string) {
	SettlementsTotal.WithLabelValues(kind, status).Inc()
}

func RecordGiftSent(gift string) {
	GiftsSentTotal.WithLabelValues(gift).Inc()
}

func RecordPayoutRequested() {
	PayoutsRequestedTotal.Inc()
}

func RecordCheckoutSession(kind string) {
	CheckoutSessionsTotal.WithLabelValues(kind).Inc()
}

func RecordReconciliationAlert(kind string) {
	ReconciliationAlertsTotal.WithLabelValues(kind).Inc()
}
