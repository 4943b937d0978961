package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcamp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitcamp_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcamp_orders_created_total",
			Help: "Total number of orders created",
		},
		[]string{"payment_method", "promo"},
	)

	PromoRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcamp_promo_rejections_total",
			Help: "Promo codes dropped at checkout or refused at preview, by reason",
		},
		[]string{"reason"},
	)

	BookingCodeFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcamp_booking_code_fallbacks_total",
			Help: "Booking codes produced by the timestamp fallback",
		},
	)

	PaymentDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcamp_payment_decisions_total",
			Help: "Payment proofs submitted, approved or rejected",
		},
		[]string{"decision"},
	)

	RevenueCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcamp_revenue_cents_total",
			Help: "Sum of approved payment amounts in cents",
		},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcamp_uploads_total",
			Help: "Image uploads by driver and status",
		},
		[]string{"driver", "status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcamp_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitcamp_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	PendingOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitcamp_pending_orders",
			Help: "Orders waiting for payment",
		},
	)

	PaymentsWaitingReview = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitcamp_payments_waiting_review",
			Help: "Payment proofs waiting for an admin decision",
		},
	)

	ActiveTickets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitcamp_active_tickets",
			Help: "Tickets whose validity window contains now",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordOrder(paymentMethod string, promoApplied bool) {
	promo := "none"
	if promoApplied {
		promo = "applied"
	}
	OrdersCreatedTotal.WithLabelValues(paymentMethod, promo).Inc()
}

func RecordPromoRejection(reason string) {
	PromoRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordBookingCodeFallback() {
	BookingCodeFallbacksTotal.Inc()
}

func RecordPaymentDecision(decision string) {
	PaymentDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordRevenue(amountCents int64) {
	RevenueCentsTotal.Add(float64(amountCents))
}

func RecordUpload(driver, status string) {
	UploadsTotal.WithLabelValues(driver, status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

// SetBacklog publishes the gauges refreshed by the stats job.
func SetBacklog(pendingOrders, waitingPayments, activeTickets int64) {
	PendingOrders.Set(float64(pendingOrders))
	PaymentsWaitingReview.Set(float64(waitingPayments))
	ActiveTickets.Set(float64(activeTickets))
}
