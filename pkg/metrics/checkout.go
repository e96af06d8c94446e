package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics records order placement outcomes.
type CheckoutMetrics struct {
	placed     prometheus.Counter
	rejected   *prometheus.CounterVec
	orderValue prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully placed.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Order placements rejected, by reason.",
	}, []string{"reason"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_value_cents",
		Help:    "Distribution of placed order totals in cents.",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})
	reg.MustRegister(placed, rejected, orderValue)
	return &CheckoutMetrics{placed: placed, rejected: rejected, orderValue: orderValue}
}

// IncPlaced records a successful placement with its total.
func (c *CheckoutMetrics) IncPlaced(totalCents int64) {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.Inc()
	c.orderValue.Observe(float64(totalCents))
}

// IncRejected records a rejected placement for the given reason.
func (c *CheckoutMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}
