package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Timer measures one operation; Stop records it into a Latency.
type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

func (t *Timer) Stop(l *Latency) time.Duration {
	d := t.Duration()
	l.Observe(d)
	return d
}

// Latency accumulates observed durations.
type Latency struct {
	count Counter
	nanos Counter
}

func (l *Latency) Observe(d time.Duration) {
	if d < 0 {
		d = 0
	}
	l.count.Inc()
	l.nanos.Add(uint64(d))
}

func (l *Latency) Count() uint64 {
	return l.count.Load()
}

// AvgMillis is the mean observed duration, 0 before any observation.
func (l *Latency) AvgMillis() uint64 {
	n := l.count.Load()
	if n == 0 {
		return 0
	}
	return l.nanos.Load() / n / uint64(time.Millisecond)
}

// Workflow counts storefront events since process start.
type Workflow struct {
	ProductsSubmitted Counter
	ProductsApproved  Counter
	ProductsRejected  Counter
	CartAdds          Counter
	OrdersPlaced      Counter
	OrdersCancelled   Counter
	OrdersDelivered   Counter
	NotifyFailures    Counter

	Checkout     Latency
	CatalogQuery Latency
}

// Default is the process-wide registry the services report into.
var Default = &Workflow{}

func (w *Workflow) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"products_submitted":   w.ProductsSubmitted.Load(),
		"products_approved":    w.ProductsApproved.Load(),
		"products_rejected":    w.ProductsRejected.Load(),
		"cart_adds":            w.CartAdds.Load(),
		"orders_placed":        w.OrdersPlaced.Load(),
		"orders_cancelled":     w.OrdersCancelled.Load(),
		"orders_delivered":     w.OrdersDelivered.Load(),
		"notify_failures":      w.NotifyFailures.Load(),
		"checkout_avg_ms":      w.Checkout.AvgMillis(),
		"catalog_query_avg_ms": w.CatalogQuery.AvgMillis(),
	}
}
