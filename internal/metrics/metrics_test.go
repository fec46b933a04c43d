package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(60), c.Load())
}

func TestWorkflow_Snapshot(t *testing.T) {
	w := &Workflow{}
	w.OrdersPlaced.Inc()
	w.ProductsApproved.Add(2)

	snap := w.Snapshot()
	assert.Equal(t, uint64(1), snap["orders_placed"])
	assert.Equal(t, uint64(2), snap["products_approved"])
	assert.Equal(t, uint64(0), snap["cart_adds"])
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.Duration(), time.Duration(0))

	var l Latency
	d := timer.Stop(&l)
	assert.GreaterOrEqual(t, d, time.Millisecond)
	assert.Equal(t, uint64(1), l.Count())
}

func TestLatency(t *testing.T) {
	var l Latency
	assert.Equal(t, uint64(0), l.AvgMillis())

	l.Observe(10 * time.Millisecond)
	l.Observe(30 * time.Millisecond)
	l.Observe(-time.Second)

	assert.Equal(t, uint64(3), l.Count())
	assert.Equal(t, uint64(13), l.AvgMillis())

	w := &Workflow{}
	w.Checkout.Observe(4 * time.Millisecond)
	assert.Equal(t, uint64(4), w.Snapshot()["checkout_avg_ms"])
	assert.Contains(t, w.Snapshot(), "catalog_query_avg_ms")
}
