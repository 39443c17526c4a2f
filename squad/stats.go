package squad

import (
	"fmt"
	"sync/atomic"
)

// Stats accumulates dispatch and wait-loop counters across a Squad's
// lifetime, adapted from the teacher's control.MetricsRegistry: plain
// atomic counters, a snapshot method, no background aggregation loop.
type Stats struct {
	dispatched int64
	passes     []int64
}

func newStats(n int) *Stats {
	return &Stats{passes: make([]int64, n)}
}

func (s *Stats) recordDispatch() {
	atomic.AddInt64(&s.dispatched, 1)
}

func (s *Stats) recordPass(workerIndex int) {
	atomic.AddInt64(&s.passes[workerIndex], 1)
}

// snapshot returns a point-in-time copy safe to hand to callers.
func (s *Stats) snapshot() map[string]int64 {
	out := make(map[string]int64, len(s.passes)+2)
	out["dispatched"] = atomic.LoadInt64(&s.dispatched)

	var total int64
	for i := range s.passes {
		v := atomic.LoadInt64(&s.passes[i])
		total += v
		out[fmt.Sprintf("worker_%d_passes", i)] = v
	}
	out["total_passes"] = total
	return out
}
