package squad

import (
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/momentics/threadsquad/api"
)

// TraceEvent is one entry in a Squad's bounded dispatch/teardown event
// ring, surfaced when Config.EnableTrace is set.
type TraceEvent struct {
	Kind          string
	Concurrency   int
	JoinRequested bool
	At            time.Time
}

// Trace is a bounded ring of recent dispatch events, built on the same
// queue the teacher declares in go.mod but never imports — here it backs
// a real probe ring, mirroring the eviction loop in the teacher's
// internal/concurrency ring buffers.
type Trace struct {
	mu  sync.Mutex
	cap int
	q   *queue.Queue
}

func newTrace(capacity int) *Trace {
	return &Trace{cap: capacity, q: queue.New()}
}

func (t *Trace) record(kind string, params api.Params) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.q.Add(TraceEvent{
		Kind:          kind,
		Concurrency:   params.Concurrency,
		JoinRequested: params.JoinRequested,
		At:            time.Now(),
	})
	for t.q.Length() > t.cap {
		t.q.Remove()
	}
}

func (t *Trace) recent() []TraceEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]TraceEvent, t.q.Length())
	for i := range out {
		out[i] = t.q.Get(i).(TraceEvent)
	}
	return out
}
