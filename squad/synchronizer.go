package squad

import (
	"github.com/momentics/threadsquad/api"
	"github.com/momentics/threadsquad/internal/waitutil"
)

// runCollective drives the bottom-up collect / top-down broadcast climb
// described in spec section 4.5: each worker waits for every direct
// child's upward flip and folds its exposed payload in (Collect), then
// — unless it is the root — exposes its own folded payload and waits for
// its own downward flip before adopting the value its parent broadcast
// (Broadcast). The root finalizes the combined value (applying a
// transform, if the synchronizer carries one) before every node pushes
// the final value on down to its own children.
func (s *Squad) runCollective(w *worker, sync api.Synchronizer, limit int) any {
	mode := s.waitMode()
	children := restrictedChildren(w.allChildren, limit)

	for i, c := range children {
		newUp := waitutil.WaitAndLoad(&s.workers[c].upward, w.childPrevUpward[i], mode)
		w.childPrevUpward[i] = newUp
		childVal := s.workers[c].syncData.Load()
		sync.Collect(childVal)
	}

	if w.index != 0 {
		w.syncData.Store(sync.SyncData())
		waitutil.ToggleAndNotify(&w.upward)

		newDown := waitutil.WaitAndLoad(&w.downward, w.prevDownward, mode)
		w.prevDownward = newDown
		received := w.syncData.Load()
		sync.Broadcast(received)
	} else {
		if f, ok := sync.(finalizer); ok {
			f.Finalize()
		}
	}

	final := sync.SyncData()
	for _, c := range children {
		s.workers[c].syncData.Store(final)
		waitutil.ToggleAndNotify(&s.workers[c].downward)
	}
	return final
}

// finalizer is an optional capability a Synchronizer can implement to run
// a one-time step, on the root only, after collection completes and
// before the result is broadcast back down — reduceTransformSync uses it
// to apply its transform exactly once.
type finalizer interface {
	Finalize()
}

// barrierSync implements api.Synchronizer for TaskContext.Sync: it
// carries no payload, it merely rides the collect/broadcast climb to
// rendezvous every participating worker.
type barrierSync struct{}

func (*barrierSync) SyncData() any        { return struct{}{} }
func (*barrierSync) Collect(any)          {}
func (*barrierSync) Broadcast(any)        {}

// reduceSync implements api.Synchronizer for TaskContext.Reduce.
type reduceSync struct {
	value any
	op    func(a, b any) any
}

func (s *reduceSync) SyncData() any { return s.value }
func (s *reduceSync) Collect(child any) {
	s.value = s.op(s.value, child)
}
func (s *reduceSync) Broadcast(received any) {
	s.value = received
}

// reduceTransformSync implements api.Synchronizer for
// TaskContext.ReduceTransform. transform runs once, at the root, via
// Finalize — never again as the value propagates back down, so every
// worker receives the same, once-transformed result.
type reduceTransformSync struct {
	value     any
	op        func(a, b any) any
	transform func(any) any
}

func (s *reduceTransformSync) SyncData() any { return s.value }
func (s *reduceTransformSync) Collect(child any) {
	s.value = s.op(s.value, child)
}
func (s *reduceTransformSync) Broadcast(received any) {
	s.value = received
}
func (s *reduceTransformSync) Finalize() {
	s.value = s.transform(s.value)
}
