package squad

import (
	"log"
	"runtime"
	"sync/atomic"

	"github.com/momentics/threadsquad/internal/affinity"
	"github.com/momentics/threadsquad/internal/tree"
	"github.com/momentics/threadsquad/internal/waitutil"
)

// worker is one per-worker record. Cache-line padding separates the four
// sense-bit atomics so no two of them share a line, and a trailing pad
// keeps one worker's tail off the next allocation's line — the same padding idiom the teacher uses
// in internal/concurrency/ring.go and core/concurrency/ring.go to keep
// head/tail apart.
type worker struct {
	index         int
	numSubthreads int
	hwThreadID    int
	pin           bool

	// allChildren is this worker's direct subordinates under the full,
	// unrestricted (limit==N) topology. Restricted per-dispatch children
	// are always a prefix of this slice (child positions are monotonic),
	// see restrictedChildren.
	allChildren []int

	incoming uint32
	_        [60]byte
	outgoing uint32
	_        [60]byte
	upward   uint32
	_        [60]byte
	downward uint32
	_        [60]byte

	// syncData holds this worker's own collect/broadcast payload pointer,
	// exposed to its parent only between this worker's own upward toggle
	// and its subsequent observation of downward — an intentionally
	// short-lived, opaque borrow (spec section 4.5/9).
	syncData atomic.Value

	// prevDownward is this worker's own bookkeeping for detecting the
	// next downward flip; only this worker ever touches it.
	prevDownward uint32

	// childPrevUpward is this worker's bookkeeping, as a parent, of the
	// last observed upward value per direct child, parallel to
	// allChildren; only this worker (as the fixed parent of those
	// children) ever touches it.
	childPrevUpward []uint32

	done chan struct{}
	_    [64]byte
}

func newWorker(index, numSubthreads, hwThreadID int, pin bool) *worker {
	all := tree.Children(index, numSubthreads, index+numSubthreads)
	return &worker{
		index:           index,
		numSubthreads:   numSubthreads,
		hwThreadID:      hwThreadID,
		pin:             pin,
		allChildren:     all,
		childPrevUpward: make([]uint32, len(all)),
		done:            make(chan struct{}),
	}
}

// restrictedChildren returns the prefix of allChildren whose index is
// below limit, mirroring the spec's "min(first+stride, concurrency_or_N)"
// walk restriction.
func restrictedChildren(allChildren []int, limit int) []int {
	i := 0
	for i < len(allChildren) && allChildren[i] < limit {
		i++
	}
	return allChildren[:i]
}

// waitMode reports the wait policy a worker's own internal waits should
// use; the driver's own top-level wait always forces OsWait regardless
// (see Squad.dispatch).
func (s *Squad) waitMode() waitutil.Mode {
	if s.spin {
		return waitutil.Spin
	}
	return waitutil.OsWait
}

// loop is the per-worker goroutine body. It never returns except through
// the join_requested branch; a panic escaping task.Execute propagates and
// terminates the process, per spec section 4.7.
func (s *Squad) loop(w *worker) {
	if w.pin {
		if err := affinity.Pin(w.hwThreadID); err != nil {
			log.Printf("squad: worker %d failed to pin to hardware thread %d: %v", w.index, w.hwThreadID, err)
		}
	} else {
		runtime.LockOSThread()
	}

	var prevOutgoing uint32
	pass := 0
	mode := s.waitMode()

	for {
		waitutil.WaitAndLoad(&w.incoming, prevOutgoing, mode)
		task := s.currentTask()
		params := task.Params()

		// The forking dispatch (pass 0) and the join address every worker,
		// since forkAll pre-toggled them all.
		limit := params.Concurrency
		if params.JoinRequested || pass == 0 {
			limit = s.n
		}
		children := restrictedChildren(w.allChildren, limit)

		if pass > 0 {
			for _, c := range children {
				waitutil.ToggleAndNotify(&s.workers[c].incoming)
			}
		}

		if w.index < params.Concurrency {
			ctx := &taskContext{squad: s, worker: w, runningThreads: params.Concurrency}
			task.Execute(ctx, w.index, params.Concurrency)
		}

		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			// c has finished this pass once its outgoing matches its
			// incoming; c sits out dispatches whose concurrency is at or
			// below its index, so its sense can differ from this worker's
			// own prevOutgoing.
			waitutil.WaitAndLoad(&s.workers[c].outgoing, atomic.LoadUint32(&s.workers[c].incoming)^1, mode)
			if c < params.Concurrency {
				task.Merge(w.index, c)
			}
		}

		old := waitutil.ToggleAndNotify(&w.outgoing)
		prevOutgoing = old ^ 1
		if pass < int(^uint(0)>>1) {
			pass++
		}
		s.stats.recordPass(w.index)

		if params.JoinRequested {
			for _, c := range children {
				<-s.workers[c].done
			}
			close(w.done)
			return
		}
	}
}
