package squad

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/threadsquad/api"
	"github.com/momentics/threadsquad/internal/tree"
	"github.com/momentics/threadsquad/internal/waitutil"
)

// Squad owns a fixed-size worker array and dispatches tasks to it through
// the tree-structured sense-bit protocol in internal/waitutil and
// internal/tree. It is immutable after construction except for the
// single non-owning task pointer live between a dispatch and its
// completion (spec section 3).
type Squad struct {
	n     int
	spin  bool
	topo  *tree.Topology

	workers []*worker

	runMu sync.Mutex

	forked bool
	closed bool

	task                 atomic.Value // taskSlot
	driverPrevOutgoing   uint32

	stats *Stats
	trace *Trace
}

// taskSlot wraps the dispatched task so every Store into Squad.task uses
// the same concrete type, including the cleared (nil task) state.
type taskSlot struct{ t api.Task }

// New validates cfg and constructs a Squad. No worker goroutines exist
// yet — they are forked lazily on the first Run/RunAndJoin/TransformReduce
// call, per spec section 3's "os_thread ... created lazily on first run".
func New(cfg Config) (*Squad, error) {
	r, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	topo := tree.Build(r.numThreads)
	s := &Squad{
		n:     r.numThreads,
		spin:  r.spin,
		topo:  topo,
		stats: newStats(r.numThreads),
	}
	if r.trace {
		s.trace = newTrace(r.traceCap)
	}

	s.workers = make([]*worker, r.numThreads)
	for i := 0; i < r.numThreads; i++ {
		s.workers[i] = newWorker(i, topo.NumSubthreads(i), r.hwThreadFor(i), r.pin)
	}
	return s, nil
}

// NumThreads returns the worker count fixed at construction.
func (s *Squad) NumThreads() int { return s.n }

// Stats exposes the dispatch total and per-worker pass counters, an ambient observability
// addition (see SPEC_FULL.md section 6) never excluded by the original
// spec's non-goals.
func (s *Squad) Stats() map[string]int64 { return s.stats.snapshot() }

// Trace returns recent dispatch/teardown events, or nil if EnableTrace
// was not set on the Config this Squad was built from.
func (s *Squad) Trace() []TraceEvent {
	if s.trace == nil {
		return nil
	}
	return s.trace.recent()
}

func (s *Squad) currentTask() api.Task {
	return s.task.Load().(taskSlot).t
}

// ActionFunc is the user closure a plain Run/RunAndJoin dispatches.
type ActionFunc func(ctx api.TaskContext, threadIndex, runningThreads int)

// Run invokes action on every worker and waits for completion, using the
// squad's full worker count as concurrency.
func (s *Squad) Run(action ActionFunc) error {
	return s.RunConcurrency(action, s.n)
}

// RunConcurrency invokes action on the first concurrency workers only.
func (s *Squad) RunConcurrency(action ActionFunc, concurrency int) error {
	return s.dispatch(newActionTask(action, concurrency, false))
}

// RunAndJoin runs action on every worker, then tears the squad down.
func (s *Squad) RunAndJoin(action ActionFunc) error {
	return s.RunAndJoinConcurrency(action, s.n)
}

// RunAndJoinConcurrency runs action on concurrency workers, then tears
// the squad down.
func (s *Squad) RunAndJoinConcurrency(action ActionFunc, concurrency int) error {
	if err := s.RunConcurrency(action, concurrency); err != nil {
		return err
	}
	return s.Close()
}

// Close runs the final join_requested task, waking every worker (forking
// them first if no task was ever dispatched) and joining every worker
// goroutine bottom-up. Close is idempotent: a second call returns
// ErrSquadClosed.
func (s *Squad) Close() error {
	return s.dispatch(joinTask{})
}

// dispatch implements spec section 4.4's run(task) sequence.
func (s *Squad) dispatch(task api.Task) error {
	params := task.Params()
	if params.Concurrency == 0 && !params.JoinRequested {
		return api.ErrNoOp
	}

	if !s.runMu.TryLock() {
		return api.ErrJoinInProgress
	}
	defer s.runMu.Unlock()

	if s.closed {
		return api.ErrSquadClosed
	}

	s.task.Store(taskSlot{t: task})
	s.stats.recordDispatch()
	s.traceEvent("dispatch", params)

	if !s.forked {
		s.forkAll(params)
		s.forked = true
	} else {
		waitutil.ToggleAndNotify(&s.workers[0].incoming)
	}

	newOut := waitutil.WaitAndLoad(&s.workers[0].outgoing, s.driverPrevOutgoing, waitutil.OsWait)
	s.driverPrevOutgoing = newOut

	if params.JoinRequested {
		<-s.workers[0].done
		s.closed = true
		s.traceEvent("teardown", params)
	}

	s.task.Store(taskSlot{})
	return nil
}

// forkAll pre-toggles every worker's incoming flag before starting any
// goroutine, per the pre-toggle rule in spec section 4.3/4.4: each
// worker's first wait_and_load must already see a ready task by the time
// its goroutine's first iteration runs. The forking dispatch walks the
// full tree regardless of concurrency (see Squad.loop), so the driver
// does not clear the task before every worker has finished that pass.
func (s *Squad) forkAll(params api.Params) {
	for _, w := range s.workers {
		atomic.StoreUint32(&w.incoming, 1)
	}
	for _, w := range s.workers {
		go s.loop(w)
	}
	_ = params
}

func (s *Squad) traceEvent(kind string, params api.Params) {
	if s.trace == nil {
		return
	}
	s.trace.record(kind, params)
}
