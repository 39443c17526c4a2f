package squad

import "github.com/momentics/threadsquad/api"

// actionTask wraps a plain ActionFunc dispatched by Run/RunConcurrency.
// It carries no cross-worker accumulation of its own — a Task's Merge is
// only exercised by TransformReduce; an action's in-task coordination
// goes through TaskContext.Sync/Reduce/ReduceTransform instead.
type actionTask struct {
	fn          ActionFunc
	concurrency int
	join        bool
}

func newActionTask(fn ActionFunc, concurrency int, join bool) *actionTask {
	return &actionTask{fn: fn, concurrency: concurrency, join: join}
}

func (t *actionTask) Params() api.Params {
	return api.Params{Concurrency: t.concurrency, JoinRequested: t.join}
}

func (t *actionTask) Execute(ctx api.TaskContext, threadIndex, runningThreads int) {
	t.fn(ctx, threadIndex, runningThreads)
}

func (t *actionTask) Merge(dst, src int) {}

// joinTask is the task dispatched by a bare Close: no work to execute,
// every worker wakes once more, climbs the tree, and exits.
type joinTask struct{}

func (joinTask) Params() api.Params { return api.Params{Concurrency: 0, JoinRequested: true} }
func (joinTask) Execute(api.TaskContext, int, int)  {}
func (joinTask) Merge(int, int)                     {}

// transformReduceTask implements api.Task for the generic
// TransformReduce[T] entry point. results is sized to concurrency and
// written by Execute at index threadIndex, then folded pairwise by
// Merge as the tree climb returns, leaving the combined value at
// results[0].
type transformReduceTask[T any] struct {
	transform   func(threadIndex, runningThreads int) T
	reduce      func(a, b T) T
	concurrency int
	results     []T
}

func newTransformReduceTask[T any](concurrency int, transform func(int, int) T, reduce func(a, b T) T) *transformReduceTask[T] {
	return &transformReduceTask[T]{
		transform:   transform,
		reduce:      reduce,
		concurrency: concurrency,
		results:     make([]T, concurrency),
	}
}

func (t *transformReduceTask[T]) Params() api.Params {
	return api.Params{Concurrency: t.concurrency}
}

func (t *transformReduceTask[T]) Execute(_ api.TaskContext, threadIndex, runningThreads int) {
	t.results[threadIndex] = t.transform(threadIndex, runningThreads)
}

func (t *transformReduceTask[T]) Merge(dst, src int) {
	t.results[dst] = t.reduce(t.results[dst], t.results[src])
}
