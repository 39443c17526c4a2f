package api

// TaskContext is handed to every running task body. It exposes the
// worker's identity within the current dispatch and the collective
// operations (barrier sync, reduce, reduce-then-transform) a task body
// may invoke against its own subtree.
type TaskContext interface {
	ThreadIndex() int
	NumThreads() int

	// Sync is a barrier: every worker in the current dispatch's subtree
	// blocks until all have called Sync.
	Sync()

	// Reduce folds value across all participating workers using reduceOp,
	// pairwise along the tree, and returns the fully folded result to
	// every worker.
	Reduce(value any, reduceOp func(a, b any) any) any

	// ReduceTransform folds value the same way Reduce does, then applies
	// transform to the folded value at the tree root before broadcasting
	// the transformed result back to every worker.
	ReduceTransform(value any, reduceOp func(a, b any) any, transform func(any) any) any
}
