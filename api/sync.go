package api

// Synchronizer is a per-collective-call capability a worker stack-allocates
// when it participates in a Sync/Reduce/ReduceTransform inside a running
// task. SyncData exposes the address of the worker's local payload for
// the duration of a single collect/broadcast handshake; Collect folds a
// child's payload into the receiver; Broadcast writes the final result
// into a child's payload.
type Synchronizer interface {
	SyncData() any
	Collect(childSyncData any)
	Broadcast(childSyncData any)
}
