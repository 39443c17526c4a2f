//go:build !amd64 && !arm64

package waitutil

// pause is a no-op on architectures without a known spin-wait hint; the
// paced-spin tier still runs, it just doesn't get the power/latency
// benefit of a hardware pause instruction.
func pause() {}
