// Package affinity binds a worker's OS thread to a specific hardware
// thread id, adapted from the teacher's affinity/ and
// internal/concurrency/pin_*.go: same cgo-on-linux, syscall-on-windows,
// no-op-elsewhere split, repurposed from NUMA-node binding to the
// squad's per-worker hardware-thread pin.
//
// Author: momentics <momentics@gmail.com>
package affinity

import "runtime"

// Supported reports whether Pin can actually bind a thread on this
// platform/build combination (linux+cgo, or windows). When false, Pin
// always returns a PlatformUnsupported-shaped error.
var Supported = platformSupported()

// Pin locks the calling goroutine to its OS thread and binds that thread
// to the given hardware-thread id. The caller must not call
// runtime.UnlockOSThread while the squad still wants the pin in effect.
func Pin(hardwareThreadID int) error {
	runtime.LockOSThread()
	return platformPin(hardwareThreadID)
}

// Unpin releases any affinity constraint set by Pin. It does not call
// runtime.UnlockOSThread — the worker goroutine that pinned itself stays
// locked to its OS thread for its whole lifetime, matching the spec's
// "os_thread ... created lazily on first run, released on final join".
func Unpin() {
	platformUnpin()
}
