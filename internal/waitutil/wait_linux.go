//go:build linux

// Linux OS-wait tier: backed directly by the futex syscall, the same
// primitive the spec's "platform atomic wait primitive" describes.
package waitutil

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	futexWait = 0
	futexWake = 1
)

// osWait blocks on the futex at addr while its value still equals old,
// then returns the acquire-loaded value once it has changed.
func osWait(addr *uint32, old uint32) uint32 {
	for {
		v := atomic.LoadUint32(addr)
		if v != old {
			return v
		}
		_, _, _ = unix.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)), futexWait, uintptr(old), 0, 0, 0)
		// Either the value changed (futex returned because someone woke
		// us) or we got EAGAIN because it already had changed before we
		// entered the syscall; either way loop and re-check.
	}
}

// wakeOne wakes a single futex waiter blocked on addr.
func wakeOne(addr *uint32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX, uintptr(unsafe.Pointer(addr)), futexWake, 1, 0, 0, 0)
}

func osYield() {
	_, _, _ = unix.Syscall(unix.SYS_SCHED_YIELD, 0, 0, 0)
}
