//go:build windows

// Windows OS-wait tier: WaitOnAddress/WakeByAddressSingle, loaded the same
// lazy-DLL way the teacher's internal/concurrency/pin_windows.go binds
// SetThreadAffinityMask and internal/concurrency/numa_windows.go binds
// VirtualAllocExNuma.
package waitutil

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modsync               = windows.NewLazySystemDLL("kernel32.dll")
	procWaitOnAddress      = modsync.NewProc("WaitOnAddress")
	procWakeByAddressSingle = modsync.NewProc("WakeByAddressSingle")
)

const infiniteMs = 0xFFFFFFFF

// osWait blocks on addr via WaitOnAddress while its value still equals old.
func osWait(addr *uint32, old uint32) uint32 {
	for {
		v := atomic.LoadUint32(addr)
		if v != old {
			return v
		}
		compare := old
		procWaitOnAddress.Call(
			uintptr(unsafe.Pointer(addr)),
			uintptr(unsafe.Pointer(&compare)),
			uintptr(4), // size of the compared value, in bytes
			uintptr(infiniteMs),
		)
	}
}

// wakeOne wakes a single WaitOnAddress waiter blocked on addr.
func wakeOne(addr *uint32) {
	procWakeByAddressSingle.Call(uintptr(unsafe.Pointer(addr)))
}

func osYield() {
	windows.SwitchToThread()
}
