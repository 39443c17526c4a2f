//go:build !linux && !windows

// Fallback OS-wait tier for platforms without a native futex/WaitOnAddress
// binding, in the spirit of the teacher's affinity_stub.go/_other.go
// no-op-with-generic-fallback convention: no blocking primitive, so the
// wait degrades to a parked poll instead of failing outright.
package waitutil

import (
	"runtime"
	"sync/atomic"
	"time"
)

const parkInterval = 50 * time.Microsecond

func osWait(addr *uint32, old uint32) uint32 {
	for {
		v := atomic.LoadUint32(addr)
		if v != old {
			return v
		}
		time.Sleep(parkInterval)
	}
}

// wakeOne is a no-op: osWait on this platform polls instead of parking on
// a wakeable primitive, so there is nothing to wake.
func wakeOne(addr *uint32) {}

func osYield() {
	runtime.Gosched()
}
