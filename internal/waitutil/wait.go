// Package waitutil implements the squad's adaptive sense-bit wait
// protocol: wait_and_load(addr, old, mode) blocks until the atomic at
// addr differs from old, escalating from a tight spin through a
// pause-instruction spin to an OS-level wait; toggle_and_notify(addr)
// flips a sense bit and wakes one waiter.
//
// Grounded on the teacher's internal/concurrency/eventloop.go adaptive
// backoff (spin, then runtime.Gosched, capped growth) and
// internal/concurrency/scheduler.go's reach for golang.org/x/sys/cpu to
// gate a CPU-level optimization.
//
// Author: momentics <momentics@gmail.com>
package waitutil

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Mode selects the wait policy used by WaitAndLoad.
type Mode int

const (
	// Spin tries the full spin ladder (growing tight loop, then paced
	// pause-instruction spin) before falling back to an OS-level wait.
	Spin Mode = iota
	// OsWait skips straight to the platform's blocking wait primitive;
	// used by the driver's top-level wait so it burns no CPU while
	// workers run.
	OsWait
)

const (
	// spinCount is the starting inner-iteration count of the short
	// growing loop (tier 1).
	spinCount = 6
	// spinRep is how many times the inner loop of a given size repeats
	// per step, per spec section 4.2.
	spinRep = 1
	// growSteps bounds how many times the inner iteration count doubles
	// before tier 1 gives up and tier 2 (paced pause spin) takes over.
	growSteps = 4
	// outerSpinIterations is the 2^9 = 512 paced-spin rounds of tier 2.
	outerSpinIterations = 512
	// yieldRounds is the tier-3 OS-yield fallback round count; left at 0
	// per spec section 4.2 ("default 0 rounds; left as a compile-time
	// constant").
	yieldRounds = 0
)

// pauseWorthwhile reports whether the running CPU exposes a pause-style
// spin hint worth issuing; on CPUs without one, tier 2 degrades to a
// plain busy loop instead of the asm stub.
var pauseWorthwhile = cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD

// WaitAndLoad blocks until the atomic at addr differs from old and
// returns the observed new value. It never consumes a value a concurrent
// toggle hasn't yet produced: the returned value is always the result of
// the acquire load that detected the inequality.
func WaitAndLoad(addr *uint32, old uint32, mode Mode) uint32 {
	if mode == Spin {
		if v, ok := spinWait(addr, old); ok {
			return v
		}
	}
	return osWait(addr, old)
}

// ToggleAndNotify flips the sense bit at addr (0<->1) and wakes one
// waiter blocked in an OS-level wait on addr. Returns the pre-toggle
// value, which callers that need the old sense (e.g. the driver
// recording prevOutgoing) can reuse without a second load.
func ToggleAndNotify(addr *uint32) uint32 {
	old := atomic.LoadUint32(addr)
	atomic.StoreUint32(addr, old^1)
	wakeOne(addr)
	return old
}

// spinWait runs the tight-then-paced spin ladder. Returns ok=false if the
// ladder is exhausted without observing a change.
func spinWait(addr *uint32, old uint32) (uint32, bool) {
	if v, ok := shortGrowingLoop(addr, old); ok {
		return v, true
	}
	for outer := 0; outer < outerSpinIterations; outer++ {
		if v, ok := shortGrowingLoop(addr, old); ok {
			return v, true
		}
		if pauseWorthwhile {
			pause()
		}
	}
	for y := 0; y < yieldRounds; y++ {
		osYield()
		if v := atomic.LoadUint32(addr); v != old {
			return v, true
		}
	}
	return 0, false
}

// shortGrowingLoop is tier 1: a short loop whose inner iteration count
// doubles each step, with a relaxed load of addr checked between steps.
// Each inner iteration itself performs a relaxed load so the compiler
// cannot eliminate the spin.
func shortGrowingLoop(addr *uint32, old uint32) (uint32, bool) {
	inner := spinCount
	for step := 0; step < growSteps; step++ {
		for r := 0; r < spinRep; r++ {
			for k := 0; k < inner; k++ {
				_ = atomic.LoadUint32(addr)
			}
		}
		if v := atomic.LoadUint32(addr); v != old {
			return v, true
		}
		inner *= 2
	}
	return 0, false
}
