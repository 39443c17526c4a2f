// Package squad implements the coordination core: a fixed-size pool of
// worker goroutines dispatched and synchronized through a k-ary tree of
// sense-bit handshakes (internal/tree, internal/waitutil).
//
// Author: momentics <momentics@gmail.com>
package squad

import (
	"github.com/momentics/threadsquad/api"
	"github.com/momentics/threadsquad/internal/cputopo"
)

// Config describes how a Squad is constructed. It is validated once, at
// New, and never mutated afterward — unlike the teacher's
// control.ConfigStore, there is no SetConfig/OnReload here: the squad's
// non-goal of dynamic resizing after construction extends to its
// configuration too (see DESIGN.md, Open Question 8.3).
type Config struct {
	// NumThreads is the worker count; 0 selects hardware concurrency.
	NumThreads int
	// PinToHardwareThreads requests each worker be bound to a hardware
	// thread. If the platform cannot support pinning, New returns a
	// PlatformUnsupported error rather than silently degrading.
	PinToHardwareThreads bool
	// SpinWait selects the Spin wait policy for worker-to-worker waits
	// (incoming/outgoing/upward/downward); false selects OsWait. The
	// driver's own top-level wait always uses OsWait regardless.
	SpinWait bool
	// MaxNumHardwareThreads upper-bounds how many distinct hardware
	// thread ids get used when deriving a pin mapping; 0 means "use
	// physical concurrency" (see DESIGN.md, Open Question 8.2).
	MaxNumHardwareThreads int
	// HardwareThreadMappings, if non-empty, is used verbatim as the
	// worker-index -> hardware-thread-id table (wrapped modulo its
	// length) instead of deriving one from cputopo.
	HardwareThreadMappings []int
	// EnableTrace turns on the bounded dispatch/teardown event ring
	// (squad.Trace). Off by default — it is a diagnostics aid, not part
	// of the hot path.
	EnableTrace bool
	// TraceCapacity bounds the event ring when EnableTrace is set; 0
	// selects a default capacity.
	TraceCapacity int
}

const defaultTraceCapacity = 256

// validate checks the raw Config fields per spec section 6:
// "num_threads == 0 || max_num_hardware_threads <= num_threads; if
// mappings are provided, their length bounds both max_num_hardware_threads
// and num_threads."
func (c Config) validate() *api.Error {
	if c.NumThreads < 0 {
		return api.ConfigError("num_threads must be >= 0")
	}
	if c.MaxNumHardwareThreads < 0 {
		return api.ConfigError("max_num_hardware_threads must be >= 0")
	}
	if !(c.NumThreads == 0 || c.MaxNumHardwareThreads <= c.NumThreads) {
		return api.ConfigError("max_num_hardware_threads must not exceed num_threads")
	}
	if n := len(c.HardwareThreadMappings); n > 0 {
		if c.MaxNumHardwareThreads > n {
			return api.ConfigError("max_num_hardware_threads exceeds hardware_thread_mappings length")
		}
		if c.NumThreads > n {
			return api.ConfigError("num_threads exceeds hardware_thread_mappings length")
		}
	}
	return nil
}

// resolved is the post-validation, defaults-applied view of a Config used
// to build a Squad.
type resolved struct {
	numThreads   int
	pin          bool
	spin         bool
	trace        bool
	traceCap     int
	hwThreadIDs  []int
}

func (c Config) resolve() (resolved, *api.Error) {
	if err := c.validate(); err != nil {
		return resolved{}, err
	}
	if c.PinToHardwareThreads {
		if err := checkPinSupported(); err != nil {
			return resolved{}, err
		}
	}

	n := c.NumThreads
	if n == 0 {
		n = cputopo.PhysicalConcurrency()
	}

	var ids []int
	if len(c.HardwareThreadMappings) > 0 {
		ids = append([]int(nil), c.HardwareThreadMappings...)
	} else {
		phys := cputopo.PhysicalCoreIDs()
		maxHW := c.MaxNumHardwareThreads
		// Open Question 8.2: the clamp is min(requested, physical
		// concurrency), never max — the original source's "max" variant
		// is the flagged bug, not the intended semantics.
		if maxHW == 0 || maxHW > len(phys) {
			maxHW = len(phys)
		}
		ids = phys[:maxHW]
	}

	traceCap := c.TraceCapacity
	if traceCap == 0 {
		traceCap = defaultTraceCapacity
	}

	return resolved{
		numThreads:  n,
		pin:         c.PinToHardwareThreads,
		spin:        c.SpinWait,
		trace:       c.EnableTrace,
		traceCap:    traceCap,
		hwThreadIDs: ids,
	}, nil
}

// hwThreadFor returns the hardware-thread id a worker at the given index
// should pin to, wrapping when there are fewer ids than workers.
func (r resolved) hwThreadFor(workerIndex int) int {
	return r.hwThreadIDs[workerIndex%len(r.hwThreadIDs)]
}
