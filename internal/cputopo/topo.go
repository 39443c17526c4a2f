// Package cputopo implements the CPU topology oracle spec section 6
// treats as an external collaborator: physical_concurrency() and
// physical_core_ids(). There is no real external topology service here,
// so it is implemented directly, the way the teacher implements its own
// NUMA/affinity helpers (internal/concurrency/affinity.go) instead of
// shelling out to OS-specific topology files — cputopo never parses
// /sys or /proc itself; it derives hardware-thread ids from
// runtime.NumCPU() alone.
//
// Author: momentics <momentics@gmail.com>
package cputopo

import "runtime"

// PhysicalConcurrency returns the number of hardware threads the runtime
// can schedule work on. Go does not distinguish physical cores from
// hyperthreads through the standard library, so, matching the teacher's
// NumCPUs() (internal/concurrency/affinity.go), this reports logical CPU
// count — the same oracle value the spec's num_threads==0 default
// resolves against.
func PhysicalConcurrency() int {
	return runtime.NumCPU()
}

// PhysicalCoreIDs returns a mapping from physical core index to a
// representative hardware-thread id, one entry per PhysicalConcurrency().
// Absent a cgo-backed topology probe, hardware-thread ids are the
// identity mapping [0, PhysicalConcurrency()) — the same assumption the
// teacher's affinity layer falls back to when NUMA/topology detection is
// unavailable (affinity_linux_pure.go, affinity_stub.go: "no CGO, no
// topology info, return sane single-node defaults").
func PhysicalCoreIDs() []int {
	n := PhysicalConcurrency()
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}
