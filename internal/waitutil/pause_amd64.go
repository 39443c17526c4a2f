//go:build amd64

package waitutil

// pause issues the x86 PAUSE instruction, a hint to the core that this is
// a spin-wait loop so it can de-prioritize the iteration and save power
// without yielding the OS thread. Implemented in pause_amd64.s.
func pause()
