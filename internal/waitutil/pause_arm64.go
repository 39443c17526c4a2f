//go:build arm64

package waitutil

// pause issues the arm64 YIELD hint. Implemented in pause_arm64.s.
func pause()
