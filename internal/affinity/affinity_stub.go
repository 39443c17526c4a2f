//go:build !linux && !windows

// Stub for platforms with no pinning support, mirroring the teacher's
// affinity_stub.go / affinity_other.go pattern.
package affinity

import "fmt"

func platformSupported() bool { return false }

func platformPin(hardwareThreadID int) error {
	return fmt.Errorf("affinity: pinning not supported on this platform")
}

func platformUnpin() {}
