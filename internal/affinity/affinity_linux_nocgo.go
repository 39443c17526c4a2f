//go:build linux && !cgo

// Pure-Go Linux fallback when CGO is disabled, mirroring the teacher's
// affinity_linux_pure.go / pin_linux_nocgo.go split: pinning degrades
// rather than failing the build.
package affinity

import "fmt"

func platformSupported() bool { return false }

func platformPin(hardwareThreadID int) error {
	return fmt.Errorf("affinity: pinning unavailable, built without cgo")
}

func platformUnpin() {}
