//go:build linux && cgo

// Linux hardware-thread pinning via pthread_setaffinity_np, adapted from the
// teacher's affinity/affinity_linux.go (pthread_setaffinity_np through a
// small cgo helper) and internal/concurrency/pin_linux.go.
package affinity

/*
#define _GNU_SOURCE
#include <sched.h>
#include <pthread.h>
#include <errno.h>

static int squad_setaffinity(int cpu) {
	cpu_set_t set;
	CPU_ZERO(&set);
	CPU_SET(cpu, &set);
	return pthread_setaffinity_np(pthread_self(), sizeof(set), &set);
}
*/
import "C"

import "fmt"

func platformSupported() bool { return true }

func platformPin(hardwareThreadID int) error {
	if ret := C.squad_setaffinity(C.int(hardwareThreadID)); ret != 0 {
		return fmt.Errorf("affinity: pthread_setaffinity_np failed, code %d", int(ret))
	}
	return nil
}

func platformUnpin() {
	// Linux offers no "clear affinity" call short of resetting the mask
	// to every online CPU; the squad never calls Unpin and its workers
	// stay pinned until they exit, so this is a deliberate no-op.
}
