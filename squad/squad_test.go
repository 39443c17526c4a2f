package squad

import (
	"testing"

	"github.com/momentics/threadsquad/api"
)

// TestFanOutCorrectness covers scenario 1: N=17, concurrency=17, every
// worker writes 1 into its own output slot.
func TestFanOutCorrectness(t *testing.T) {
	s, err := New(Config{NumThreads: 17})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	out := make([]int, 17)
	if err := s.Run(func(ctx api.TaskContext, threadIndex, runningThreads int) {
		out[threadIndex] = 1
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, v := range out {
		if v != 1 {
			t.Errorf("out[%d] = %d, want 1", i, v)
		}
	}
}

// TestPartialConcurrency covers scenario 2: N=8, concurrency=3, only the
// first three workers execute and write their own index.
func TestPartialConcurrency(t *testing.T) {
	s, err := New(Config{NumThreads: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	out := make([]int, 8)
	if err := s.RunConcurrency(func(ctx api.TaskContext, threadIndex, runningThreads int) {
		if runningThreads != 3 {
			t.Errorf("runningThreads = %d, want 3", runningThreads)
		}
		out[threadIndex] = threadIndex
	}, 3); err != nil {
		t.Fatalf("RunConcurrency: %v", err)
	}

	want := []int{0, 1, 2, 0, 0, 0, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

// TestTeardownWithoutPriorRun covers scenario 6: closing a squad that
// never ran a task still forks and joins every worker exactly once, and
// Close is idempotent thereafter.
func TestTeardownWithoutPriorRun(t *testing.T) {
	s, err := New(Config{NumThreads: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := s.Close(); err != api.ErrSquadClosed {
		t.Fatalf("second Close: got %v, want ErrSquadClosed", err)
	}
}

// TestRunAfterCloseFails ensures a squad refuses new work once joined.
func TestRunAfterCloseFails(t *testing.T) {
	s, err := New(Config{NumThreads: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	err = s.Run(func(api.TaskContext, int, int) {})
	if err != api.ErrSquadClosed {
		t.Fatalf("Run after Close: got %v, want ErrSquadClosed", err)
	}
}
