package squad

import (
	"sync/atomic"
	"testing"

	"github.com/momentics/threadsquad/api"
)

// TestDriverReduction covers scenario 3: N=10, each worker contributes
// thread_index+1, reduced with +, folded into an explicit driver-owned
// init accumulator of 100.
func TestDriverReduction(t *testing.T) {
	s, err := New(Config{NumThreads: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	total, err := TransformReduce(s, 100,
		func(threadIndex, runningThreads int) int { return threadIndex + 1 },
		func(a, b int) int { return a + b },
	)
	if err != nil {
		t.Fatalf("TransformReduce: %v", err)
	}
	if total != 155 {
		t.Fatalf("total = %d, want 155", total)
	}
}

// TestInTaskSync covers scenario 4: N=4, every worker increments a
// shared counter, barriers, then reads it — every worker must observe 4.
func TestInTaskSync(t *testing.T) {
	s, err := New(Config{NumThreads: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	var counter int64
	seen := make([]int64, 4)

	err = s.Run(func(ctx api.TaskContext, threadIndex, runningThreads int) {
		atomic.AddInt64(&counter, 1)
		ctx.Sync()
		seen[threadIndex] = atomic.LoadInt64(&counter)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, v := range seen {
		if v != 4 {
			t.Errorf("worker %d saw counter = %d, want 4", i, v)
		}
	}
}

// TestInTaskReduceTransform covers scenario 5: N=3, values {2,3,5},
// reduce = *, transform = x -> x+1, expecting every worker to observe
// (2*3*5)+1 = 31.
func TestInTaskReduceTransform(t *testing.T) {
	s, err := New(Config{NumThreads: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	values := []int{2, 3, 5}
	results := make([]int, 3)

	mulOp := func(a, b any) any { return a.(int) * b.(int) }
	incTransform := func(v any) any { return v.(int) + 1 }

	err = s.Run(func(ctx api.TaskContext, threadIndex, runningThreads int) {
		result := ctx.ReduceTransform(values[threadIndex], mulOp, incTransform)
		results[threadIndex] = result.(int)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, v := range results {
		if v != 31 {
			t.Errorf("worker %d result = %d, want 31", i, v)
		}
	}
}
