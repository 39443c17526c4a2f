package waitutil

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestToggleAndNotifyFlipsBit(t *testing.T) {
	var a uint32
	old := ToggleAndNotify(&a)
	if old != 0 {
		t.Fatalf("old = %d, want 0", old)
	}
	if atomic.LoadUint32(&a) != 1 {
		t.Fatalf("a = %d, want 1", atomic.LoadUint32(&a))
	}
	old = ToggleAndNotify(&a)
	if old != 1 {
		t.Fatalf("old = %d, want 1", old)
	}
	if atomic.LoadUint32(&a) != 0 {
		t.Fatalf("a = %d, want 0", atomic.LoadUint32(&a))
	}
}

func TestWaitAndLoadSpinObservesConcurrentToggle(t *testing.T) {
	var a uint32
	done := make(chan uint32, 1)
	go func() {
		done <- WaitAndLoad(&a, 0, Spin)
	}()
	time.Sleep(2 * time.Millisecond)
	ToggleAndNotify(&a)
	select {
	case v := <-done:
		if v != 1 {
			t.Fatalf("v = %d, want 1", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndLoad(Spin) never observed the toggle")
	}
}

func TestWaitAndLoadOsWaitObservesConcurrentToggle(t *testing.T) {
	var a uint32
	done := make(chan uint32, 1)
	go func() {
		done <- WaitAndLoad(&a, 0, OsWait)
	}()
	time.Sleep(2 * time.Millisecond)
	ToggleAndNotify(&a)
	select {
	case v := <-done:
		if v != 1 {
			t.Fatalf("v = %d, want 1", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitAndLoad(OsWait) never observed the toggle")
	}
}

func TestWaitAndLoadReturnsImmediatelyWhenAlreadyChanged(t *testing.T) {
	a := uint32(1)
	v := WaitAndLoad(&a, 0, Spin)
	if v != 1 {
		t.Fatalf("v = %d, want 1", v)
	}
}
