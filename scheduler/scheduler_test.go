package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func newTestScheduler(rps, max int32) *Scheduler {
	logger := zerolog.Nop()
	return NewScheduler(&logger, rps, max)
}

// TestPauseResume tests the running flag transitions
func TestPauseResume(t *testing.T) {
	s := newTestScheduler(0, 0)
	if s.IsRunning() {
		t.Fatal("Expected a new scheduler to be paused")
	}
	if !s.Resume() {
		t.Error("Expected Resume to report running")
	}
	if !s.IsRunning() {
		t.Error("Expected scheduler to be running")
	}
	s.Pause()
	if s.IsRunning() {
		t.Error("Expected scheduler to be paused")
	}
}

// TestSetters tests the rate, cap and phase setters
func TestSetters(t *testing.T) {
	s := newTestScheduler(10, 5)
	if s.GetRps() != 10 || s.GetMaxOutstandingRequests() != 5 {
		t.Fatalf("Unexpected initial values rps=%d max=%d", s.GetRps(), s.GetMaxOutstandingRequests())
	}
	s.SetRps(250)
	s.SetMaxOutstandingRequests(32)
	s.SetPhase("warmup")
	if s.GetRps() != 250 {
		t.Errorf("Expected rps 250, got %d", s.GetRps())
	}
	if s.GetMaxOutstandingRequests() != 32 {
		t.Errorf("Expected max outstanding 32, got %d", s.GetMaxOutstandingRequests())
	}
	if s.GetPhase() != "warmup" {
		t.Errorf("Expected phase warmup, got %s", s.GetPhase())
	}
}

// TestAcquire tests that Acquire honours the running flag and the outstanding cap
func TestAcquire(t *testing.T) {
	s := newTestScheduler(0, 2)
	ctx := context.Background()
	t.Run("paused", func(t *testing.T) {
		if err := s.Acquire(ctx); err != ErrSchedulerPaused {
			t.Errorf("Expected ErrSchedulerPaused, got %v", err)
		}
	})
	s.Resume()
	t.Run("up to cap", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := s.Acquire(ctx); err != nil {
				t.Fatalf("Could not acquire slot %d: %v", i, err)
			}
		}
		if err := s.Acquire(ctx); err != ErrTooManyOutstanding {
			t.Errorf("Expected ErrTooManyOutstanding, got %v", err)
		}
		if s.Outstanding() != 2 {
			t.Errorf("Expected 2 outstanding, got %d", s.Outstanding())
		}
	})
	t.Run("release", func(t *testing.T) {
		s.Release()
		if err := s.Acquire(ctx); err != nil {
			t.Errorf("Could not acquire after release: %v", err)
		}
		s.Release()
		s.Release()
		s.Release()
		if s.Outstanding() != 0 {
			t.Errorf("Expected 0 outstanding, got %d", s.Outstanding())
		}
	})
	t.Run("unbounded", func(t *testing.T) {
		s.SetMaxOutstandingRequests(0)
		for i := 0; i < 100; i++ {
			if err := s.Acquire(ctx); err != nil {
				t.Fatalf("Could not acquire unbounded slot %d: %v", i, err)
			}
		}
	})
}

// TestAcquireCancelled tests that a cancelled context interrupts rate limiting
func TestAcquireCancelled(t *testing.T) {
	s := newTestScheduler(1, 0)
	s.Resume()
	ctx := context.Background()
	if err := s.Acquire(ctx); err != nil {
		t.Fatalf("Could not acquire first token: %v", err)
	}
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Acquire(cctx); err == nil {
		t.Error("Expected error acquiring with a cancelled context")
	}
	if s.Outstanding() != 1 {
		t.Errorf("Expected the failed acquire to give its slot back, got %d outstanding", s.Outstanding())
	}
}

// TestAcquireAtCapKeepsToken tests that a request refused at the cap is refused immediately without waiting on the rate
func TestAcquireAtCapKeepsToken(t *testing.T) {
	s := newTestScheduler(1, 1)
	s.Resume()
	if err := s.Acquire(context.Background()); err != nil {
		t.Fatalf("Could not acquire first slot: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := s.Acquire(ctx); err != ErrTooManyOutstanding {
		t.Errorf("Expected ErrTooManyOutstanding, got %v", err)
	}
	if got := testutil.ToFloat64(s.throttled); got != 1 {
		t.Errorf("Expected 1 throttled request, got %v", got)
	}
	if got := testutil.ToFloat64(s.dispatched); got != 1 {
		t.Errorf("Expected 1 dispatched request, got %v", got)
	}
	if s.Outstanding() != 1 {
		t.Errorf("Expected 1 outstanding, got %d", s.Outstanding())
	}
}

// TestCollectors tests that the scheduler collectors can be registered and gathered
func TestCollectors(t *testing.T) {
	s := newTestScheduler(100, 10)
	reg := prometheus.NewRegistry()
	for _, c := range s.Collectors() {
		if err := reg.Register(c); err != nil {
			t.Fatalf("Could not register collector: %v", err)
		}
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Could not gather: %v", err)
	}
	if len(families) != 6 {
		t.Errorf("Expected 6 metric families, got %d", len(families))
	}
}
