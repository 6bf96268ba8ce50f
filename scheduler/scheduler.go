/*
Author: Paul Côté
Last Change Author: Paul Côté
Last Date Changed: 2022/10/04
*/

// Package scheduler is an in-process load scheduler: it holds the running flag, target rate, outstanding
// request cap and current phase that the Treadmill control surface manipulates, and paces load workers.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	bg "github.com/SSSOCPaulCote/blunderguard"
	e "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	ErrSchedulerPaused    = bg.Error("scheduler is paused")
	ErrTooManyOutstanding = bg.Error("too many outstanding requests")
)

// Scheduler is safe for concurrent use
type Scheduler struct {
	sync.RWMutex
	running        bool
	rps            int32
	maxOutstanding int32
	phase          string
	outstanding    int32 // atomic
	limiter        *rate.Limiter
	logger         *zerolog.Logger
	dispatched     prometheus.Counter
	throttled      prometheus.Counter
}

// limitFor converts a requests per second target into a limiter rate and burst. A non-positive target is unlimited
func limitFor(rps int32) (rate.Limit, int) {
	if rps <= 0 {
		return rate.Inf, 1
	}
	return rate.Limit(rps), int(rps)
}

// NewScheduler creates a paused Scheduler with the given initial rate and outstanding request cap
func NewScheduler(logger *zerolog.Logger, rps, maxOutstanding int32) *Scheduler {
	limit, burst := limitFor(rps)
	return &Scheduler{
		rps:            rps,
		maxOutstanding: maxOutstanding,
		limiter:        rate.NewLimiter(limit, burst),
		logger:         logger,
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treadmill",
			Subsystem: "scheduler",
			Name:      "dispatched_total",
			Help:      "Number of requests let through by the scheduler.",
		}),
		throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treadmill",
			Subsystem: "scheduler",
			Name:      "throttled_total",
			Help:      "Number of requests refused because too many were outstanding.",
		}),
	}
}

// Pause stops the scheduler from letting requests through
func (s *Scheduler) Pause() {
	s.Lock()
	defer s.Unlock()
	s.running = false
	s.logger.Info().Str("phase", s.phase).Msg("Scheduler paused")
}

// Resume lets requests through again and returns the new running state
func (s *Scheduler) Resume() bool {
	s.Lock()
	defer s.Unlock()
	s.running = true
	s.logger.Info().Str("phase", s.phase).Msg("Scheduler resumed")
	return s.running
}

// IsRunning returns whether the scheduler is letting requests through
func (s *Scheduler) IsRunning() bool {
	s.RLock()
	defer s.RUnlock()
	return s.running
}

// SetRps sets the target requests per second. A non-positive value removes the limit
func (s *Scheduler) SetRps(rps int32) {
	s.Lock()
	defer s.Unlock()
	s.rps = rps
	limit, burst := limitFor(rps)
	s.limiter.SetLimit(limit)
	s.limiter.SetBurst(burst)
}

// GetRps returns the target requests per second
func (s *Scheduler) GetRps() int32 {
	s.RLock()
	defer s.RUnlock()
	return s.rps
}

// SetMaxOutstandingRequests sets the outstanding request cap. A non-positive value removes the cap
func (s *Scheduler) SetMaxOutstandingRequests(max int32) {
	s.Lock()
	defer s.Unlock()
	s.maxOutstanding = max
}

// GetMaxOutstandingRequests returns the outstanding request cap
func (s *Scheduler) GetMaxOutstandingRequests() int32 {
	s.RLock()
	defer s.RUnlock()
	return s.maxOutstanding
}

// SetPhase sets the name of the current load phase
func (s *Scheduler) SetPhase(phase string) {
	s.Lock()
	defer s.Unlock()
	s.phase = phase
}

// GetPhase returns the name of the current load phase
func (s *Scheduler) GetPhase() string {
	s.RLock()
	defer s.RUnlock()
	return s.phase
}

// Outstanding returns the number of acquired and not yet released requests
func (s *Scheduler) Outstanding() int32 {
	return atomic.LoadInt32(&s.outstanding)
}

// Acquire reserves an outstanding slot and then blocks until the rate allows another request. A request
// refused at the cap does not consume a rate token. Every successful Acquire must be followed by a Release
func (s *Scheduler) Acquire(ctx context.Context) error {
	if !s.IsRunning() {
		return ErrSchedulerPaused
	}
	max := s.GetMaxOutstandingRequests()
	for {
		cur := atomic.LoadInt32(&s.outstanding)
		if max > 0 && cur >= max {
			s.throttled.Inc()
			return ErrTooManyOutstanding
		}
		if atomic.CompareAndSwapInt32(&s.outstanding, cur, cur+1) {
			break
		}
	}
	if err := s.limiter.Wait(ctx); err != nil {
		s.Release()
		return e.Wrap(err, "could not wait for rate limiter")
	}
	s.dispatched.Inc()
	return nil
}

// Release frees an outstanding slot
func (s *Scheduler) Release() {
	for {
		cur := atomic.LoadInt32(&s.outstanding)
		if cur <= 0 {
			return
		}
		if atomic.CompareAndSwapInt32(&s.outstanding, cur, cur-1) {
			return
		}
	}
}

// Collectors returns the prometheus collectors describing this scheduler
func (s *Scheduler) Collectors() []prometheus.Collector {
	gauge := func(name, help string, f func() float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "treadmill",
			Subsystem: "scheduler",
			Name:      name,
			Help:      help,
		}, f)
	}
	return []prometheus.Collector{
		gauge("running", "1 if the scheduler is running.", func() float64 {
			if s.IsRunning() {
				return 1
			}
			return 0
		}),
		gauge("rps", "Target requests per second.", func() float64 { return float64(s.GetRps()) }),
		gauge("max_outstanding", "Maximum outstanding requests.", func() float64 { return float64(s.GetMaxOutstandingRequests()) }),
		gauge("outstanding", "Current outstanding requests.", func() float64 { return float64(s.Outstanding()) }),
		s.dispatched,
		s.throttled,
	}
}
