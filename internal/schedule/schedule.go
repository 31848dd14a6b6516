// Package schedule decides when the main loop renders.
//
// The Scheduler holds a single "next render due" time, zero when nothing
// is scheduled, and a separate "animate until" deadline. A frame is due
// when the scheduled time has passed or the animate window is still open.
// Between frames the loop blocks on input for NextTimeout, which keeps an
// idle editor from polling faster than the idle interval.
//
// Requests may come from any goroutine.
package schedule

import (
	"sync"
	"time"
)

// Defaults.
const (
	DefaultRenderDelay   = 16 * time.Millisecond
	DefaultAnimateWindow = 500 * time.Millisecond
	DefaultIdlePoll      = 100 * time.Millisecond
	DefaultFramePeriod   = 16 * time.Millisecond
)

// Config holds scheduler timings.
type Config struct {
	// RenderDelay batches RequestRender calls into one frame.
	RenderDelay time.Duration

	// AnimateWindow is how long Animate keeps the loop free-running.
	AnimateWindow time.Duration

	// IdlePoll bounds how long the loop blocks when nothing is scheduled.
	IdlePoll time.Duration

	// FramePeriod is the wait between frames while animating.
	FramePeriod time.Duration
}

// DefaultConfig returns the default timings.
func DefaultConfig() Config {
	return Config{
		RenderDelay:   DefaultRenderDelay,
		AnimateWindow: DefaultAnimateWindow,
		IdlePoll:      DefaultIdlePoll,
		FramePeriod:   DefaultFramePeriod,
	}
}

// Mode is the scheduler's observable state.
type Mode int

const (
	// Idle means no render is due and no animation window is open.
	Idle Mode = iota
	// Active means a render is due now or an animation window is open.
	Active
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "idle"
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// Stats holds scheduler counters.
type Stats struct {
	Requests  uint64
	Immediate uint64
	Frames    uint64
}

// Scheduler coalesces render requests and tracks animation windows.
type Scheduler struct {
	mu           sync.Mutex
	next         time.Time
	animateUntil time.Time
	cfg          Config
	now          func() time.Time
	stats        Stats
}

// New creates a scheduler. Zero durations in cfg fall back to defaults.
func New(cfg Config, opts ...Option) *Scheduler {
	def := DefaultConfig()
	if cfg.RenderDelay <= 0 {
		cfg.RenderDelay = def.RenderDelay
	}
	if cfg.AnimateWindow <= 0 {
		cfg.AnimateWindow = def.AnimateWindow
	}
	if cfg.IdlePoll <= 0 {
		cfg.IdlePoll = def.IdlePoll
	}
	if cfg.FramePeriod <= 0 {
		cfg.FramePeriod = def.FramePeriod
	}
	s := &Scheduler{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the scheduler timings.
func (s *Scheduler) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig replaces the timings. Pending requests keep their due time.
func (s *Scheduler) SetConfig(cfg Config) {
	fresh := New(cfg)
	s.mu.Lock()
	s.cfg = fresh.cfg
	s.mu.Unlock()
}

// Now returns the scheduler clock's current time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// RequestRender schedules a render RenderDelay from now unless an earlier
// one is already scheduled.
func (s *Scheduler) RequestRender() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Requests++
	s.scheduleLocked(now.Add(s.cfg.RenderDelay))
}

// RequestRenderImmediate schedules a render now unless an earlier one is
// already scheduled.
func (s *Scheduler) RequestRenderImmediate() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Immediate++
	s.scheduleLocked(now)
}

func (s *Scheduler) scheduleLocked(due time.Time) {
	if s.next.IsZero() || due.Before(s.next) {
		s.next = due
	}
}

// Animate keeps the loop rendering every frame for AnimateWindow from now.
func (s *Scheduler) Animate() {
	s.AnimateFor(s.Config().AnimateWindow)
}

// AnimateFor extends the animate window to at least now+d.
func (s *Scheduler) AnimateFor(d time.Duration) {
	until := s.now().Add(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	if until.After(s.animateUntil) {
		s.animateUntil = until
	}
}

// Pending returns the scheduled render time, if any.
func (s *Scheduler) Pending() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next, !s.next.IsZero()
}

// AnimateUntil returns the end of the animate window.
func (s *Scheduler) AnimateUntil() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animateUntil
}

// ShouldRender reports whether a frame is due at now.
func (s *Scheduler) ShouldRender(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dueLocked(now) || now.Before(s.animateUntil)
}

func (s *Scheduler) dueLocked(now time.Time) bool {
	return !s.next.IsZero() && !now.Before(s.next)
}

// Rendered records a frame produced at now. It clears the one-shot
// schedule if it was due; a request for a later time survives. The animate
// window is left to expire on its own.
func (s *Scheduler) Rendered(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Frames++
	if s.dueLocked(now) {
		s.next = time.Time{}
	}
}

// Mode returns Idle or Active at now.
func (s *Scheduler) Mode(now time.Time) Mode {
	if s.ShouldRender(now) {
		return Active
	}
	return Idle
}

// NextTimeout returns how long the loop may block waiting for input:
// the frame period while animating, the time until the scheduled render,
// or the idle poll interval.
func (s *Scheduler) NextTimeout(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Before(s.animateUntil) {
		return s.cfg.FramePeriod
	}
	if !s.next.IsZero() {
		d := s.next.Sub(now)
		if d < 0 {
			return 0
		}
		return min(d, s.cfg.IdlePoll)
	}
	return s.cfg.IdlePoll
}

// Stats returns the scheduler counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
