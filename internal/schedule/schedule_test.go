package schedule

import (
	"sync"
	"testing"
	"time"
)

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newScheduler(c *manualClock) *Scheduler {
	return New(DefaultConfig(), WithClock(c.Now))
}

func TestScheduler_IdleByDefault(t *testing.T) {
	c := newClock()
	s := newScheduler(c)

	if s.ShouldRender(c.Now()) {
		t.Error("nothing scheduled should not render")
	}
	if s.Mode(c.Now()) != Idle {
		t.Error("expected idle")
	}
	if got := s.NextTimeout(c.Now()); got != DefaultIdlePoll {
		t.Errorf("NextTimeout = %v, want %v", got, DefaultIdlePoll)
	}
}

func TestScheduler_RequestRenderCoalesces(t *testing.T) {
	c := newClock()
	s := newScheduler(c)
	start := c.Now()

	for i := 0; i < 5; i++ {
		s.RequestRender()
		c.Advance(2 * time.Millisecond)
	}

	due, ok := s.Pending()
	if !ok {
		t.Fatal("expected a pending render")
	}
	if want := start.Add(DefaultRenderDelay); !due.Equal(want) {
		t.Errorf("due = %v, want earliest %v", due, want)
	}

	if s.ShouldRender(c.Now()) {
		t.Error("render should not be due before the delay")
	}
	c.Advance(DefaultRenderDelay)
	if !s.ShouldRender(c.Now()) {
		t.Fatal("render should be due after the delay")
	}

	s.Rendered(c.Now())
	if _, ok := s.Pending(); ok {
		t.Error("Rendered should clear the schedule")
	}
	if s.ShouldRender(c.Now()) {
		t.Error("exactly one render per burst")
	}
}

func TestScheduler_ImmediateOverridesBatched(t *testing.T) {
	c := newClock()
	s := newScheduler(c)

	s.RequestRender()
	s.RequestRenderImmediate()

	due, _ := s.Pending()
	if !due.Equal(c.Now()) {
		t.Errorf("immediate request should pull the deadline to now, got %v", due)
	}
	if !s.ShouldRender(c.Now()) {
		t.Error("immediate request should be due now")
	}

	s.Rendered(c.Now())
	s.RequestRenderImmediate()
	c.Advance(time.Millisecond)
	s.RequestRender()
	due, _ = s.Pending()
	if due.After(c.Now()) {
		t.Error("a later batched request must not push back an immediate one")
	}
}

func TestScheduler_AnimateWindow(t *testing.T) {
	c := newClock()
	s := newScheduler(c)

	s.Animate()
	if !s.ShouldRender(c.Now()) {
		t.Fatal("animating should render")
	}
	if got := s.NextTimeout(c.Now()); got != DefaultFramePeriod {
		t.Errorf("NextTimeout while animating = %v", got)
	}

	s.Rendered(c.Now())
	if !s.ShouldRender(c.Now()) {
		t.Error("Rendered must not close the animate window")
	}

	c.Advance(DefaultAnimateWindow)
	if s.ShouldRender(c.Now()) {
		t.Error("animate window should expire")
	}
}

func TestScheduler_AnimateExtendsOnly(t *testing.T) {
	c := newClock()
	s := newScheduler(c)

	s.AnimateFor(time.Second)
	until := s.AnimateUntil()
	s.AnimateFor(10 * time.Millisecond)
	if !s.AnimateUntil().Equal(until) {
		t.Error("a shorter window must not shrink the deadline")
	}
}

func TestScheduler_RenderedKeepsLaterRequest(t *testing.T) {
	c := newClock()
	s := newScheduler(c)

	s.Animate()
	s.RequestRender()
	s.Rendered(c.Now())

	if _, ok := s.Pending(); !ok {
		t.Error("a request due after the frame should survive Rendered")
	}
}

func TestScheduler_NextTimeoutUntilDue(t *testing.T) {
	c := newClock()
	s := New(Config{RenderDelay: 40 * time.Millisecond}, WithClock(c.Now))

	s.RequestRender()
	if got := s.NextTimeout(c.Now()); got != 40*time.Millisecond {
		t.Errorf("NextTimeout = %v, want 40ms", got)
	}
	c.Advance(50 * time.Millisecond)
	if got := s.NextTimeout(c.Now()); got != 0 {
		t.Errorf("overdue render should not block, got %v", got)
	}

	s2 := New(Config{RenderDelay: time.Second}, WithClock(c.Now))
	s2.RequestRender()
	if got := s2.NextTimeout(c.Now()); got != DefaultIdlePoll {
		t.Errorf("NextTimeout should be capped at the idle poll, got %v", got)
	}
}

func TestScheduler_ConcurrentRequests(t *testing.T) {
	c := newClock()
	s := newScheduler(c)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.RequestRender()
				s.RequestRenderImmediate()
			}
		}()
	}
	wg.Wait()

	if !s.ShouldRender(c.Now()) {
		t.Error("expected a render due now")
	}
	st := s.Stats()
	if st.Requests != 800 || st.Immediate != 800 {
		t.Errorf("stats = %+v", st)
	}
}

func TestMode_String(t *testing.T) {
	if Idle.String() != "idle" || Active.String() != "active" {
		t.Error("unexpected mode names")
	}
}
