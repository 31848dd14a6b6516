package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks main loop counters and frame timing. Counters may be read
// from any goroutine.
type Metrics struct {
	// Compositor passes
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	// Loop iterations, and those that woke without producing a frame
	iterations atomic.Uint64
	idleWakes  atomic.Uint64

	// Platform input
	inputCount  atomic.Uint64
	inputEvents atomic.Uint64

	// Mailbox traffic
	delivered     atomic.Uint64
	deliveredLost atomic.Uint64
	reloads       atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the duration of one compositor pass.
func (m *Metrics) RecordFrame(d time.Duration) {
	ns := d.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordIteration records one loop iteration; rendered reports whether it
// produced a frame.
func (m *Metrics) RecordIteration(rendered bool) {
	m.iterations.Add(1)
	if !rendered {
		m.idleWakes.Add(1)
	}
}

// RecordInput records a batch of n platform inputs.
func (m *Metrics) RecordInput(n int) {
	m.inputCount.Add(1)
	m.inputEvents.Add(uint64(n))
}

// RecordDelivery records a platform result; replaced reports that it
// overwrote one the loop had not taken yet.
func (m *Metrics) RecordDelivery(replaced bool) {
	m.delivered.Add(1)
	if replaced {
		m.deliveredLost.Add(1)
	}
}

// RecordReload records an applied configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a point-in-time copy of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()

	var avg int64
	if frames > 0 {
		avg = m.frameTotalNs.Load() / int64(frames)
	}
	minNs := m.frameMinNs.Load()
	if minNs == 1<<63-1 {
		minNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frames,
		AvgFrameTimeNs: avg,
		MinFrameTimeNs: minNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		Iterations:     m.iterations.Load(),
		IdleWakes:      m.idleWakes.Load(),
		InputBatches:   m.inputCount.Load(),
		InputEvents:    m.inputEvents.Load(),
		Delivered:      m.delivered.Load(),
		DeliveredLost:  m.deliveredLost.Load(),
		Reloads:        m.reloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	Iterations     uint64
	IdleWakes      uint64
	InputBatches   uint64
	InputEvents    uint64
	Delivered      uint64
	DeliveredLost  uint64
	Reloads        uint64
}

// IdleRatio returns the share of iterations that did not render.
func (s MetricsSnapshot) IdleRatio() float64 {
	if s.Iterations == 0 {
		return 0
	}
	return float64(s.IdleWakes) / float64(s.Iterations)
}

// AvgFrameTime returns the mean compositor pass duration.
func (s MetricsSnapshot) AvgFrameTime() time.Duration {
	return time.Duration(s.AvgFrameTimeNs)
}
