// Package session runs the installation's frame loop. The Runner owns
// the state engine exclusively: every frame it drains the input queue,
// advances the engine by the measured dt, and publishes the visual and
// audio snapshots. Sensor callbacks on other goroutines never touch the
// engine directly; they enqueue closures consumed at the start of the
// next frame.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danhstorm/inner-reflection-sub001/internal/log"
	"github.com/danhstorm/inner-reflection-sub001/pkg/state"
)

// inputQueueSize bounds the per-frame input backlog. At 60fps a full
// queue means sensors are producing faster than four frames of events;
// dropping is safer than blocking a sensor callback.
const inputQueueSize = 256

// heartbeatTicks is how often the runner logs a liveness line (~10s at
// 60fps).
const heartbeatTicks = 600

// Runner drives one engine at a fixed frame rate.
type Runner struct {
	id     string
	engine *state.Engine
	rate   time.Duration

	inputs chan func(*state.Engine)
	stop   chan struct{}

	// Snapshot publication callbacks, set before Run.
	OnVisual func(state.VisualState)
	OnAudio  func(state.AudioState)

	mu      sync.RWMutex
	running bool
	started time.Time

	tickCount    uint64
	droppedCount uint64
}

// NewRunner creates a runner for the given engine.
// rate should be ~16ms for a 60Hz frame loop.
func NewRunner(engine *state.Engine, rate time.Duration) *Runner {
	return &Runner{
		id:     uuid.NewString(),
		engine: engine,
		rate:   rate,
		inputs: make(chan func(*state.Engine), inputQueueSize),
		stop:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (r *Runner) ID() string {
	return r.id
}

// Uptime returns how long the frame loop has been running.
func (r *Runner) Uptime() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.started.IsZero() {
		return 0
	}
	return time.Since(r.started)
}

// TickCount returns the number of frames processed so far.
func (r *Runner) TickCount() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tickCount
}

// Enqueue schedules fn to run on the engine at the start of the next
// frame. Safe to call from any goroutine. Returns false if the queue is
// saturated and the input was dropped.
func (r *Runner) Enqueue(fn func(*state.Engine)) bool {
	select {
	case r.inputs <- fn:
		return true
	default:
		r.mu.Lock()
		r.droppedCount++
		dropped := r.droppedCount
		r.mu.Unlock()
		if dropped%100 == 1 {
			log.Warn("input queue saturated, dropping events", "session", r.id, "dropped", dropped)
		}
		return false
	}
}

// Run starts the frame loop. Blocks until Stop is called.
func (r *Runner) Run() {
	ticker := time.NewTicker(r.rate)
	defer ticker.Stop()

	r.mu.Lock()
	r.running = true
	r.started = time.Now()
	r.mu.Unlock()

	log.Info("frame loop started",
		"session", r.id,
		"rate_hz", int(time.Second/r.rate),
		"harmony", r.engine.Harmony().String())

	last := time.Now()
	for {
		select {
		case <-r.stop:
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			log.Info("frame loop stopped", "session", r.id, "ticks", r.tickCount)
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.tick(dt)
		}
	}
}

// Stop halts the frame loop.
func (r *Runner) Stop() {
	close(r.stop)
}

// IsRunning reports whether the frame loop is active.
func (r *Runner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// tick executes one frame: drain inputs, update, publish.
func (r *Runner) tick(dt float64) {
	r.drainInputs()

	r.engine.Update(dt)

	if r.OnVisual != nil {
		r.OnVisual(r.engine.VisualState())
	}
	if r.OnAudio != nil {
		r.OnAudio(r.engine.AudioState())
	}

	r.mu.Lock()
	r.tickCount++
	count := r.tickCount
	r.mu.Unlock()

	if count%heartbeatTicks == 0 {
		log.Debug("frame loop heartbeat",
			"session", r.id,
			"ticks", count,
			"shifts", r.engine.ActiveShiftCount(),
			"focus", r.engine.FocusActive())
	}
}

// drainInputs applies every queued input to the engine. Bounded by the
// queue capacity, so a hostile feed cannot stall the frame.
func (r *Runner) drainInputs() {
	for i := 0; i < inputQueueSize; i++ {
		select {
		case fn := <-r.inputs:
			fn(r.engine)
		default:
			return
		}
	}
}

// Snapshot executes fn on the engine from the frame goroutine and waits
// for the result. Used by read-only API handlers that need a consistent
// view; fn must not block.
func (r *Runner) Snapshot(fn func(*state.Engine)) {
	done := make(chan struct{})
	if !r.Enqueue(func(e *state.Engine) {
		fn(e)
		close(done)
	}) {
		close(done)
		return
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		log.Warn("snapshot timed out", "session", r.id)
	}
}
