package sim

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// Runner drives the engine with paced ExecuteTurn calls. Pacing lives
// outside the engine: the engine is turn-synchronous and knows nothing
// about wall-clock time.
type Runner struct {
	engine   *Engine
	interval time.Duration
	speed    atomic.Int64 // Multiplier ×100; 0 = paused
	running  atomic.Bool
}

// NewRunner creates a runner stepping the engine every interval. A zero
// interval runs turns back to back.
func NewRunner(engine *Engine, interval time.Duration) *Runner {
	r := &Runner{engine: engine, interval: interval}
	r.speed.Store(100)
	return r
}

// SetSpeed adjusts the pacing multiplier: 1.0 is the configured
// interval, 2.0 is twice as fast, 0 pauses between turns.
func (r *Runner) SetSpeed(mult float64) {
	if mult < 0 {
		mult = 0
	}
	r.speed.Store(int64(mult * 100))
}

// Speed returns the current pacing multiplier.
func (r *Runner) Speed() float64 {
	return float64(r.speed.Load()) / 100
}

// Stop halts the loop after the in-flight turn commits. A simulation is
// never interrupted mid-turn.
func (r *Runner) Stop() {
	r.running.Store(false)
}

// Run executes turns until the simulation ends or Stop is called.
// Blocks the calling goroutine.
func (r *Runner) Run() {
	r.running.Store(true)
	slog.Info("turn loop started", "interval", r.interval)

	for r.running.Load() {
		speed := r.Speed()
		if speed == 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		if _, err := r.engine.ExecuteTurn(); err != nil {
			if errors.Is(err, ErrEnded) {
				break
			}
			slog.Error("turn failed", "error", err)
			break
		}
		if r.engine.Ended() {
			break
		}

		if r.interval > 0 {
			target := time.Duration(float64(r.interval) / speed)
			if elapsed := time.Since(start); elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}

	r.running.Store(false)
	slog.Info("turn loop stopped", "turn", r.engine.Turn())
}
