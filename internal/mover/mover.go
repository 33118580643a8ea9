// Package mover performs single verified cursor movements. Each trigger
// walks an explicit phase machine: Idle -> Attempting -> Verifying ->
// Succeeded or Failed -> Idle. There is no terminal phase; the machine is
// re-entered on every trigger.
package mover

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/nudge/internal/cursor"
	"github.com/stigoleg/nudge/internal/state"
)

// Phase identifies a step of the movement state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAttempting
	PhaseVerifying
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseAttempting:
		return "Attempting"
	case PhaseVerifying:
		return "Verifying"
	case PhaseSucceeded:
		return "Succeeded"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

const (
	// Tolerance is the per-axis verification slack in pixels.
	Tolerance = 5

	// DefaultSettleDelay is the pause between issuing the move and reading
	// the cursor back for verification.
	DefaultSettleDelay = 100 * time.Millisecond
)

// Result reports how one attempt resolved. Phase is always PhaseSucceeded
// or PhaseFailed; Err is set only when a device call failed (a verification
// mismatch leaves it nil).
type Result struct {
	Phase    Phase
	TargetX  int
	TargetY  int
	ActualX  int
	ActualY  int
	ErrCount uint
	Err      error
}

// Controller executes movement attempts and commits their outcome to the
// shared state. It is driven by the scheduler and never holds the state
// lock across device I/O.
type Controller struct {
	device    cursor.Device
	st        *state.State
	maxErrors uint
	settle    time.Duration
	log       zerolog.Logger

	now   func() time.Time
	sleep func(time.Duration)

	phase Phase
}

// New returns a controller using the default settle delay.
func New(device cursor.Device, st *state.State, maxErrors uint, log zerolog.Logger) *Controller {
	return &Controller{
		device:    device,
		st:        st,
		maxErrors: maxErrors,
		settle:    DefaultSettleDelay,
		log:       log,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Attempt performs one movement with the given direction sign and per-axis
// delta, verifies it, and records exactly one outcome on the shared state.
func (c *Controller) Attempt(direction, delta int) Result {
	c.phase = PhaseAttempting

	curX, curY, err := c.device.Position()
	if err != nil {
		return c.fail(Result{Err: fmt.Errorf("read cursor position: %w", err)})
	}

	targetX := curX + delta*direction
	targetY := curY + delta*direction
	c.log.Debug().
		Int("from_x", curX).Int("from_y", curY).
		Int("to_x", targetX).Int("to_y", targetY).
		Msg("moving cursor")

	if err := c.device.MoveTo(targetX, targetY); err != nil {
		return c.fail(Result{TargetX: targetX, TargetY: targetY, Err: fmt.Errorf("move cursor: %w", err)})
	}

	c.phase = PhaseVerifying
	c.sleep(c.settle)

	actX, actY, err := c.device.Position()
	if err != nil {
		return c.fail(Result{TargetX: targetX, TargetY: targetY, Err: fmt.Errorf("verify cursor position: %w", err)})
	}

	res := Result{TargetX: targetX, TargetY: targetY, ActualX: actX, ActualY: actY}
	if !within(actX, targetX) || !within(actY, targetY) {
		return c.fail(res)
	}

	newDir := c.st.RecordSuccess(c.now())
	c.log.Info().
		Int("x", actX).Int("y", actY).
		Int("next_direction", newDir).
		Msg("cursor movement verified")

	c.phase = PhaseIdle
	res.Phase = PhaseSucceeded
	return res
}

// SetSettleDelay overrides the verification settle delay. Intended for
// tests; production uses DefaultSettleDelay.
func (c *Controller) SetSettleDelay(d time.Duration) {
	c.settle = d
}

func (c *Controller) fail(res Result) Result {
	c.phase = PhaseFailed

	count := c.st.RecordFailure()
	ev := c.log.Warn().Uint("error_count", count)
	if res.Err != nil {
		ev = ev.Err(res.Err)
	} else {
		ev = ev.
			Int("target_x", res.TargetX).Int("target_y", res.TargetY).
			Int("actual_x", res.ActualX).Int("actual_y", res.ActualY)
	}
	ev.Msg("cursor movement failed")

	// The alert re-fires on every failing attempt at or above the
	// threshold; there is no deduplication. WithLevel does not exit.
	if count >= c.maxErrors {
		c.log.WithLevel(zerolog.FatalLevel).
			Uint("error_count", count).
			Uint("max_errors", c.maxErrors).
			Msg("cursor movement keeps failing; check system permissions")
	}

	c.phase = PhaseIdle
	res.Phase = PhaseFailed
	res.ErrCount = count
	return res
}

func within(actual, target int) bool {
	d := actual - target
	if d < 0 {
		d = -d
	}
	return d <= Tolerance
}
