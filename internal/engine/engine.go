// Package engine runs the periodic triggering loop and supervises the
// listener tasks. It is the only component that decides when a movement
// attempt happens.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stigoleg/nudge/internal/activity"
	"github.com/stigoleg/nudge/internal/config"
	"github.com/stigoleg/nudge/internal/mover"
	"github.com/stigoleg/nudge/internal/power"
	"github.com/stigoleg/nudge/internal/state"
)

// Command is a user-issued instruction from the UI boundary.
type Command int

const (
	// CmdToggle flips triggering on or off. It does not reset the idle
	// clock: toggling on after a long idle period may trigger on the very
	// next tick.
	CmdToggle Command = iota

	// CmdQuit requests immediate termination. In-flight attempts are not
	// drained or rolled back.
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdToggle:
		return "Toggle"
	case CmdQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Engine owns the heartbeat scheduler and the command channel, and
// supervises the activity and power listeners. Any listener ending takes
// the whole engine down; silent loss of inactivity detection is worse than
// a crash.
type Engine struct {
	st       *state.State
	ctrl     *mover.Controller
	activity *activity.Listener
	power    *power.Listener
	log      zerolog.Logger

	heartbeat time.Duration
	threshold time.Duration
	delta     int

	cmds chan Command
	now  func() time.Time
}

// New assembles an engine from the loaded configuration and the wired
// components.
func New(cfg config.Config, st *state.State, ctrl *mover.Controller, act *activity.Listener, pow *power.Listener, log zerolog.Logger) *Engine {
	return &Engine{
		st:        st,
		ctrl:      ctrl,
		activity:  act,
		power:     pow,
		log:       log,
		heartbeat: cfg.Heartbeat(),
		threshold: cfg.Threshold(),
		delta:     cfg.MovementDelta,
		cmds:      make(chan Command, 8),
		now:       time.Now,
	}
}

// Commands returns the channel the UI boundary feeds.
func (e *Engine) Commands() chan<- Command {
	return e.cmds
}

// Run blocks until Quit, ctx cancellation, or a listener failure. The
// returned error is nil for the first two.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.activity.Run(ctx) })
	g.Go(func() error { return e.power.Run(ctx) })
	g.Go(func() error { return e.loop(ctx, cancel) })

	return g.Wait()
}

// loop is the scheduler. Attempts run synchronously inside it, so a slow
// attempt skips ticks instead of queueing them (the ticker drops missed
// ticks): single-flight per cycle.
func (e *Engine) loop(ctx context.Context, cancel context.CancelFunc) error {
	e.log.Info().
		Dur("heartbeat", e.heartbeat).
		Dur("threshold", e.threshold).
		Msg("scheduler started")

	ticker := time.NewTicker(e.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-e.cmds:
			switch cmd {
			case CmdToggle:
				enabled := e.st.Toggle()
				e.log.Info().Bool("enabled", enabled).Msg("triggering toggled")
			case CmdQuit:
				e.log.Info().Msg("quit requested")
				cancel()
				return nil
			}
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick reads the shared state once, decides, and releases the lock before
// any device I/O happens inside the attempt.
func (e *Engine) tick() {
	snap := e.st.Snapshot()
	if !snap.Enabled || snap.Suspended {
		return
	}

	idle := e.now().Sub(snap.LastActivity)
	if idle < e.threshold {
		return
	}

	e.log.Debug().Dur("idle", idle).Int("direction", snap.Direction).Msg("idle threshold exceeded")
	e.ctrl.Attempt(snap.Direction, e.delta)
}
