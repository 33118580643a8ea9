// Package power tracks system sleep/wake transitions so the scheduler never
// triggers while the machine is asleep.
package power

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/nudge/internal/state"
)

// Source is the OS sleep/wake notification feed. Subscribe blocks for the
// life of the subscription and invokes onSleep/onWake as notifications
// arrive. Like the activity source, an early return means the stream died.
type Source interface {
	Subscribe(ctx context.Context, onSleep, onWake func()) error
}

// Listener owns one power subscription. Its side effects are limited to the
// shared state; it never attempts movement.
type Listener struct {
	src Source
	st  *state.State
	log zerolog.Logger
	now func() time.Time
}

// NewListener wires a source to the shared state.
func NewListener(src Source, st *state.State, log zerolog.Logger) *Listener {
	return &Listener{src: src, st: st, log: log, now: time.Now}
}

// Run blocks until the subscription ends. A wake marks the machine awake
// and restarts the idle clock; a single wake event must not be read as a
// user action that happens right after it.
func (l *Listener) Run(ctx context.Context) error {
	l.log.Info().Msg("power monitoring started")

	err := l.src.Subscribe(ctx,
		func() {
			l.log.Info().Msg("system going to sleep")
			l.st.SetSuspended(true)
		},
		func() {
			l.log.Info().Msg("system woke")
			l.st.Wake(l.now())
		},
	)

	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("power subscription ended: %w", err)
	}
	return fmt.Errorf("power subscription ended unexpectedly")
}
