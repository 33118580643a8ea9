// Package activity detects real user input and keeps the shared idle clock
// current.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/nudge/internal/state"
)

// Kind identifies the input event classes the core reacts to.
type Kind int

const (
	KindKeyPress Kind = iota
	KindMouseMove
	KindButtonPress
)

func (k Kind) String() string {
	switch k {
	case KindKeyPress:
		return "KeyPress"
	case KindMouseMove:
		return "MouseMove"
	case KindButtonPress:
		return "ButtonPress"
	default:
		return "Unknown"
	}
}

// Source is the OS input event feed. Subscribe blocks for the life of the
// subscription, invoking onEvent for every delivered event. A nil return is
// only valid after ctx is canceled; any earlier return means the stream
// terminated and inactivity detection is gone.
type Source interface {
	Subscribe(ctx context.Context, onEvent func(Kind)) error
}

// Listener owns exactly one subscription and translates events into
// lastActivity updates. It runs as a long-lived task under the engine's
// supervision; returning an error takes the process down.
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

// Run blocks until the subscription ends. The event callback only touches
// the shared state; it never blocks or performs I/O.
func (l *Listener) Run(ctx context.Context) error {
	l.log.Info().Msg("activity monitoring started")

	err := l.src.Subscribe(ctx, func(k Kind) {
		l.log.Trace().Stringer("kind", k).Msg("input event")
		l.st.Touch(l.now())
	})

	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("activity subscription ended: %w", err)
	}
	return fmt.Errorf("activity subscription ended unexpectedly")
}
