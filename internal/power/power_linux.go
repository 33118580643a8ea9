//go:build linux

package power

import (
	"context"
	"fmt"

	dbus "github.com/godbus/dbus/v5"
)

// LogindSource watches logind's PrepareForSleep signal on the system bus.
// The signal body is a single bool: true right before suspend, false after
// resume.
type LogindSource struct{}

// NewSystemSource returns the platform sleep/wake source.
func NewSystemSource() (Source, error) {
	return &LogindSource{}, nil
}

// Subscribe connects to the system bus and relays PrepareForSleep until ctx
// is canceled. Connection or match registration failure surfaces to the
// caller, which treats it as fatal at startup.
func (s *LogindSource) Subscribe(ctx context.Context, onSleep, onWake func()) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath("/org/freedesktop/login1"),
		dbus.WithMatchInterface("org.freedesktop.login1.Manager"),
		dbus.WithMatchMember("PrepareForSleep"),
	); err != nil {
		return fmt.Errorf("match PrepareForSleep: %w", err)
	}

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return fmt.Errorf("d-bus signal stream closed")
			}
			if len(sig.Body) != 1 {
				continue
			}
			sleeping, ok := sig.Body[0].(bool)
			if !ok {
				continue
			}
			if sleeping {
				onSleep()
			} else {
				onWake()
			}
		}
	}
}
