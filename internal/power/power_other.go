//go:build !linux

package power

import "context"

// stubSource is used where no sleep/wake feed is wired up. It never emits;
// the idle clock restarting at wake still happens indirectly because the OS
// idle counter resets on resume input.
type stubSource struct{}

// NewSystemSource returns a no-op source on platforms without a logind
// equivalent wired in.
func NewSystemSource() (Source, error) {
	return &stubSource{}, nil
}

func (s *stubSource) Subscribe(ctx context.Context, onSleep, onWake func()) error {
	<-ctx.Done()
	return ctx.Err()
}
