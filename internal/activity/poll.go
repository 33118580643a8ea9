package activity

import (
	"context"
	"fmt"
	"time"
)

// defaultPollInterval is how often the system source samples the OS idle
// counter. Sub-second so a single keystroke between scheduler ticks is not
// missed.
const defaultPollInterval = 500 * time.Millisecond

// PollSource synthesizes input events from the OS idle counter: whenever
// the counter shrinks between samples, some input arrived in the gap. The
// event kind is reported as MouseMove since the counter does not say which
// device fired.
type PollSource struct {
	interval time.Duration
	probe    func() (time.Duration, error)
}

// NewSystemSource returns the platform idle-counter source. Fails when the
// platform has no usable idle probe; callers treat that as fatal at
// startup.
func NewSystemSource() (*PollSource, error) {
	probe, err := newIdleProbe()
	if err != nil {
		return nil, fmt.Errorf("activity source unavailable: %w", err)
	}
	return &PollSource{interval: defaultPollInterval, probe: probe}, nil
}

// Subscribe samples the idle counter until ctx is canceled. A probe failure
// after startup terminates the stream with an error.
func (s *PollSource) Subscribe(ctx context.Context, onEvent func(Kind)) error {
	last, err := s.probe()
	if err != nil {
		return fmt.Errorf("initial idle probe: %w", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			idle, err := s.probe()
			if err != nil {
				return fmt.Errorf("idle probe: %w", err)
			}
			if idle < last {
				onEvent(KindMouseMove)
			}
			last = idle
		}
	}
}
