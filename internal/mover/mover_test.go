package mover

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/nudge/internal/state"
)

// fakeDevice simulates a cursor. Moves land exactly unless skew is set or an
// error is injected.
type fakeDevice struct {
	x, y    int
	skewX   int
	skewY   int
	posErr  error
	moveErr error
	moves   int
}

func (d *fakeDevice) Position() (int, int, error) {
	if d.posErr != nil {
		return 0, 0, d.posErr
	}
	return d.x, d.y, nil
}

func (d *fakeDevice) MoveTo(x, y int) error {
	if d.moveErr != nil {
		return d.moveErr
	}
	d.moves++
	d.x = x + d.skewX
	d.y = y + d.skewY
	return nil
}

func newTestController(d *fakeDevice, st *state.State, maxErrors uint) (*Controller, *bytes.Buffer) {
	var buf bytes.Buffer
	c := New(d, st, maxErrors, zerolog.New(&buf))
	c.SetSettleDelay(0)
	return c, &buf
}

func TestAttemptSuccess(t *testing.T) {
	dev := &fakeDevice{x: 100, y: 200}
	st := state.New(time.Now())
	c, _ := newTestController(dev, st, 10)

	res := c.Attempt(1, 10)

	if res.Phase != PhaseSucceeded {
		t.Fatalf("phase = %v, want Succeeded", res.Phase)
	}
	if res.TargetX != 110 || res.TargetY != 210 {
		t.Errorf("target = (%d, %d), want (110, 210)", res.TargetX, res.TargetY)
	}
	snap := st.Snapshot()
	if snap.Direction != -1 {
		t.Errorf("direction = %d after success, want -1", snap.Direction)
	}
	if snap.ErrorCount != 0 {
		t.Errorf("error count = %d, want 0", snap.ErrorCount)
	}
}

func TestAttemptNegativeDirection(t *testing.T) {
	dev := &fakeDevice{x: 100, y: 200}
	st := state.New(time.Now())
	c, _ := newTestController(dev, st, 10)

	res := c.Attempt(-1, 10)

	if res.Phase != PhaseSucceeded {
		t.Fatalf("phase = %v, want Succeeded", res.Phase)
	}
	if res.TargetX != 90 || res.TargetY != 190 {
		t.Errorf("target = (%d, %d), want (90, 190)", res.TargetX, res.TargetY)
	}
}

func TestVerificationTolerance(t *testing.T) {
	tests := []struct {
		name  string
		skewX int
		skewY int
		want  Phase
	}{
		{"exact", 0, 0, PhaseSucceeded},
		{"at tolerance", 5, 5, PhaseSucceeded},
		{"at negative tolerance", -5, -5, PhaseSucceeded},
		{"x beyond tolerance", 6, 0, PhaseFailed},
		{"y beyond tolerance", 0, 6, PhaseFailed},
		{"far off", 20, 20, PhaseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &fakeDevice{x: 100, y: 100, skewX: tt.skewX, skewY: tt.skewY}
			st := state.New(time.Now())
			c, _ := newTestController(dev, st, 10)

			res := c.Attempt(1, 10)
			if res.Phase != tt.want {
				t.Errorf("phase = %v, want %v", res.Phase, tt.want)
			}
		})
	}
}

func TestDeviceErrorsCountAsFailures(t *testing.T) {
	tests := []struct {
		name string
		dev  *fakeDevice
	}{
		{"position read error", &fakeDevice{posErr: errors.New("device gone")}},
		{"move error", &fakeDevice{x: 1, y: 1, moveErr: errors.New("move blocked")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := state.New(time.Now())
			c, _ := newTestController(tt.dev, st, 10)

			res := c.Attempt(1, 10)
			if res.Phase != PhaseFailed {
				t.Fatalf("phase = %v, want Failed", res.Phase)
			}
			if res.Err == nil {
				t.Error("expected device error in result")
			}
			if snap := st.Snapshot(); snap.ErrorCount != 1 {
				t.Errorf("error count = %d, want 1", snap.ErrorCount)
			}
		})
	}
}

func TestFailureDoesNotFlipDirection(t *testing.T) {
	dev := &fakeDevice{x: 100, y: 100, skewX: 20, skewY: 20}
	st := state.New(time.Now())
	c, _ := newTestController(dev, st, 10)

	before := st.Snapshot()
	c.Attempt(1, 10)
	after := st.Snapshot()

	if after.Direction != before.Direction {
		t.Error("failed attempt flipped direction")
	}
	if !after.LastMoved.Equal(before.LastMoved) {
		t.Error("failed attempt advanced lastMoved")
	}
}

func TestAlertAtMaxErrorsAndOnEveryFailureAfter(t *testing.T) {
	dev := &fakeDevice{x: 100, y: 100, skewX: 20, skewY: 20}
	st := state.New(time.Now())
	c, buf := newTestController(dev, st, 3)

	countAlerts := func() int {
		n := 0
		for _, line := range strings.Split(buf.String(), "\n") {
			if line == "" {
				continue
			}
			var entry map[string]any
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				t.Fatalf("bad log line %q: %v", line, err)
			}
			if entry["level"] == "fatal" {
				n++
			}
		}
		return n
	}

	c.Attempt(1, 10)
	c.Attempt(1, 10)
	if got := countAlerts(); got != 0 {
		t.Fatalf("alerts = %d before threshold, want 0", got)
	}

	// Third consecutive failure crosses the threshold.
	c.Attempt(1, 10)
	if got := countAlerts(); got != 1 {
		t.Fatalf("alerts = %d at threshold, want 1", got)
	}

	// The fourth attempt still runs, still fails, and alerts again with no
	// deduplication and no reset of the count.
	res := c.Attempt(1, 10)
	if res.Phase != PhaseFailed {
		t.Fatalf("phase = %v on 4th attempt, want Failed", res.Phase)
	}
	if res.ErrCount != 4 {
		t.Errorf("error count = %d on 4th failure, want 4", res.ErrCount)
	}
	if got := countAlerts(); got != 2 {
		t.Errorf("alerts = %d after 4th failure, want 2", got)
	}

	// A success clears the count; the alert stops.
	dev.skewX, dev.skewY = 0, 0
	if res := c.Attempt(1, 10); res.Phase != PhaseSucceeded {
		t.Fatalf("phase = %v after fixing device, want Succeeded", res.Phase)
	}
	if snap := st.Snapshot(); snap.ErrorCount != 0 {
		t.Errorf("error count = %d after success, want 0", snap.ErrorCount)
	}
}

func TestEveryAttemptResolves(t *testing.T) {
	dev := &fakeDevice{x: 50, y: 50}
	st := state.New(time.Now())
	c, _ := newTestController(dev, st, 10)

	for i := 0; i < 5; i++ {
		res := c.Attempt(st.Snapshot().Direction, 10)
		if res.Phase != PhaseSucceeded && res.Phase != PhaseFailed {
			t.Fatalf("attempt %d left unresolved phase %v", i, res.Phase)
		}
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("controller phase = %v between attempts, want Idle", c.Phase())
	}
}
