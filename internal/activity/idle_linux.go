//go:build linux

package activity

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/stigoleg/nudge/internal/util"
)

// newIdleProbe returns a probe backed by xprintidle (X11 idle time in
// milliseconds). Wayland sessions do not expose a session idle counter to
// unprivileged clients, so the probe is unavailable there.
func newIdleProbe() (func() (time.Duration, error), error) {
	if !util.HasCommand("xprintidle") {
		return nil, fmt.Errorf("xprintidle not found in PATH (required for idle detection on X11)")
	}

	return func() (time.Duration, error) {
		out, err := exec.Command("xprintidle").Output()
		if err != nil {
			return 0, err
		}

		millis, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse xprintidle output: %w", err)
		}

		return time.Duration(millis) * time.Millisecond, nil
	}, nil
}
