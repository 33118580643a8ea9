//go:build darwin

package activity

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/stigoleg/nudge/internal/util"
)

var hidIdleRe = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// newIdleProbe returns a probe backed by ioreg's HIDIdleTime counter
// (nanoseconds since the last HID event).
func newIdleProbe() (func() (time.Duration, error), error) {
	if !util.HasCommand("ioreg") {
		return nil, fmt.Errorf("ioreg not found in PATH")
	}

	return func() (time.Duration, error) {
		out, err := exec.Command("ioreg", "-c", "IOHIDSystem").Output()
		if err != nil {
			return 0, err
		}

		matches := hidIdleRe.FindSubmatch(out)
		if len(matches) < 2 {
			return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
		}

		nanos, err := strconv.ParseInt(string(matches[1]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}

		return time.Duration(nanos), nil
	}, nil
}
