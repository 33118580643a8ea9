//go:build !darwin && !linux

package activity

import (
	"fmt"
	"runtime"
	"time"
)

func newIdleProbe() (func() (time.Duration, error), error) {
	return nil, fmt.Errorf("no idle probe for %s", runtime.GOOS)
}
