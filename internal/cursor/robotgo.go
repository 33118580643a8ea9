package cursor

import (
	"github.com/go-vgo/robotgo"

	_ "github.com/go-vgo/robotgo/base"  // Blank import for robotgo C sources
	_ "github.com/go-vgo/robotgo/mouse" // Blank import for robotgo C sources
)

// RobotgoDevice drives the real cursor through robotgo.
type RobotgoDevice struct{}

// NewRobotgoDevice returns the production cursor device.
func NewRobotgoDevice() *RobotgoDevice {
	return &RobotgoDevice{}
}

// Position returns the current absolute cursor location.
func (d *RobotgoDevice) Position() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

// MoveTo warps the cursor to the absolute position (x, y). robotgo does not
// report failures here; a blocked move surfaces as a verification mismatch
// on the follow-up Position read.
func (d *RobotgoDevice) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}
