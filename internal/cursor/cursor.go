// Package cursor abstracts absolute cursor access so the movement
// controller can be driven by a fake in tests.
package cursor

// Device reads and writes the absolute cursor position. Both calls may fail
// with a device error; callers treat those the same as a verification
// mismatch.
type Device interface {
	Position() (x, y int, err error)
	MoveTo(x, y int) error
}
