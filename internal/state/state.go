// Package state holds the shared record coordinating the activity listener,
// the power listener, the command channel, and the scheduler.
package state

import (
	"sync"
	"time"
)

// Snapshot is a consistent view of every field, taken under one lock
// acquisition. Readers never observe a torn combination.
type Snapshot struct {
	Enabled      bool
	Suspended    bool
	LastActivity time.Time
	LastMoved    time.Time
	Direction    int
	ErrorCount   uint
}

// State is the process-wide mutable record. All access goes through the
// methods below; every method is a single short critical section and never
// performs I/O. The zero value is not usable; use New.
type State struct {
	mu           sync.Mutex
	enabled      bool
	suspended    bool
	lastActivity time.Time
	lastMoved    time.Time
	direction    int
	errorCount   uint
}

// New returns a State with both clocks set to now and direction +1.
// Triggering starts disabled; callers opt in via SetEnabled or Toggle.
func New(now time.Time) *State {
	return &State{
		lastActivity: now,
		lastMoved:    now,
		direction:    1,
	}
}

// Snapshot returns all fields as one value.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Enabled:      s.enabled,
		Suspended:    s.suspended,
		LastActivity: s.lastActivity,
		LastMoved:    s.lastMoved,
		Direction:    s.direction,
		ErrorCount:   s.errorCount,
	}
}

// Touch records a real input event. Timestamps are monotonically
// non-decreasing; a stale now is ignored.
func (s *State) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastActivity) {
		s.lastActivity = now
	}
}

// SetSuspended marks the system as asleep or awake without touching the
// idle clock. Use Wake for the resume path.
func (s *State) SetSuspended(suspended bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = suspended
}

// Wake clears the suspended flag and restarts the idle clock. A wake event
// is not a user action, but the idle measurement starts over at wake.
func (s *State) Wake(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = false
	if now.After(s.lastActivity) {
		s.lastActivity = now
	}
}

// SetEnabled sets whether triggering is active.
func (s *State) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Toggle flips the enabled flag and returns the new value. It deliberately
// leaves lastActivity alone: re-enabling after a long idle period may allow
// a trigger on the very next tick.
func (s *State) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = !s.enabled
	return s.enabled
}

// RecordSuccess commits a verified movement: lastMoved advances, the
// direction flips, and the consecutive error count resets. Returns the
// direction for the next attempt.
func (s *State) RecordSuccess(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastMoved) {
		s.lastMoved = now
	}
	s.direction = -s.direction
	s.errorCount = 0
	return s.direction
}

// RecordFailure counts one failed attempt and returns the new consecutive
// error count. The count only ever resets through RecordSuccess.
func (s *State) RecordFailure() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
	return s.errorCount
}
