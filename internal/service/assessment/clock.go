package assessment

import "time"

// Clock provides time operations that can be mocked in tests
type Clock interface {
	Now() time.Time
}

// RealClock uses the actual system time
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// clock is the package-level clock, replaceable in tests
var clock Clock = RealClock{}

// SetClock replaces the package clock. Tests must call ResetClock when done.
func SetClock(c Clock) {
	clock = c
}

// ResetClock restores the real system clock
func ResetClock() {
	clock = RealClock{}
}

// MockClock is a controllable clock for tests
type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (m *MockClock) Now() time.Time {
	return m.current
}

func (m *MockClock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
