package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	// The clock time should be between before and after
	assert.False(t, now.Before(before), "clock time should not be before start")
	assert.False(t, now.After(after), "clock time should not be after end")
	assert.Equal(t, time.UTC, now.Location())
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(fixedTime)

	// Should always return the fixed time
	assert.Equal(t, fixedTime, clock.Now())
	assert.Equal(t, fixedTime, clock.Now())
}

func TestMockClock_Set(t *testing.T) {
	initialTime := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	newTime := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)

	clock := NewMockClock(initialTime)
	assert.Equal(t, initialTime, clock.Now())

	clock.Set(newTime)
	assert.Equal(t, newTime, clock.Now())
}

func TestMockClock_Advance(t *testing.T) {
	tests := []struct {
		name     string
		advance  time.Duration
		expected time.Time
	}{
		{name: "forward", advance: 30 * time.Minute, expected: time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)},
		{name: "backward", advance: -2 * time.Hour, expected: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewMockClock(time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
			clock.Advance(tt.advance)
			assert.Equal(t, tt.expected, clock.Now())
		})
	}
}

func TestSteppingClock(t *testing.T) {
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	clock := NewSteppingClock(start, time.Second)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start.Add(time.Second), clock.Now())
	assert.Equal(t, start.Add(2*time.Second), clock.Now())
}

func TestSteppingClock_ConcurrentUse(t *testing.T) {
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	clock := NewSteppingClock(start, time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(50*time.Millisecond), clock.Now())
}

func TestNewMockClockFromString(t *testing.T) {
	clock := NewMockClockFromString("2025-09-01T10:30:00Z")

	expected := time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, expected, clock.Now())
}

func TestNewMockClockFromString_Panic(t *testing.T) {
	assert.Panics(t, func() {
		NewMockClockFromString("invalid-time")
	})
}

func TestClock_Interface(t *testing.T) {
	var _ Clock = NewRealClock()
	var _ Clock = NewMockClock(time.Now())
}
