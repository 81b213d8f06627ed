package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// locationCache stores loaded timezone locations.
var locationCache sync.Map

// UTC is the default display timezone.
const UTC = "UTC"

// Layouts used by pricing sources and for display.
const (
	// LocalDateTimeLayout is the zone-less local time sent with flight segments.
	LocalDateTimeLayout = "2006-01-02T15:04:05"

	// ReadableLayout renders a segment time for people (e.g., "Sep 01, 2025 08:00 AM").
	ReadableLayout = "Jan 02, 2006 03:04 PM"

	// StampLayout renders report generation times.
	StampLayout = "2006-01-02 15:04 MST"
)

// GetLocation returns a cached timezone location.
// An empty name resolves to UTC.
func GetLocation(name string) (*time.Location, error) {
	if name == "" {
		name = UTC
	}
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// InTimezone converts a time to the specified timezone.
func InTimezone(t time.Time, timezone string) (time.Time, error) {
	loc, err := GetLocation(timezone)
	if err != nil {
		return t, err
	}
	return t.In(loc), nil
}

// FormatStamp formats t in the given timezone using StampLayout.
// It falls back to UTC when the timezone cannot be loaded.
func FormatStamp(t time.Time, timezone string) string {
	local, err := InTimezone(t, timezone)
	if err != nil {
		local = t.UTC()
	}
	return local.Format(StampLayout)
}

// ReadableLocal renders a zone-less segment time such as "2025-09-01T08:00:00"
// as "Sep 01, 2025 08:00 AM". Values that do not parse are returned unchanged.
func ReadableLocal(value string) string {
	t, err := time.Parse(LocalDateTimeLayout, value)
	if err != nil {
		// Some sources append a zone offset.
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return value
		}
	}
	return t.Format(ReadableLayout)
}

// ClearLocationCache clears the cached timezone locations.
// This is primarily useful for testing.
func ClearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
