package clock

import (
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// Clock supplies the current wall-clock instant.
type Clock interface {
	Now() time.Time
}

// System reads time.Now in a fixed location, normally the facility's.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Fixed is a controllable clock for tests and previews.
type Fixed struct {
	mu      sync.Mutex
	current time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.current = t
	f.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (f *Fixed) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current.Add(d)
	return f.current
}

// At decomposes t into the TimePoint consumed by the selector. The week is the
// ISO 8601 week number, which is also the key of model.WeeklySchedule.
func At(t time.Time) model.TimePoint {
	_, week := t.ISOWeek()
	return model.TimePoint{
		Hour:         t.Hour(),
		Minute:       t.Minute(),
		WeekdayIndex: WeekdayIndex(t.Weekday()),
		Week:         week,
		Date:         time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
	}
}

// WeekdayIndex maps time.Weekday (Sunday = 0) to Monday = 0 .. Sunday = 6.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Greeting returns the salutation shown in the display header for hour.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 11:
		return "Guten Morgen"
	case hour >= 11 && hour < 14:
		return "Es ist Mittagszeit"
	case hour >= 14 && hour < 18:
		return "Es ist Nachmittag"
	case hour >= 18 && hour < 22:
		return "Guten Abend"
	default:
		return "Gute Nacht"
	}
}
