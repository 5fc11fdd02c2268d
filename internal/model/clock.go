package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day, e.g. the start of a meal window.
type ClockTime struct {
	Hour   int `json:"hour"   yaml:"hour"   validate:"min=0,max=23"`
	Minute int `json:"minute" yaml:"minute" validate:"min=0,max=59"`
}

// Minutes returns the minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses an "HH:mm" string. Single-digit hours ("9:30") are accepted.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("invalid time %q: missing ':'", s)
	}
	if len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return ClockTime{}, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return ClockTime{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid minute in %q", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// TimeWindow is an inclusive same-day range. Windows never wrap past midnight.
type TimeWindow struct {
	Start ClockTime
	End   ClockTime
}

// Contains reports whether minutesOfDay lies within [Start, End].
func (w TimeWindow) Contains(minutesOfDay int) bool {
	return w.Start.Minutes() <= minutesOfDay && minutesOfDay <= w.End.Minutes()
}

// TimePoint is the decomposed "now" handed to the selector on every tick.
type TimePoint struct {
	Hour         int       `json:"hour"`
	Minute       int       `json:"minute"`
	WeekdayIndex int       `json:"weekday_index"` // 0 = Monday .. 6 = Sunday
	Week         int       `json:"week"`
	Date         time.Time `json:"date"`
}

// MinutesOfDay returns Hour*60+Minute.
func (t TimePoint) MinutesOfDay() int {
	return t.Hour*60 + t.Minute
}
