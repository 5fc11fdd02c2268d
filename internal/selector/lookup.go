package selector

import (
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// WeekdayName maps 0..6 to "Montag".."Sonntag"; anything else yields "".
func WeekdayName(weekdayIndex int) string {
	if weekdayIndex < 0 || weekdayIndex >= len(model.WeekdayNames) {
		return ""
	}
	return model.WeekdayNames[weekdayIndex]
}

// DayEvents returns the stored events of one weekday in the given week. A
// week without an entry is treated as empty.
func DayEvents(schedule model.WeeklySchedule, week, weekdayIndex int) []model.Event {
	name := WeekdayName(weekdayIndex)
	if name == "" {
		return nil
	}
	for _, day := range schedule[week] {
		if day.Day == name {
			return day.Events
		}
	}
	return nil
}

// SortedEvents returns a copy of events ordered by their "HH:mm" time string.
func SortedEvents(events []model.Event) []model.Event {
	out := append([]model.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// UpcomingEventForDay picks the event a schedule preview highlights. For today
// it is the earliest event starting at or after nowMinutes, or the day's last
// event once all have started; for any other day it is the earliest event.
// It returns nil when there are no events.
func UpcomingEventForDay(events []model.Event, isToday bool, nowMinutes int) *model.Event {
	sorted := SortedEvents(events)
	if len(sorted) == 0 {
		return nil
	}
	if !isToday {
		return &sorted[0]
	}
	for i := range sorted {
		at, err := model.ParseClock(sorted[i].Time)
		if err != nil {
			continue
		}
		if at.Minutes() >= nowMinutes {
			return &sorted[i]
		}
	}
	return &sorted[len(sorted)-1]
}

// DayOverview is one row of the weekly schedule panel.
type DayOverview struct {
	Day     string        `json:"day"`
	Date    time.Time     `json:"date"`
	IsToday bool          `json:"is_today"`
	Events  []model.Event `json:"events"`
	Next    *model.Event  `json:"next,omitempty"`
}

// WeekOverview builds the Monday..Sunday preview of the week containing tp.
// Days without events carry an empty, non-nil Events slice.
func WeekOverview(tp model.TimePoint, schedule model.WeeklySchedule) []DayOverview {
	out := make([]DayOverview, 0, len(model.WeekdayNames))
	for i, name := range model.WeekdayNames {
		events := SortedEvents(DayEvents(schedule, tp.Week, i))
		if events == nil {
			events = []model.Event{}
		}
		isToday := i == tp.WeekdayIndex
		out = append(out, DayOverview{
			Day:     name,
			Date:    tp.Date.AddDate(0, 0, i-tp.WeekdayIndex),
			IsToday: isToday,
			Events:  events,
			Next:    UpcomingEventForDay(events, isToday, tp.MinutesOfDay()),
		})
	}
	return out
}
