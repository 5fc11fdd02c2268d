// Package selector decides which single piece of content the facility display
// shows at a given moment. It is pure: no I/O, no clock, no shared state.
package selector

import (
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

const (
	// an event is announced from 15 minutes before its start ...
	eventLeadMinutes = 15
	// ... until 10 minutes after it (exclusive)
	eventTrailMinutes = 10

	// birthdays are shown during the first 2 minutes of every 15 minute block
	birthdayPeriodMinutes = 15
	birthdaySlotMinutes   = 2
)

// SelectContent runs the priority cascade for tp against snap. The first rule
// that matches wins:
//
//  1. active urgent message
//  2. event starting within the proximity window
//  3. birthday, during its periodic slot
//  4. lunch menu of the day
//  5. other meals, in list order
//  6. active slideshow
//  7. menu plan fallback
//
// Malformed records are skipped. A nil snap yields the fallback with an empty
// URL; callers are expected to reject a missing snapshot before getting here.
func SelectContent(tp model.TimePoint, snap *model.Snapshot) Decision {
	if snap == nil {
		return menuPlanDecision("")
	}
	now := tp.MinutesOfDay()

	if snap.UrgentMessage.Active && TimeActive(snap.UrgentMessage.ActiveUntil, now) {
		return urgentDecision(snap.UrgentMessage)
	}

	if alert, ok := eventAlert(DayEvents(snap.WeeklySchedule, tp.Week, tp.WeekdayIndex), now); ok {
		return eventDecision(alert)
	}

	if residents := BirthdayResidents(snap.Residents, tp); len(residents) > 0 && InBirthdaySlot(now) {
		return birthdayDecision(residents)
	}

	if snap.LunchMenu.Window().Contains(now) {
		img := snap.LunchMenu.ImageFor(tp.WeekdayIndex)
		if img == "" {
			img = snap.MenuPlanFallbackURL
		}
		return mealDecision(LunchLabel, img)
	}

	for _, meal := range snap.Meals {
		if meal.Window().Contains(now) {
			return mealDecision(meal.Name, meal.ImageURL)
		}
	}

	if snap.Slideshow.Active && TimeActive(snap.Slideshow.ActiveUntil, now) {
		return slideshowDecision(snap.Slideshow)
	}

	return menuPlanDecision(snap.MenuPlanFallbackURL)
}

// TimeActive reports whether an "active until" bound still holds at
// minutesOfDay. An empty or unparsable bound means "indefinitely active".
// There is deliberately no "active from" counterpart.
func TimeActive(activeUntil string, minutesOfDay int) bool {
	until, err := model.ParseClock(activeUntil)
	if err != nil {
		return true
	}
	return minutesOfDay <= until.Minutes()
}

// InBirthdaySlot reports whether minutesOfDay falls in the 2-of-15-minute
// birthday display slot (minutes 0-1, 15-16, 30-31 and 45-46 of each hour).
func InBirthdaySlot(minutesOfDay int) bool {
	return minutesOfDay%birthdayPeriodMinutes < birthdaySlotMinutes
}

// eventAlert scans events in stored order and returns the first whose
// proximity window [start-15, start+10) contains now.
func eventAlert(events []model.Event, now int) (EventAlert, bool) {
	for _, ev := range events {
		at, err := model.ParseClock(ev.Time)
		if err != nil {
			continue
		}
		start := at.Minutes()
		if now >= start-eventLeadMinutes && now < start+eventTrailMinutes {
			return EventAlert{
				EventID:           ev.ID,
				Title:             ev.Title,
				Location:          ev.Location,
				Time:              ev.Time,
				MinutesUntilStart: start - now,
			}, true
		}
	}
	return EventAlert{}, false
}
