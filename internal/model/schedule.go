package model

// Event is a single calendar entry on a day of the weekly schedule.
type Event struct {
	ID       string `json:"id"       yaml:"id"       validate:"required"`
	Time     string `json:"time"     yaml:"time"     validate:"hhmm"`
	Title    string `json:"title"    yaml:"title"    validate:"required"`
	Location string `json:"location" yaml:"location"`
}

// DaySchedule groups the events of one weekday. Day is the German weekday
// name ("Montag".."Sonntag").
type DaySchedule struct {
	Day    string  `json:"day"    yaml:"day"    validate:"weekday"`
	Events []Event `json:"events" yaml:"events" validate:"unique=ID,dive"`
}

// WeeklySchedule is keyed by calendar week number.
type WeeklySchedule map[int][]DaySchedule

// Clone returns a deep copy.
func (w WeeklySchedule) Clone() WeeklySchedule {
	if w == nil {
		return nil
	}
	out := make(WeeklySchedule, len(w))
	for week, days := range w {
		out[week] = cloneDays(days)
	}
	return out
}

func cloneDays(days []DaySchedule) []DaySchedule {
	if days == nil {
		return nil
	}
	out := make([]DaySchedule, len(days))
	for i, d := range days {
		out[i] = DaySchedule{Day: d.Day, Events: append([]Event(nil), d.Events...)}
	}
	return out
}
