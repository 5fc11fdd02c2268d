package model

// UrgentMessage is the admin override shown above everything else.
// ActiveFrom is stored but not used to gate display.
type UrgentMessage struct {
	Active      bool   `json:"active"      yaml:"active"`
	Title       string `json:"title"       yaml:"title"`
	Text        string `json:"text"        yaml:"text"`
	ImageURL    string `json:"imageUrl"    yaml:"imageUrl"`
	ActiveFrom  string `json:"activeFrom"  yaml:"activeFrom"  validate:"omitempty,hhmm"`
	ActiveUntil string `json:"activeUntil" yaml:"activeUntil" validate:"omitempty,hhmm"`
}

// Meal is a fixed daily meal slot such as breakfast or dinner.
type Meal struct {
	Name      string    `json:"name"      yaml:"name"      validate:"required"`
	StartTime ClockTime `json:"startTime" yaml:"startTime"`
	EndTime   ClockTime `json:"endTime"   yaml:"endTime"`
	ImageURL  string    `json:"imageUrl"  yaml:"imageUrl"`
}

func (m Meal) Window() TimeWindow {
	return TimeWindow{Start: m.StartTime, End: m.EndTime}
}

// LunchMenu holds one menu image per weekday, index 0 = Monday.
type LunchMenu struct {
	StartTime ClockTime `json:"startTime" yaml:"startTime"`
	EndTime   ClockTime `json:"endTime"   yaml:"endTime"`
	Images    []string  `json:"images"    yaml:"images"    validate:"len=7"`
}

func (l LunchMenu) Window() TimeWindow {
	return TimeWindow{Start: l.StartTime, End: l.EndTime}
}

// ImageFor returns the image configured for weekdayIndex, or "" if none.
func (l LunchMenu) ImageFor(weekdayIndex int) string {
	if weekdayIndex < 0 || weekdayIndex >= len(l.Images) {
		return ""
	}
	return l.Images[weekdayIndex]
}

type SlideshowImage struct {
	ID      string `json:"id"      yaml:"id"      validate:"required"`
	URL     string `json:"url"     yaml:"url"     validate:"required"`
	Caption string `json:"caption" yaml:"caption"`
}

type SlideshowData struct {
	Active           bool             `json:"active"           yaml:"active"`
	ActiveFrom       string           `json:"activeFrom"       yaml:"activeFrom"       validate:"omitempty,hhmm"`
	ActiveUntil      string           `json:"activeUntil"      yaml:"activeUntil"      validate:"omitempty,hhmm"`
	DurationPerSlide int              `json:"durationPerSlide" yaml:"durationPerSlide" validate:"min=1"`
	Images           []SlideshowImage `json:"images"           yaml:"images"           validate:"unique=ID,dive"`
}
