package selector

import "github.com/Nixie-Tech-LLC/carescreen/internal/model"

// Kind tags which variant a Decision carries.
type Kind string

const (
	KindUrgent    Kind = "urgent"
	KindEvent     Kind = "event"
	KindBirthday  Kind = "birthday"
	KindMeal      Kind = "meal"
	KindSlideshow Kind = "slideshow"
	KindMenuPlan  Kind = "menu_plan"
)

// LunchLabel is the Decision.Label of a meal decision produced by the lunch rule.
const LunchLabel = "Mittagessen"

// EventAlert announces an event that is about to start or has just started.
// MinutesUntilStart is negative once the event is under way.
type EventAlert struct {
	EventID           string `json:"event_id"`
	Title             string `json:"title"`
	Location          string `json:"location"`
	Time              string `json:"time"`
	MinutesUntilStart int    `json:"minutes_until_start"`
}

// Decision is the single piece of content the display shows. Only the fields
// belonging to Kind are set.
type Decision struct {
	Kind Kind `json:"kind"`

	Urgent    *model.UrgentMessage `json:"urgent,omitempty"`
	Event     *EventAlert          `json:"event,omitempty"`
	Residents []model.Resident     `json:"residents,omitempty"`

	// meal and menu_plan
	ImageURL string `json:"image_url,omitempty"`
	Label    string `json:"label,omitempty"`

	Slides        []model.SlideshowImage `json:"slides,omitempty"`
	SlideDuration int                    `json:"slide_duration,omitempty"`
}

func urgentDecision(m model.UrgentMessage) Decision {
	return Decision{Kind: KindUrgent, Urgent: &m}
}

func eventDecision(a EventAlert) Decision {
	return Decision{Kind: KindEvent, Event: &a}
}

func birthdayDecision(residents []model.Resident) Decision {
	return Decision{Kind: KindBirthday, Residents: residents}
}

func mealDecision(label, imageURL string) Decision {
	return Decision{Kind: KindMeal, Label: label, ImageURL: imageURL}
}

func slideshowDecision(s model.SlideshowData) Decision {
	return Decision{
		Kind:          KindSlideshow,
		Slides:        append([]model.SlideshowImage(nil), s.Images...),
		SlideDuration: s.DurationPerSlide,
	}
}

func menuPlanDecision(imageURL string) Decision {
	return Decision{Kind: KindMenuPlan, ImageURL: imageURL}
}
