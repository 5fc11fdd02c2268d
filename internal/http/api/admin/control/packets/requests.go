package packets

import "github.com/Nixie-Tech-LLC/carescreen/internal/model"

// Request bodies mirror the sections of the display document, so the admin
// UI can send back what GET /data returned.

type Clock struct {
	Hour   int `json:"hour"   binding:"min=0,max=23"`
	Minute int `json:"minute" binding:"min=0,max=59"`
}

func (c Clock) ToModel() model.ClockTime {
	return model.ClockTime{Hour: c.Hour, Minute: c.Minute}
}

type UrgentMessageRequest struct {
	Active      bool   `json:"active"`
	Title       string `json:"title"       binding:"required_if=Active true"`
	Text        string `json:"text"`
	ImageURL    string `json:"imageUrl"`
	ActiveFrom  string `json:"activeFrom"  binding:"omitempty,hhmm"`
	ActiveUntil string `json:"activeUntil" binding:"omitempty,hhmm"`
}

func (r UrgentMessageRequest) ToModel() model.UrgentMessage {
	return model.UrgentMessage{
		Active:      r.Active,
		Title:       r.Title,
		Text:        r.Text,
		ImageURL:    r.ImageURL,
		ActiveFrom:  r.ActiveFrom,
		ActiveUntil: r.ActiveUntil,
	}
}

type MealRequest struct {
	Name      string `json:"name"      binding:"required"`
	StartTime Clock  `json:"startTime"`
	EndTime   Clock  `json:"endTime"`
	ImageURL  string `json:"imageUrl"`
}

type MealsRequest struct {
	Meals []MealRequest `json:"meals" binding:"dive"`
}

func (r MealsRequest) ToModel() []model.Meal {
	out := make([]model.Meal, 0, len(r.Meals))
	for _, m := range r.Meals {
		out = append(out, model.Meal{
			Name:      m.Name,
			StartTime: m.StartTime.ToModel(),
			EndTime:   m.EndTime.ToModel(),
			ImageURL:  m.ImageURL,
		})
	}
	return out
}

type LunchMenuRequest struct {
	StartTime Clock    `json:"startTime"`
	EndTime   Clock    `json:"endTime"`
	Images    []string `json:"images" binding:"len=7"`
}

func (r LunchMenuRequest) ToModel() model.LunchMenu {
	return model.LunchMenu{
		StartTime: r.StartTime.ToModel(),
		EndTime:   r.EndTime.ToModel(),
		Images:    append([]string(nil), r.Images...),
	}
}

type SlideRequest struct {
	ID      string `json:"id"`
	URL     string `json:"url" binding:"required"`
	Caption string `json:"caption"`
}

type SlideshowRequest struct {
	Active           bool           `json:"active"`
	ActiveFrom       string         `json:"activeFrom"       binding:"omitempty,hhmm"`
	ActiveUntil      string         `json:"activeUntil"      binding:"omitempty,hhmm"`
	DurationPerSlide int            `json:"durationPerSlide" binding:"required,min=1"`
	Images           []SlideRequest `json:"images"           binding:"dive"`
}

type DeleteSlidesRequest struct {
	IDs []string `json:"ids"`
}

type MenuPlanRequest struct {
	URL string `json:"url" binding:"required"`
}

type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,theme"`
}

type ListRequest struct {
	Items []string `json:"items" binding:"dive,required"`
}

type EventRequest struct {
	Time     string `json:"time"  binding:"omitempty,hhmm"`
	Title    string `json:"title" binding:"required"`
	Location string `json:"location"`
}

// ScheduledEventRequest is an event inside a full week upload. A missing ID
// is generated.
type ScheduledEventRequest struct {
	ID string `json:"id"`
	EventRequest
}

type DayRequest struct {
	Day    string                  `json:"day"    binding:"required,weekday"`
	Events []ScheduledEventRequest `json:"events" binding:"dive"`
}

type WeekScheduleRequest struct {
	Days []DayRequest `json:"days" binding:"dive"`
}

type ResidentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate" binding:"required,datetime=2006-01-02"`
	HideAge   bool   `json:"hideAge"`
	Active    *bool  `json:"active"`
}
