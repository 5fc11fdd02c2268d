package model

// Snapshot is an immutable read of every content source the selector needs
// for one decision. Producers hand out a fresh copy per read.
type Snapshot struct {
	UrgentMessage       UrgentMessage  `json:"urgentMessage"`
	Meals               []Meal         `json:"meals"`
	LunchMenu           LunchMenu      `json:"lunchMenu"`
	Slideshow           SlideshowData  `json:"slideshow"`
	WeeklySchedule      WeeklySchedule `json:"weeklySchedule"`
	MenuPlanFallbackURL string         `json:"menuPlanUrl"`
	Residents           []Resident     `json:"residents"`
}

// AppData is the full document edited through the admin API. Besides the
// snapshot sources it carries presentation settings and autocomplete lists.
type AppData struct {
	Theme          string         `json:"currentTheme"   yaml:"currentTheme"   validate:"theme"`
	UrgentMessage  UrgentMessage  `json:"urgentMessage"  yaml:"urgentMessage"`
	Meals          []Meal         `json:"meals"          yaml:"meals"          validate:"dive"`
	LunchMenu      LunchMenu      `json:"lunchMenu"      yaml:"lunchMenu"`
	Slideshow      SlideshowData  `json:"slideshow"      yaml:"slideshow"`
	WeeklySchedule WeeklySchedule `json:"weeklySchedule" yaml:"weeklySchedule" validate:"dive,dive"`
	Quotes         []string       `json:"quotes"         yaml:"quotes"`
	Locations      []string       `json:"locations"      yaml:"locations"`
	EventTitles    []string       `json:"eventTitles"    yaml:"eventTitles"`
	MenuPlanURL    string         `json:"menuPlanUrl"    yaml:"menuPlanUrl"`
	Residents      []Resident     `json:"residents"      yaml:"residents"      validate:"unique=ID,dive"`
}

// Snapshot projects the document onto the selector input. Slices and maps are
// copied so later edits of d never leak into the returned value.
func (d *AppData) Snapshot() *Snapshot {
	lunch := d.LunchMenu
	lunch.Images = append([]string(nil), d.LunchMenu.Images...)

	slides := d.Slideshow
	slides.Images = append([]SlideshowImage(nil), d.Slideshow.Images...)

	return &Snapshot{
		UrgentMessage:       d.UrgentMessage,
		Meals:               append([]Meal(nil), d.Meals...),
		LunchMenu:           lunch,
		Slideshow:           slides,
		WeeklySchedule:      d.WeeklySchedule.Clone(),
		MenuPlanFallbackURL: d.MenuPlanURL,
		Residents:           append([]Resident(nil), d.Residents...),
	}
}

// Themes lists the accepted values of AppData.Theme.
var Themes = []string{
	"standard",
	"spring", "summer", "autumn", "winter",
	"new_year", "three_kings", "carnival", "valentines", "womens_day",
	"easter", "mothers_day", "fathers_day", "pentecost",
	"thanksgiving", "oktoberfest", "german_unity", "halloween", "st_martin",
	"mourning_day", "advent", "nikolaus", "christmas", "silvester",
	"soccer",
}
