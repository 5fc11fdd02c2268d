package packets

import (
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/selector"
)

// RESPONSES FOR /api/display/*

type StateResponse struct {
	Frame    selector.Frame `json:"frame"`
	Greeting string         `json:"greeting"`
	Clock    string         `json:"clock"`
	Date     string         `json:"date"`
	Weekday  string         `json:"weekday"`
	Week     int            `json:"week"`
	Theme    string         `json:"theme"`
	Quote    string         `json:"quote,omitempty"`
}

type DayResponse struct {
	Day     string        `json:"day"`
	Date    string        `json:"date"`
	IsToday bool          `json:"is_today"`
	Events  []model.Event `json:"events"`
	Next    *model.Event  `json:"next,omitempty"`
}

type WeekResponse struct {
	Week int           `json:"week"`
	Days []DayResponse `json:"days"`
}
