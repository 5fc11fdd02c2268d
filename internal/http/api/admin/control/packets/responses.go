package packets

import "github.com/Nixie-Tech-LLC/carescreen/internal/model"

type WeekScheduleResponse struct {
	Week int                 `json:"week"`
	Days []model.DaySchedule `json:"days"`
}

type ResidentResponse struct {
	model.Resident
	Age *int `json:"age,omitempty"`
}

type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
