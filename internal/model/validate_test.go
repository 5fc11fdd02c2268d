package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAppData() *AppData {
	return &AppData{
		Theme: "standard",
		UrgentMessage: UrgentMessage{
			ActiveUntil: "18:00",
		},
		Meals: []Meal{{
			Name:      "Frühstück",
			StartTime: ClockTime{Hour: 7, Minute: 15},
			EndTime:   ClockTime{Hour: 8, Minute: 30},
		}},
		LunchMenu: LunchMenu{
			StartTime: ClockTime{Hour: 11, Minute: 15},
			EndTime:   ClockTime{Hour: 12, Minute: 30},
			Images:    make([]string, 7),
		},
		Slideshow: SlideshowData{
			Active:           true,
			DurationPerSlide: 10,
			Images:           []SlideshowImage{{ID: "a", URL: "/a.jpg"}},
		},
		WeeklySchedule: WeeklySchedule{
			2: {{Day: "Montag", Events: []Event{{ID: "e1", Time: "10:00", Title: "Bingo"}}}},
		},
		MenuPlanURL: "/assets/Speiseplan.jpg",
		Residents:   []Resident{{ID: "r1", FirstName: "Erna", BirthDate: "1938-01-09", Active: true}},
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 9, Minute: 5}, c)
	assert.Equal(t, 545, c.Minutes())
	assert.Equal(t, "09:05", c.String())

	c, err = ParseClock("9:30")
	require.NoError(t, err)
	assert.Equal(t, 570, c.Minutes())

	for _, bad := range []string{"", "10", "24:00", "10:60", "10:5", "ab:cd", "-1:30", "100:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeWindowContains(t *testing.T) {
	w := TimeWindow{Start: ClockTime{Hour: 11, Minute: 15}, End: ClockTime{Hour: 12, Minute: 30}}
	assert.True(t, w.Contains(675))
	assert.True(t, w.Contains(750))
	assert.False(t, w.Contains(674))
	assert.False(t, w.Contains(751))

	wrapped := TimeWindow{Start: ClockTime{Hour: 22}, End: ClockTime{Hour: 2}}
	assert.False(t, wrapped.Contains(23*60), "windows do not wrap past midnight")
}

func TestValidateAcceptsWellFormedData(t *testing.T) {
	assert.NoError(t, Validate(validAppData()))
}

func TestValidateRejectsMalformedData(t *testing.T) {
	cases := map[string]func(d *AppData){
		"event time":         func(d *AppData) { d.WeeklySchedule[2][0].Events[0].Time = "10 Uhr" },
		"weekday name":       func(d *AppData) { d.WeeklySchedule[2][0].Day = "Monday" },
		"duplicate event id": func(d *AppData) { d.WeeklySchedule[2][0].Events = append(d.WeeklySchedule[2][0].Events, d.WeeklySchedule[2][0].Events[0]) },
		"lunch images":       func(d *AppData) { d.LunchMenu.Images = []string{"a"} },
		"urgent until":       func(d *AppData) { d.UrgentMessage.ActiveUntil = "25:00" },
		"slideshow duration": func(d *AppData) { d.Slideshow.DurationPerSlide = 0 },
		"duplicate slide id": func(d *AppData) { d.Slideshow.Images = append(d.Slideshow.Images, d.Slideshow.Images[0]) },
		"birth date":         func(d *AppData) { d.Residents[0].BirthDate = "09.01.1938" },
		"duplicate resident": func(d *AppData) { d.Residents = append(d.Residents, d.Residents[0]) },
		"meal hour":          func(d *AppData) { d.Meals[0].EndTime.Hour = 24 },
		"theme":              func(d *AppData) { d.Theme = "disco" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := validAppData()
			mutate(d)
			assert.Error(t, Validate(d))
		})
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	d := validAppData()
	snap := d.Snapshot()

	d.LunchMenu.Images[0] = "changed"
	d.WeeklySchedule[2][0].Events[0].Title = "changed"
	d.Residents[0].Active = false
	d.Slideshow.Images[0].URL = "changed"

	assert.Equal(t, "", snap.LunchMenu.Images[0])
	assert.Equal(t, "Bingo", snap.WeeklySchedule[2][0].Events[0].Title)
	assert.True(t, snap.Residents[0].Active)
	assert.Equal(t, "/a.jpg", snap.Slideshow.Images[0].URL)
	assert.Equal(t, "/assets/Speiseplan.jpg", snap.MenuPlanFallbackURL)
}
