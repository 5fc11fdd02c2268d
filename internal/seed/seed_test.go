package seed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

func TestDefaultIsValid(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	assert.NoError(t, model.Validate(d))
	assert.Len(t, d.Meals, 3)
	assert.Len(t, d.LunchMenu.Images, 7)
	assert.Equal(t, "/assets/Speiseplan.jpg", d.MenuPlanURL)
	assert.NotNil(t, d.WeeklySchedule)
	assert.NotNil(t, d.Residents)
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	a.Meals[0].Name = "changed"

	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "Frühstück", b.Meals[0].Name)
}

func TestMergeJSONKeepsDefaultsForMissingSections(t *testing.T) {
	d, err := MergeJSON([]byte(`{
		"urgentMessage": {"active": true, "title": "Hitze"},
		"residents": [{"id": "r1", "firstName": "Erna", "birthDate": "1938-01-09", "active": true}]
	}`))
	require.NoError(t, err)

	assert.True(t, d.UrgentMessage.Active)
	assert.Equal(t, "Hitze", d.UrgentMessage.Title)
	assert.Equal(t, "18:00", d.UrgentMessage.ActiveUntil, "unset fields keep defaults")
	assert.Len(t, d.Meals, 3)
	require.Len(t, d.Residents, 1)
	assert.Equal(t, "Erna", d.Residents[0].FirstName)
}

func TestMergeJSONReplacesListsWholesale(t *testing.T) {
	d, err := MergeJSON([]byte(`{
		"slideshow": {"images": [{"id": "x", "url": "/x.jpg"}]},
		"meals": [{"name": "Abendbrot", "startTime": {"hour": 18, "minute": 0}, "endTime": {"hour": 19, "minute": 0}}]
	}`))
	require.NoError(t, err)

	require.Len(t, d.Slideshow.Images, 1)
	assert.Equal(t, "", d.Slideshow.Images[0].Caption, "default caption must not leak")
	require.Len(t, d.Meals, 1)
	assert.Equal(t, "", d.Meals[0].ImageURL, "default image must not leak")
	assert.Equal(t, 10, d.Slideshow.DurationPerSlide)
}

func TestMergeJSONDropsLegacyLunchMeal(t *testing.T) {
	d, err := MergeJSON([]byte(`{
		"meals": [
			{"name": "Frühstück", "startTime": {"hour": 7, "minute": 0}, "endTime": {"hour": 8, "minute": 0}},
			{"name": "Mittagessen", "startTime": {"hour": 12, "minute": 0}, "endTime": {"hour": 13, "minute": 0}}
		],
		"lunchMenu": {"images": ["mo.jpg"]},
		"weeklySchedule": {"2": [{"day": "Montag", "events": [{"id": "e", "time": "10:00", "title": "Bingo"}]}]}
	}`))
	require.NoError(t, err)

	require.Len(t, d.Meals, 1)
	assert.Equal(t, "Frühstück", d.Meals[0].Name)
	assert.Equal(t, []string{"mo.jpg", "", "", "", "", "", ""}, d.LunchMenu.Images)
	require.Contains(t, d.WeeklySchedule, 2)
	assert.Equal(t, "Bingo", d.WeeklySchedule[2][0].Events[0].Title)
}

func TestMergeJSONRejectsGarbage(t *testing.T) {
	_, err := MergeJSON([]byte(`[1,2,3]`))
	assert.Error(t, err)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("menuPlanUrl: /custom.jpg\ncurrentTheme: advent\n"), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/custom.jpg", d.MenuPlanURL)
	assert.Equal(t, "advent", d.Theme)
	assert.Len(t, d.Meals, 3)
}

func TestMergeYAMLReplacesListsWholesale(t *testing.T) {
	d, err := MergeYAML([]byte(`
slideshow:
  images:
    - id: x
      url: /x.jpg
meals:
  - name: Abendbrot
    startTime: {hour: 18, minute: 0}
    endTime: {hour: 19, minute: 0}
weeklySchedule:
  5:
    - day: Montag
      events:
        - {id: e, time: "10:00", title: Bingo}
`))
	require.NoError(t, err)

	require.Len(t, d.Slideshow.Images, 1)
	assert.Equal(t, "", d.Slideshow.Images[0].Caption)
	require.Len(t, d.Meals, 1)
	assert.Equal(t, "", d.Meals[0].ImageURL)
	assert.Equal(t, []int{5}, weeks(d.WeeklySchedule))
}

func TestDropPresentListsClearsScheduleForBothFormats(t *testing.T) {
	base := func() *model.AppData {
		return &model.AppData{WeeklySchedule: model.WeeklySchedule{
			3: {{Day: "Montag", Events: []model.Event{{ID: "old", Time: "09:00", Title: "Gymnastik"}}}},
		}}
	}
	docs := map[string]struct {
		raw       string
		unmarshal unmarshalFunc
	}{
		"json": {`{"weeklySchedule": {"5": []}}`, json.Unmarshal},
		"yaml": {"weeklySchedule:\n  5: []\n", yaml.Unmarshal},
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			d := base()
			var top map[string]any
			require.NoError(t, doc.unmarshal([]byte(doc.raw), &top))
			dropPresentLists(d, top)
			require.NoError(t, doc.unmarshal([]byte(doc.raw), d))
			assert.Equal(t, []int{5}, weeks(d.WeeklySchedule), "week 3 must not survive")
		})
	}
}

func TestMergeYAMLRejectsGarbage(t *testing.T) {
	_, err := MergeYAML([]byte("- 1\n- 2\n"))
	assert.Error(t, err)
}

func weeks(w model.WeeklySchedule) []int {
	out := make([]int, 0, len(w))
	for week := range w {
		out = append(out, week)
	}
	slices.Sort(out)
	return out
}
