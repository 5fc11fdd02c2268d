package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/storage"
)

const jwtSecret = "supersecret"

type fixture struct {
	router  *gin.Engine
	store   *db.MemoryStore
	token   string
	changes atomic.Int32
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{router: gin.New(), store: db.NewMemoryStore()}
	notify := func(context.Context) { f.changes.Add(1) }
	clk := clock.NewFixed(time.Date(2024, time.January, 9, 10, 0, 0, 0, time.UTC))

	api.MountGroup(f.router, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: jwtSecret,
		Users:     f.store,
	},
		DataModule(f.store, notify),
		ScheduleModule(f.store, notify),
		ResidentModule(f.store, notify, clk),
		UploadModule(storage.NewLocalStorage(t.TempDir(), "/uploads")),
	)

	id, err := f.store.CreateUser("admin@example.com", "hash", nil)
	require.NoError(t, err)
	f.token, err = middleware.GenerateJWT(id, jwtSecret)
	require.NoError(t, err)
	return f
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) data(t *testing.T) *model.AppData {
	t.Helper()
	d, err := f.store.GetAppData(context.Background())
	require.NoError(t, err)
	return d
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestEndpointsRequireAuth(t *testing.T) {
	f := setup(t)
	f.token = ""

	w := f.do(http.MethodGet, "/api/admin/data", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportAndImportData(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodGet, "/api/admin/data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := decode[model.AppData](t, w)
	assert.Len(t, exported.Meals, 3)

	w = f.do(http.MethodPut, "/api/admin/data", map[string]any{
		"menuPlanUrl":  "/uploads/plan.jpg",
		"currentTheme": "advent",
		"meals": []map[string]any{
			{"name": "Mittagessen", "startTime": map[string]int{"hour": 12}, "endTime": map[string]int{"hour": 13}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	d := f.data(t)
	assert.Equal(t, "/uploads/plan.jpg", d.MenuPlanURL)
	assert.Equal(t, "advent", d.Theme)
	assert.Empty(t, d.Meals, "legacy lunch meal dropped on import")
	assert.Len(t, d.LunchMenu.Images, 7)
	assert.EqualValues(t, 1, f.changes.Load())

	w = f.do(http.MethodPut, "/api/admin/data", map[string]any{"currentTheme": "disco"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 1, f.changes.Load(), "rejected writes do not notify")
}

func TestUpdateSections(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPut, "/api/admin/urgent", map[string]any{
		"active": true, "title": "Hitzewarnung", "text": "Bitte viel trinken.", "activeUntil": "20:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodPut, "/api/admin/lunch", map[string]any{
		"startTime": map[string]int{"hour": 11, "minute": 30},
		"endTime":   map[string]int{"hour": 13},
		"images":    []string{"mo.jpg", "di.jpg", "", "", "", "", ""},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodPut, "/api/admin/theme", map[string]any{"theme": "christmas"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodPut, "/api/admin/menu-plan", map[string]any{"url": "/uploads/kw2.jpg"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodPut, "/api/admin/lists/locations", map[string]any{"items": []string{"Garten", "Kapelle"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	d := f.data(t)
	assert.True(t, d.UrgentMessage.Active)
	assert.Equal(t, "20:00", d.UrgentMessage.ActiveUntil)
	assert.Equal(t, "di.jpg", d.LunchMenu.ImageFor(1))
	assert.Equal(t, 11*60+30, d.LunchMenu.StartTime.Minutes())
	assert.Equal(t, "christmas", d.Theme)
	assert.Equal(t, "/uploads/kw2.jpg", d.MenuPlanURL)
	assert.Equal(t, []string{"Garten", "Kapelle"}, d.Locations)
	assert.EqualValues(t, 5, f.changes.Load())
}

func TestSectionValidation(t *testing.T) {
	f := setup(t)

	cases := map[string]struct {
		path string
		body any
	}{
		"urgent until":     {"/api/admin/urgent", map[string]any{"active": true, "title": "x", "activeUntil": "25:00"}},
		"urgent title":     {"/api/admin/urgent", map[string]any{"active": true}},
		"lunch images":     {"/api/admin/lunch", map[string]any{"images": []string{"a"}}},
		"meal hour":        {"/api/admin/meals", map[string]any{"meals": []map[string]any{{"name": "x", "startTime": map[string]int{"hour": 24}}}}},
		"slide duration":   {"/api/admin/slideshow", map[string]any{"durationPerSlide": 0}},
		"slide url":        {"/api/admin/slideshow", map[string]any{"durationPerSlide": 5, "images": []map[string]any{{"caption": "x"}}}},
		"theme":            {"/api/admin/theme", map[string]any{"theme": "disco"}},
		"menu plan":        {"/api/admin/menu-plan", map[string]any{}},
		"empty list entry": {"/api/admin/lists/quotes", map[string]any{"items": []string{""}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := f.do(http.MethodPut, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	w := f.do(http.MethodPut, "/api/admin/lists/unknown", map[string]any{"items": []string{}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 0, f.changes.Load())
}

func TestSlideshowEditing(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPut, "/api/admin/slideshow", map[string]any{
		"active":           true,
		"activeUntil":      "21:00",
		"durationPerSlide": 8,
		"images": []map[string]any{
			{"id": "keep", "url": "/uploads/a.jpg"},
			{"url": "/uploads/b.jpg", "caption": "Grillfest"},
			{"id": "drop", "url": "/uploads/c.jpg"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	slides := decode[model.SlideshowData](t, w)
	require.Len(t, slides.Images, 3)
	assert.NotEmpty(t, slides.Images[1].ID, "missing ids are generated")

	w = f.do(http.MethodDelete, "/api/admin/slideshow/images", map[string]any{"ids": []string{"drop", "unknown"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"deleted":1}`, w.Body.String())
	assert.Len(t, f.data(t).Slideshow.Images, 2)

	w = f.do(http.MethodDelete, "/api/admin/slideshow/images", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())
	assert.Empty(t, f.data(t).Slideshow.Images)
}

func TestScheduleEditing(t *testing.T) {
	f := setup(t)
	w := f.do(http.MethodPut, "/api/admin/lists/locations", map[string]any{"items": []string{"Speisesaal", "Garten"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/admin/schedule/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[struct {
		Week int                 `json:"week"`
		Days []model.DaySchedule `json:"days"`
	}](t, w)
	assert.Equal(t, 2, empty.Week)
	require.Len(t, empty.Days, 7)
	assert.Equal(t, "Montag", empty.Days[0].Day)

	w = f.do(http.MethodPost, "/api/admin/schedule/2/Dienstag/events", map[string]any{"title": "Bingo"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[model.Event](t, w)
	assert.Equal(t, "10:00", created.Time)
	assert.Equal(t, "Speisesaal", created.Location)
	assert.NotEmpty(t, created.ID)

	w = f.do(http.MethodPost, "/api/admin/schedule/2/1/events", map[string]any{"title": "Singkreis", "time": "15:30", "location": "Garten"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	d := f.data(t)
	require.Len(t, d.WeeklySchedule[2], 7)
	assert.Len(t, d.WeeklySchedule[2][1].Events, 2)

	w = f.do(http.MethodPut, "/api/admin/schedule/2/Dienstag/events/"+created.ID, map[string]any{"title": "Bingo-Nachmittag", "time": "14:00", "location": "Garten"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "14:00", decode[model.Event](t, w).Time)

	w = f.do(http.MethodPut, "/api/admin/schedule/2/Dienstag/events/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodDelete, "/api/admin/schedule/2/Dienstag/events/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, f.data(t).WeeklySchedule[2][1].Events, 1)

	w = f.do(http.MethodDelete, "/api/admin/schedule/3/Dienstag/events/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleValidation(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/admin/schedule/54", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/admin/schedule/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/admin/schedule/2/Funday/events", map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/admin/schedule/2/0/events", map[string]any{"title": "x", "time": "10 Uhr"}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/admin/schedule/2/0/events", map[string]any{"time": "10:00"}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPut, "/api/admin/schedule/2", map[string]any{
		"days": []map[string]any{{"day": "Monday", "events": []any{}}},
	}).Code)
}

func TestReplaceWeek(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPut, "/api/admin/schedule/5", map[string]any{
		"days": []map[string]any{
			{"day": "Freitag", "events": []map[string]any{{"title": "Kino", "time": "18:00"}}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	d := f.data(t)
	require.Len(t, d.WeeklySchedule[5], 1)
	assert.Equal(t, "Kino", d.WeeklySchedule[5][0].Events[0].Title)
	assert.NotEmpty(t, d.WeeklySchedule[5][0].Events[0].ID)

	w = f.do(http.MethodPut, "/api/admin/schedule/5", map[string]any{"days": []any{}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, f.data(t).WeeklySchedule, 5)
}

func TestResidentLifecycle(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPost, "/api/admin/residents", map[string]any{
		"firstName": "Erna", "lastName": "Schulz", "birthDate": "1938-01-09",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id := created["id"].(string)
	assert.Equal(t, true, created["active"])
	assert.EqualValues(t, 86, created["age"])

	w = f.do(http.MethodPost, "/api/admin/residents/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, f.data(t).Residents[0].Active)

	w = f.do(http.MethodPut, "/api/admin/residents/"+id, map[string]any{
		"firstName": "Erna", "birthDate": "1938-01-09", "hideAge": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[map[string]any](t, w)
	assert.NotContains(t, updated, "age")
	assert.Equal(t, false, updated["active"], "active kept when omitted")

	w = f.do(http.MethodGet, "/api/admin/residents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/admin/residents/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/admin/residents/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/admin/residents/"+id+"/toggle", nil).Code)

	w = f.do(http.MethodPost, "/api/admin/residents", map[string]any{"firstName": "Kurt", "birthDate": "09.01.1941"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResidentsStayOrderedByLastName(t *testing.T) {
	f := setup(t)

	ids := map[string]string{}
	for _, last := range []string{"Schulz", "Zimmer", "Ärmel", "Becker"} {
		w := f.do(http.MethodPost, "/api/admin/residents", map[string]any{
			"firstName": "Erna", "lastName": last, "birthDate": "1938-01-09",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		ids[last] = decode[map[string]any](t, w)["id"].(string)
	}

	lastNames := func() []string {
		var out []string
		for _, r := range f.data(t).Residents {
			out = append(out, r.LastName)
		}
		return out
	}
	assert.Equal(t, []string{"Ärmel", "Becker", "Schulz", "Zimmer"}, lastNames())

	w := f.do(http.MethodPut, "/api/admin/residents/"+ids["Zimmer"], map[string]any{
		"firstName": "Erna", "lastName": "Adler", "birthDate": "1938-01-09",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"Adler", "Ärmel", "Becker", "Schulz"}, lastNames())

	w = f.do(http.MethodGet, "/api/admin/residents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[[]map[string]any](t, w)
	require.Len(t, listed, 4)
	assert.Equal(t, "Adler", listed[0]["lastName"])
}

func TestUploadImage(t *testing.T) {
	f := setup(t)

	upload := func(name string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, _ = part.Write([]byte("image-bytes"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+f.token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		return w
	}

	w := upload("Sommerfest.jpg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Regexp(t, `^/uploads/Sommerfest_\d{8}_\d{6}\.\d{6}\.jpg$`, decode[map[string]string](t, w)["url"])

	assert.Equal(t, http.StatusUnsupportedMediaType, upload("notes.txt").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/admin/uploads", nil).Code)
}
