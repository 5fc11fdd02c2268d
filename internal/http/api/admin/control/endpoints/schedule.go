package endpoints

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// defaultEventTime is used for new events posted without a time.
const defaultEventTime = "10:00"

type ScheduleController struct {
	writer
}

// ScheduleModule mounts the weekly schedule editor endpoints.
func ScheduleModule(store db.Store, notify Notify) api.Module {
	ctl := &ScheduleController{writer{store: store, notify: notify}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedule/:week", ctl.getWeek)
		c.PUT("/schedule/:week", ctl.replaceWeek)
		c.POST("/schedule/:week/:day/events", ctl.addEvent)
		c.PUT("/schedule/:week/:day/events/:event_id", ctl.updateEvent)
		c.DELETE("/schedule/:week/:day/events/:event_id", ctl.deleteEvent)
	})
}

func parseWeek(ctx *gin.Context) (int, *api.APIError) {
	week, err := strconv.Atoi(ctx.Param("week"))
	if err != nil || week < 1 || week > 53 {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "week must be between 1 and 53"}
	}
	return week, nil
}

// parseDay accepts a German weekday name or an index, 0 = Montag.
func parseDay(ctx *gin.Context) (string, *api.APIError) {
	raw := ctx.Param("day")
	if slices.Contains(model.WeekdayNames[:], raw) {
		return raw, nil
	}
	if i, err := strconv.Atoi(raw); err == nil && i >= 0 && i < len(model.WeekdayNames) {
		return model.WeekdayNames[i], nil
	}
	return "", &api.APIError{Code: http.StatusBadRequest, Message: fmt.Sprintf("unknown day %q", raw)}
}

// fullWeek returns the days of a week in Montag..Sonntag order, adding empty
// entries for days that have none.
func fullWeek(days []model.DaySchedule) []model.DaySchedule {
	out := make([]model.DaySchedule, 0, len(model.WeekdayNames))
	for _, name := range model.WeekdayNames {
		day := model.DaySchedule{Day: name, Events: []model.Event{}}
		for _, d := range days {
			if d.Day == name {
				day.Events = append(day.Events, d.Events...)
			}
		}
		out = append(out, day)
	}
	return out
}

// dayEvents returns a pointer to the event list of day in week, creating the
// week and the day as needed.
func dayEvents(d *model.AppData, week int, day string) *[]model.Event {
	days, ok := d.WeeklySchedule[week]
	if !ok {
		days = fullWeek(nil)
	}
	i := slices.IndexFunc(days, func(ds model.DaySchedule) bool { return ds.Day == day })
	if i < 0 {
		days = append(days, model.DaySchedule{Day: day, Events: []model.Event{}})
		i = len(days) - 1
	}
	d.WeeklySchedule[week] = days
	return &d.WeeklySchedule[week][i].Events
}

func findEvent(events []model.Event, id string) int {
	return slices.IndexFunc(events, func(e model.Event) bool { return e.ID == id })
}

// GET /api/admin/schedule/:week
func (c *ScheduleController) getWeek(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	week, apiErr := parseWeek(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	d, apiErr := c.load(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.WeekScheduleResponse{Week: week, Days: fullWeek(d.WeeklySchedule[week])}, nil
}

// PUT /api/admin/schedule/:week
// An empty day list removes the week.
func (c *ScheduleController) replaceWeek(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	week, apiErr := parseWeek(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.WeekScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}

	days := make([]model.DaySchedule, 0, len(request.Days))
	for _, day := range request.Days {
		events := make([]model.Event, 0, len(day.Events))
		for _, ev := range day.Events {
			id := ev.ID
			if id == "" {
				id = uuid.NewString()
			}
			t := ev.Time
			if t == "" {
				t = defaultEventTime
			}
			events = append(events, model.Event{ID: id, Time: t, Title: ev.Title, Location: ev.Location})
		}
		days = append(days, model.DaySchedule{Day: day.Day, Events: events})
	}

	d, apiErr := c.update(ctx, user, "schedule", func(d *model.AppData) error {
		if len(days) == 0 {
			delete(d.WeeklySchedule, week)
			return nil
		}
		d.WeeklySchedule[week] = days
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.WeekScheduleResponse{Week: week, Days: fullWeek(d.WeeklySchedule[week])}, nil
}

// POST /api/admin/schedule/:week/:day/events
// A missing location defaults to the first configured location.
func (c *ScheduleController) addEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	week, apiErr := parseWeek(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.EventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}

	event := model.Event{ID: uuid.NewString(), Time: request.Time, Title: request.Title, Location: request.Location}
	if event.Time == "" {
		event.Time = defaultEventTime
	}
	if _, apiErr := c.update(ctx, user, "schedule", func(d *model.AppData) error {
		if event.Location == "" && len(d.Locations) > 0 {
			event.Location = d.Locations[0]
		}
		events := dayEvents(d, week, day)
		*events = append(*events, event)
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return event, nil
}

// PUT /api/admin/schedule/:week/:day/events/:event_id
func (c *ScheduleController) updateEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	week, apiErr := parseWeek(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.EventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}

	id := ctx.Param("event_id")
	var updated model.Event
	if _, apiErr := c.update(ctx, user, "schedule", func(d *model.AppData) error {
		if _, ok := d.WeeklySchedule[week]; !ok {
			return db.ErrNotFound
		}
		events := dayEvents(d, week, day)
		i := findEvent(*events, id)
		if i < 0 {
			return db.ErrNotFound
		}
		ev := &(*events)[i]
		if request.Time != "" {
			ev.Time = request.Time
		}
		ev.Title = request.Title
		ev.Location = request.Location
		updated = *ev
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return updated, nil
}

// DELETE /api/admin/schedule/:week/:day/events/:event_id
func (c *ScheduleController) deleteEvent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	week, apiErr := parseWeek(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	id := ctx.Param("event_id")
	_, apiErr = c.update(ctx, user, "schedule", func(d *model.AppData) error {
		if _, ok := d.WeeklySchedule[week]; !ok {
			return db.ErrNotFound
		}
		events := dayEvents(d, week, day)
		i := findEvent(*events, id)
		if i < 0 {
			return db.ErrNotFound
		}
		*events = slices.Delete(*events, i, i+1)
		return nil
	})
	return nil, apiErr
}
