package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api/display/packets"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/selector"
)

// DataSource is satisfied by scheduler.StoreSource.
type DataSource interface {
	AppData(ctx context.Context) (*model.AppData, error)
}

// FrameSource is satisfied by scheduler.Runner. Current returns a nil
// encoding until the first tick.
type FrameSource interface {
	Current() (selector.Frame, []byte)
}

type DisplayController struct {
	source DataSource
	clock  clock.Clock
	frames FrameSource
}

// DisplayModule mounts the read-only endpoints a display polls, plus the
// websocket stream when stream is non-nil. When frames is non-nil, /content
// without ?at serves the frame last pushed to MQTT and the websocket.
func DisplayModule(source DataSource, clk clock.Clock, frames FrameSource, stream http.Handler) api.Module {
	ctl := &DisplayController{source: source, clock: clk, frames: frames}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/content", ctl.getContent)
		c.PUBLIC_GET("/state", ctl.getState)
		c.PUBLIC_GET("/schedule", ctl.getSchedule)
		if stream != nil {
			c.RAW_GET("/stream", gin.WrapH(stream))
		}
	})
}

func (c *DisplayController) load(ctx *gin.Context) (*model.AppData, *api.APIError) {
	d, err := c.source.AppData(ctx.Request.Context())
	if err != nil || d == nil {
		log.Error().Err(err).Msg("display data unavailable")
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "display data unavailable"}
	}
	return d, nil
}

// now returns the request time: ?at=RFC3339 for previews, else the clock.
// The clock's location is kept so previews follow the facility time zone.
func (c *DisplayController) now(ctx *gin.Context) (time.Time, *api.APIError) {
	now := c.clock.Now()
	raw := ctx.Query("at")
	if raw == "" {
		return now, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &api.APIError{Code: http.StatusBadRequest, Message: "at must be an RFC3339 timestamp"}
	}
	return at.In(now.Location()), nil
}

// quoteOfTheDay rotates through the quotes once per calendar day.
func quoteOfTheDay(quotes []string, on time.Time) string {
	if len(quotes) == 0 {
		return ""
	}
	return quotes[on.YearDay()%len(quotes)]
}

// GET /api/display/content
func (c *DisplayController) getContent(ctx *gin.Context) (any, *api.APIError) {
	if c.frames != nil && ctx.Query("at") == "" {
		if frame, raw := c.frames.Current(); raw != nil {
			return frame, nil
		}
	}
	now, apiErr := c.now(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	d, apiErr := c.load(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return selector.NewFrame(clock.At(now), d.Snapshot()), nil
}

// GET /api/display/state
func (c *DisplayController) getState(ctx *gin.Context) (any, *api.APIError) {
	now, apiErr := c.now(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	d, apiErr := c.load(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	tp := clock.At(now)
	return packets.StateResponse{
		Frame:    selector.NewFrame(tp, d.Snapshot()),
		Greeting: clock.Greeting(tp.Hour),
		Clock:    model.ClockTime{Hour: tp.Hour, Minute: tp.Minute}.String(),
		Date:     tp.Date.Format(model.BirthDateLayout),
		Weekday:  selector.WeekdayName(tp.WeekdayIndex),
		Week:     tp.Week,
		Theme:    d.Theme,
		Quote:    quoteOfTheDay(d.Quotes, tp.Date),
	}, nil
}

// GET /api/display/schedule
func (c *DisplayController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	now, apiErr := c.now(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	d, apiErr := c.load(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	tp := clock.At(now)
	overview := selector.WeekOverview(tp, d.WeeklySchedule)
	days := make([]packets.DayResponse, 0, len(overview))
	for _, o := range overview {
		days = append(days, packets.DayResponse{
			Day:     o.Day,
			Date:    o.Date.Format(model.BirthDateLayout),
			IsToday: o.IsToday,
			Events:  o.Events,
			Next:    o.Next,
		})
	}
	return packets.WeekResponse{Week: tp.Week, Days: days}, nil
}
