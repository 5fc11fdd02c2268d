package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/seed"
)

const maxImportBytes = 10 << 20

type DataController struct {
	writer
}

// DataModule mounts the document-wide and per-section edit endpoints.
func DataModule(store db.Store, notify Notify) api.Module {
	ctl := &DataController{writer{store: store, notify: notify}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/data", ctl.exportData)
		c.PUT("/data", ctl.importData)

		c.PUT("/urgent", ctl.updateUrgent)
		c.PUT("/meals", ctl.updateMeals)
		c.PUT("/lunch", ctl.updateLunch)
		c.PUT("/slideshow", ctl.updateSlideshow)
		c.DELETE("/slideshow/images", ctl.deleteSlides)
		c.PUT("/menu-plan", ctl.updateMenuPlan)
		c.PUT("/theme", ctl.updateTheme)
		c.PUT("/lists/:name", ctl.updateList)
	})
}

// GET /api/admin/data
func (c *DataController) exportData(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	d, apiErr := c.load(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	ctx.Header("Content-Disposition", `attachment; filename="carescreen-backup.json"`)
	return d, nil
}

// PUT /api/admin/data
// Sections missing from the body fall back to the defaults, as with a
// backup written by an older version.
func (c *DataController) importData(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportBytes+1))
	if err != nil {
		return nil, badRequest(err)
	}
	if len(raw) > maxImportBytes {
		return nil, &api.APIError{Code: http.StatusRequestEntityTooLarge, Message: "backup too large"}
	}
	imported, err := seed.MergeJSON(raw)
	if err != nil {
		return nil, badRequest(err)
	}
	return c.update(ctx, user, "all", func(d *model.AppData) error {
		*d = *imported
		return nil
	})
}

// PUT /api/admin/urgent
func (c *DataController) updateUrgent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UrgentMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	d, apiErr := c.update(ctx, user, "urgent", func(d *model.AppData) error {
		d.UrgentMessage = request.ToModel()
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return d.UrgentMessage, nil
}

// PUT /api/admin/meals
func (c *DataController) updateMeals(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.MealsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	d, apiErr := c.update(ctx, user, "meals", func(d *model.AppData) error {
		d.Meals = request.ToModel()
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return d.Meals, nil
}

// PUT /api/admin/lunch
func (c *DataController) updateLunch(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.LunchMenuRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	d, apiErr := c.update(ctx, user, "lunch", func(d *model.AppData) error {
		d.LunchMenu = request.ToModel()
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return d.LunchMenu, nil
}

// PUT /api/admin/slideshow
func (c *DataController) updateSlideshow(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.SlideshowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	images := make([]model.SlideshowImage, 0, len(request.Images))
	for _, img := range request.Images {
		id := img.ID
		if id == "" {
			id = uuid.NewString()
		}
		images = append(images, model.SlideshowImage{ID: id, URL: img.URL, Caption: img.Caption})
	}
	d, apiErr := c.update(ctx, user, "slideshow", func(d *model.AppData) error {
		d.Slideshow = model.SlideshowData{
			Active:           request.Active,
			ActiveFrom:       request.ActiveFrom,
			ActiveUntil:      request.ActiveUntil,
			DurationPerSlide: request.DurationPerSlide,
			Images:           images,
		}
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return d.Slideshow, nil
}

// DELETE /api/admin/slideshow/images
// An empty id list removes every slide.
func (c *DataController) deleteSlides(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.DeleteSlidesRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, badRequest(err)
		}
	}
	deleted := 0
	_, apiErr := c.update(ctx, user, "slideshow", func(d *model.AppData) error {
		before := len(d.Slideshow.Images)
		if len(request.IDs) == 0 {
			d.Slideshow.Images = []model.SlideshowImage{}
		} else {
			d.Slideshow.Images = slices.DeleteFunc(d.Slideshow.Images, func(img model.SlideshowImage) bool {
				return slices.Contains(request.IDs, img.ID)
			})
		}
		deleted = before - len(d.Slideshow.Images)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.DeletedResponse{Deleted: deleted}, nil
}

// PUT /api/admin/menu-plan
func (c *DataController) updateMenuPlan(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.MenuPlanRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	if _, apiErr := c.update(ctx, user, "menu-plan", func(d *model.AppData) error {
		d.MenuPlanURL = request.URL
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return request, nil
}

// PUT /api/admin/theme
func (c *DataController) updateTheme(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ThemeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	if _, apiErr := c.update(ctx, user, "theme", func(d *model.AppData) error {
		d.Theme = request.Theme
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return request, nil
}

// PUT /api/admin/lists/:name
// name is one of quotes, locations, event_titles.
func (c *DataController) updateList(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.Param("name")
	pick, ok := map[string]func(d *model.AppData) *[]string{
		"quotes":       func(d *model.AppData) *[]string { return &d.Quotes },
		"locations":    func(d *model.AppData) *[]string { return &d.Locations },
		"event_titles": func(d *model.AppData) *[]string { return &d.EventTitles },
	}[name]
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: fmt.Sprintf("unknown list %q", name)}
	}

	var request packets.ListRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	items := append([]string{}, request.Items...)
	if _, apiErr := c.update(ctx, user, name, func(d *model.AppData) error {
		*pick(d) = items
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return packets.ListRequest{Items: items}, nil
}
