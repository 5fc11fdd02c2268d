package endpoints

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/selector"
)

type ResidentController struct {
	writer
	clock clock.Clock
}

// ResidentModule mounts the birthday list endpoints.
func ResidentModule(store db.Store, notify Notify, clk clock.Clock) api.Module {
	ctl := &ResidentController{writer: writer{store: store, notify: notify}, clock: clk}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/residents", ctl.listResidents)
		c.POST("/residents", ctl.createResident)
		c.PUT("/residents/:id", ctl.updateResident)
		c.DELETE("/residents/:id", ctl.deleteResident)
		c.POST("/residents/:id/toggle", ctl.toggleResident)
	})
}

func residentResponse(r model.Resident, on time.Time) packets.ResidentResponse {
	out := packets.ResidentResponse{Resident: r}
	if age, ok := selector.Age(r, on); ok {
		out.Age = &age
	}
	return out
}

func findResident(residents []model.Resident, id string) int {
	return slices.IndexFunc(residents, func(r model.Resident) bool { return r.ID == id })
}

// sortResidents orders the list by last name using German collation, so
// umlauts sort next to their base letter. Ties keep their existing order.
// A Collator is not safe for concurrent use, hence one per call.
func sortResidents(residents []model.Resident) {
	col := collate.New(language.German)
	slices.SortStableFunc(residents, func(a, b model.Resident) int {
		return col.CompareString(a.LastName, b.LastName)
	})
}

// GET /api/admin/residents
func (c *ResidentController) listResidents(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	d, apiErr := c.load(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	now := c.clock.Now()
	out := make([]packets.ResidentResponse, 0, len(d.Residents))
	for _, r := range d.Residents {
		out = append(out, residentResponse(r, now))
	}
	return out, nil
}

// POST /api/admin/residents
func (c *ResidentController) createResident(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ResidentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	r := model.Resident{
		ID:        uuid.NewString(),
		FirstName: request.FirstName,
		LastName:  request.LastName,
		BirthDate: request.BirthDate,
		HideAge:   request.HideAge,
		Active:    request.Active == nil || *request.Active,
	}
	if _, apiErr := c.update(ctx, user, "residents", func(d *model.AppData) error {
		d.Residents = append(d.Residents, r)
		sortResidents(d.Residents)
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return residentResponse(r, c.clock.Now()), nil
}

// PUT /api/admin/residents/:id
// Omitting active keeps the current state.
func (c *ResidentController) updateResident(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ResidentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, badRequest(err)
	}
	id := ctx.Param("id")
	var updated model.Resident
	if _, apiErr := c.update(ctx, user, "residents", func(d *model.AppData) error {
		i := findResident(d.Residents, id)
		if i < 0 {
			return db.ErrNotFound
		}
		r := &d.Residents[i]
		r.FirstName = request.FirstName
		r.LastName = request.LastName
		r.BirthDate = request.BirthDate
		r.HideAge = request.HideAge
		if request.Active != nil {
			r.Active = *request.Active
		}
		updated = *r
		sortResidents(d.Residents)
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return residentResponse(updated, c.clock.Now()), nil
}

// DELETE /api/admin/residents/:id
func (c *ResidentController) deleteResident(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")
	_, apiErr := c.update(ctx, user, "residents", func(d *model.AppData) error {
		i := findResident(d.Residents, id)
		if i < 0 {
			return db.ErrNotFound
		}
		d.Residents = slices.Delete(d.Residents, i, i+1)
		return nil
	})
	return nil, apiErr
}

// POST /api/admin/residents/:id/toggle
func (c *ResidentController) toggleResident(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")
	var updated model.Resident
	if _, apiErr := c.update(ctx, user, "residents", func(d *model.AppData) error {
		i := findResident(d.Residents, id)
		if i < 0 {
			return db.ErrNotFound
		}
		d.Residents[i].Active = !d.Residents[i].Active
		updated = d.Residents[i]
		return nil
	}); apiErr != nil {
		return nil, apiErr
	}
	return residentResponse(updated, c.clock.Now()), nil
}
