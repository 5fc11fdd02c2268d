package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// Notify is called after every successful write to the display document.
type Notify func(ctx context.Context)

// writer funnels all document edits through one store transaction and
// notifies the display afterwards.
type writer struct {
	store  db.Store
	notify Notify
}

func (w writer) update(ctx *gin.Context, user *model.User, what string, fn db.UpdateFunc) (*model.AppData, *api.APIError) {
	d, err := w.store.UpdateAppData(ctx.Request.Context(), fn)
	if err != nil {
		return nil, storeError(err)
	}
	log.Info().Int("user_id", user.ID).Str("section", what).Msg("display data updated")
	if w.notify != nil {
		w.notify(ctx.Request.Context())
	}
	return d, nil
}

func (w writer) load(ctx *gin.Context) (*model.AppData, *api.APIError) {
	d, err := w.store.GetAppData(ctx.Request.Context())
	if err != nil {
		return nil, storeError(err)
	}
	return d, nil
}

// storeError maps store failures, including *api.APIError values returned
// from an UpdateFunc, onto HTTP errors.
func storeError(err error) *api.APIError {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, db.ErrNotFound):
		return &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, db.ErrInvalid):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		log.Error().Err(err).Msg("display data store failed")
		return &api.APIError{Code: http.StatusInternalServerError, Message: "could not access display data"}
	}
}

func badRequest(err error) *api.APIError {
	return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
}
