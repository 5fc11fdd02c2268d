package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api"
	"github.com/Nixie-Tech-LLC/carescreen/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/storage"
)

const maxUploadBytes = 20 << 20

type UploadController struct {
	storage storage.Storage
}

// UploadModule mounts the image upload endpoint used by the meal, lunch,
// urgent and slideshow editors.
func UploadModule(files storage.Storage) api.Module {
	ctl := &UploadController{storage: files}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/uploads", ctl.uploadImage)
	})
}

// POST /api/admin/uploads (multipart, field "file")
func (c *UploadController) uploadImage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing file"}
	}

	url, err := c.storage.SaveFile(fileHeader, fileHeader.Filename)
	if errors.Is(err, storage.ErrUnsupportedType) {
		return nil, &api.APIError{Code: http.StatusUnsupportedMediaType, Message: err.Error()}
	}
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to store upload")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store file"}
	}

	log.Info().Int("user_id", user.ID).Str("url", url).Msg("image uploaded")
	return packets.UploadResponse{URL: url}, nil
}
