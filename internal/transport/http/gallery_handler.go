package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sandsky/travel-backend/internal/service"
	"github.com/sandsky/travel-backend/internal/util"
)

type GalleryHandler struct {
	gallery *service.GalleryService
}

func RegisterGallery(e *echo.Echo, auth *service.AuthService, gallery *service.GalleryService) {
	handler := &GalleryHandler{gallery: gallery}

	staff := e.Group("/api/v1/staff/destinations/:id/gallery", RequireAuth(auth))
	staff.POST("", handler.upload)
}

// upload handles POST /api/v1/staff/destinations/{id}/gallery
func (h *GalleryHandler) upload(c echo.Context) error {
	destinationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image file is required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	var caption *string
	if value := strings.TrimSpace(c.FormValue("caption")); value != "" {
		caption = &value
	}
	position, _ := strconv.Atoi(c.FormValue("position"))

	image, err := h.gallery.Upload(c.Request().Context(), destinationID, service.GalleryUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Caption:     caption,
		Position:    position,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrGalleryValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to store image"))
		}
	}
	return c.JSON(http.StatusCreated, util.Data("image", image))
}
