package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mlipatov/shareit-backend/internal/identity"
	"github.com/mlipatov/shareit-backend/internal/image"
	"github.com/mlipatov/shareit-backend/internal/pkg/request"
	"github.com/mlipatov/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service image.Service
}

func NewHandler(service image.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file form field is required"})
		return
	}

	img, err := h.service.Upload(c.Request.Context(), params.ID, identity.UserID(c), header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

func (h *Handler) ListByItem(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	images, err := h.service.ListByItem(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		items = append(items, NewImageResponse(img))
	}

	c.JSON(http.StatusOK, items)
}

// Serve streams the original image content.
func (h *Handler) Serve(c *gin.Context) {
	id := c.Param("id")

	stream, img, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", img.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+img.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing sensible left to send.
		return
	}
}

// ServeThumbnail streams the thumbnail rendition (always JPEG).
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")

	stream, img, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+img.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id, identity.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
