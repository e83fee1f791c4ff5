package handlers

import (
	"io"
	"net/http"
	"path/filepath"

	"guestbook_backend/internal/services"
	"guestbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	*BaseHandler
	galleryService services.GalleryService
}

func NewGalleryHandler(base *BaseHandler, galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		BaseHandler:    base,
		galleryService: galleryService,
	}
}

func (h *GalleryHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/upload-image", h.Upload)
	r.GET("/images", h.List)
	r.DELETE("/images/:filename", h.Delete)
}

// Upload handles the multipart gallery upload. Only the part named "file"
// is the candidate; any other parts of the submission are ignored.
func (h *GalleryHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceErrorString(c, apperrors.ErrMissingImageField)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceErrorString(c, apperrors.NewBadRequestError("invalid multipart payload: "+err.Error()))
		return
	}
	defer src.Close()

	// Buffer the whole part; the size ceiling is checked on the complete
	// payload, not by streaming truncation.
	data, err := io.ReadAll(src)
	if err != nil {
		h.HandleServiceErrorString(c, apperrors.NewBadRequestError("failed to read upload: "+err.Error()))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	if _, err := h.galleryService.Upload(c.Request.Context(), h.GetDB(c), contentType, data); err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	c.String(http.StatusOK, "✅ Imagen subida correctamente")
}

// List returns every gallery record, newest first.
func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.galleryService.List(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

// Delete removes the row and the stored file.
func (h *GalleryHandler) Delete(c *gin.Context) {
	filename := c.Param("filename")

	// The filename is the only key into the flat uploads directory; anything
	// that resolves outside of it is rejected.
	if filename == "" || filename != filepath.Base(filename) {
		h.HandleServiceErrorString(c, apperrors.NewBadRequestError("invalid filename"))
		return
	}

	if err := h.galleryService.Delete(c.Request.Context(), h.GetDB(c), filename); err != nil {
		h.HandleServiceErrorString(c, err)
		return
	}

	c.String(http.StatusOK, "✅ Imagen eliminada")
}
