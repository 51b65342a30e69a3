package controllers

import (
	"net/http"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	Gallery *services.GalleryService
}

func NewGalleryController(gallery *services.GalleryService) *GalleryController {
	return &GalleryController{Gallery: gallery}
}

// GET /api/gallery and GET /api/admin/gallery
func (gc *GalleryController) List(c *gin.Context) {
	images, err := gc.Gallery.List(c.Request.Context())
	if err != nil {
		respondError(c, "gallery.list", err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// POST /api/admin/gallery
func (gc *GalleryController) Create(c *gin.Context) {
	// base64 inflates the 10MB image limit by a third
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxImageBytes*4/3+64<<10)
	var in services.GalleryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	img, err := gc.Gallery.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "admin.gallery.create", err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DELETE /api/admin/gallery/:id
func (gc *GalleryController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := gc.Gallery.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "admin.gallery.delete", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Image deleted"})
}
