package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/everestpress/printshop-api/internal/audit"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/httpresp"
	"github.com/everestpress/printshop-api/internal/middleware"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/uploads"
)

// 10 MiB; rejects anything a portfolio photo has no business being.
const maxUploadBytes = 10 << 20

type GalleryHandler struct {
	db     *gorm.DB
	images *uploads.ImageStore
	audit  *audit.Dispatcher
}

func NewGalleryHandler(db *gorm.DB, images *uploads.ImageStore, auditDisp *audit.Dispatcher) *GalleryHandler {
	return &GalleryHandler{db: db, images: images, audit: auditDisp}
}

// --------- Requests ---------

type CreateGalleryItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"required,url"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
}

type UpdateGalleryItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty" binding:"omitempty,url"`
	Category    *string `json:"category,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

// --------- Handlers ---------

func (h *GalleryHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.GalleryItem{})

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		q = q.Where("featured = ?", true)
	}

	var items []models.GalleryItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not list gallery items.")
		return
	}

	httpresp.List(c, items)
}

func (h *GalleryHandler) Get(c *gin.Context) {
	var item models.GalleryItem
	err := h.db.WithContext(c.Request.Context()).First(&item, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.NotFound("gallery_item_not_found", "Gallery item not found."))
			return
		}
		httperr.Internal(c, "database_error", "Could not load gallery item.")
		return
	}

	httpresp.OK(c, item)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req CreateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	item := models.GalleryItem{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Featured:    req.Featured,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not create gallery item.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "gallery_item_created",
		Entity:   "gallery_item",
		EntityID: item.ID,
		Metadata: map[string]any{"title": item.Title},
	})

	httpresp.Created(c, item)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req UpdateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	var item models.GalleryItem
	if err := h.db.WithContext(ctx).First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.NotFound("gallery_item_not_found", "Gallery item not found."))
			return
		}
		httperr.Internal(c, "database_error", "Could not load gallery item.")
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}

	if err := h.db.WithContext(ctx).Model(&item).Select("*").Omit("id", "created_at").Updates(&item).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not update gallery item.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "gallery_item_updated",
		Entity:   "gallery_item",
		EntityID: item.ID,
	})

	httpresp.OK(c, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	res := h.db.WithContext(c.Request.Context()).Delete(&models.GalleryItem{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "database_error", "Could not delete gallery item.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, httperr.NotFound("gallery_item_not_found", "Gallery item not found."))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "gallery_item_deleted",
		Entity:   "gallery_item",
		EntityID: id,
	})

	httpresp.OK(c, gin.H{"message": "Gallery item deleted."})
}

// Upload receives a multipart image, converts it to webp and stores it in the
// bucket, returning the public URL for a follow-up Create/Update call.
func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.images == nil {
		httperr.Respond(c, httperr.Upstream("uploads_not_configured", nil))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Send the image in a multipart field named 'image'.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Image must be 10MB or smaller.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_error", "Could not read uploaded image.")
		return
	}
	defer f.Close()

	url, err := h.images.Store(c.Request.Context(), f, "gallery")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"image_url": url})
}
