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
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDisp}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Active      *bool   `json:"active,omitempty"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// serviceActiveFilter resolves the ?active query into an active clause.
// Guests and customers default to active services and cannot ask for the
// disabled ones; admins see everything unless they request a slice.
func serviceActiveFilter(isAdmin bool, param string) *bool {
	active, inactive := true, false
	switch param {
	case "true":
		return &active
	case "false":
		if isAdmin {
			return &inactive
		}
		return &active
	}
	if isAdmin {
		return nil
	}
	return &active
}

// List returns the catalog, filterable by ?active=true|false.
func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Service{})

	caller, ok := middleware.CurrentUser(c)
	isAdmin := ok && caller.Role == models.RoleAdmin
	if filter := serviceActiveFilter(isAdmin, c.Query("active")); filter != nil {
		q = q.Where("active = ?", *filter)
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	var svc models.Service
	err := h.db.WithContext(c.Request.Context()).First(&svc, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.NotFound("service_not_found", "Service not found."))
			return
		}
		httperr.Internal(c, "database_error", "Could not load service.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not create service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: svc.ID,
		Metadata: map[string]any{"name": svc.Name, "price": svc.Price},
	})

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	var svc models.Service
	if err := h.db.WithContext(ctx).First(&svc, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.NotFound("service_not_found", "Service not found."))
			return
		}
		httperr.Internal(c, "database_error", "Could not load service.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.ImageURL != nil {
		svc.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	// Select("*") so a deactivation (Active=false) survives gorm's zero-value
	// skipping on struct updates.
	if err := h.db.WithContext(ctx).Model(&svc).Select("*").Omit("id", "created_at").Updates(&svc).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not update service.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: svc.ID,
		Metadata: map[string]any{"active": svc.Active},
	})

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "database_error", "Could not delete service.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, httperr.NotFound("service_not_found", "Service not found."))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &caller.ID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: id,
	})

	httpresp.OK(c, gin.H{"message": "Service deleted."})
}
