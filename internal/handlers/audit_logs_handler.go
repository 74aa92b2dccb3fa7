package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/httpresp"
	"github.com/everestpress/printshop-api/internal/models"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the newest audit entries first, filterable by entity and
// action. Paged by limit/offset; the table only ever grows.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	limit := defaultAuditPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httperr.BadRequest(c, "invalid_limit", "limit must be a positive integer.")
			return
		}
		if n > maxAuditPageSize {
			n = maxAuditPageSize
		}
		limit = n
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_offset", "offset must be a non-negative integer.")
			return
		}
		offset = n
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs)
}
