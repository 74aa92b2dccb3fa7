package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/httpresp"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
)

type ContactHandler struct {
	db     *gorm.DB
	notify *notify.Dispatcher
}

func NewContactHandler(db *gorm.DB, notifyDisp *notify.Dispatcher) *ContactHandler {
	return &ContactHandler{db: db, notify: notifyDisp}
}

// --------- Requests ---------

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// --------- Handlers ---------

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not save your message.")
		return
	}

	h.notify.EnqueueAdmin(notify.ContactAdminAlert(&msg))
	h.notify.Enqueue(notify.ContactAutoReply(&msg))

	httpresp.Created(c, gin.H{
		"id":      msg.ID,
		"message": "Thanks for reaching out. We'll get back to you soon.",
	})
}

func (h *ContactHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.ContactMessage{})

	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var messages []models.ContactMessage
	if err := q.Order("created_at DESC").Find(&messages).Error; err != nil {
		httperr.Internal(c, "database_error", "Could not list contact messages.")
		return
	}

	httpresp.List(c, messages)
}

func (h *ContactHandler) Get(c *gin.Context) {
	var msg models.ContactMessage
	err := h.db.WithContext(c.Request.Context()).First(&msg, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.NotFound("contact_message_not_found", "Contact message not found."))
			return
		}
		httperr.Internal(c, "database_error", "Could not load contact message.")
		return
	}

	httpresp.OK(c, msg)
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.ContactMessage{}).
		Where("id = ?", c.Param("id")).
		Update("read", true)
	if res.Error != nil {
		httperr.Internal(c, "database_error", "Could not update contact message.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, httperr.NotFound("contact_message_not_found", "Contact message not found."))
		return
	}

	httpresp.OK(c, gin.H{"message": "Marked as read."})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).Delete(&models.ContactMessage{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		httperr.Internal(c, "database_error", "Could not delete contact message.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, httperr.NotFound("contact_message_not_found", "Contact message not found."))
		return
	}

	httpresp.OK(c, gin.H{"message": "Contact message deleted."})
}
