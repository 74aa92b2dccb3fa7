package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/httpresp"
	"github.com/everestpress/printshop-api/internal/middleware"
	usecase "github.com/everestpress/printshop-api/internal/usecase/quote"
)

type QuoteHandler struct {
	create       *usecase.CreateQuote
	list         *usecase.ListQuotes
	get          *usecase.GetQuote
	updateStatus *usecase.UpdateQuoteStatus
}

func NewQuoteHandler(
	create *usecase.CreateQuote,
	list *usecase.ListQuotes,
	get *usecase.GetQuote,
	updateStatus *usecase.UpdateQuoteStatus,
) *QuoteHandler {
	return &QuoteHandler{create: create, list: list, get: get, updateStatus: updateStatus}
}

// --------- Requests ---------

type CreateQuoteRequest struct {
	CustomerName  string   `json:"customer_name" binding:"required"`
	CustomerEmail string   `json:"customer_email" binding:"required,email"`
	CustomerPhone string   `json:"customer_phone"`
	ServiceType   string   `json:"service_type" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Budget        *float64 `json:"budget,omitempty" binding:"omitempty,gt=0"`
}

type UpdateQuoteStatusRequest struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

// --------- Handlers ---------

func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := usecase.CreateQuoteInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		Budget:        req.Budget,
	}
	if caller, ok := middleware.CurrentUser(c); ok {
		in.UserID = &caller.ID
	}

	q, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, q)
}

func (h *QuoteHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	quotes, err := h.list.Execute(c.Request.Context(), caller, c.Query("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, quotes)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	q, err := h.get.Execute(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, q)
}

func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Status == nil && req.AdminNotes == nil {
		httperr.BadRequest(c, "empty_update", "Provide a status or admin_notes to update.")
		return
	}

	q, err := h.updateStatus.Execute(c.Request.Context(), caller, usecase.UpdateQuoteStatusInput{
		QuoteID:    c.Param("id"),
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, q)
}
