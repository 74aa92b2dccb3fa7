package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/httpresp"
	"github.com/everestpress/printshop-api/internal/middleware"
	usecase "github.com/everestpress/printshop-api/internal/usecase/order"
)

type OrderHandler struct {
	create        *usecase.CreateOrder
	list          *usecase.ListOrders
	get           *usecase.GetOrder
	updateStatus  *usecase.UpdateOrderStatus
	paymentIntent *usecase.CreatePaymentIntent
}

func NewOrderHandler(
	create *usecase.CreateOrder,
	list *usecase.ListOrders,
	get *usecase.GetOrder,
	updateStatus *usecase.UpdateOrderStatus,
	paymentIntent *usecase.CreatePaymentIntent,
) *OrderHandler {
	return &OrderHandler{
		create:        create,
		list:          list,
		get:           get,
		updateStatus:  updateStatus,
		paymentIntent: paymentIntent,
	}
}

// --------- Requests ---------

type CreateOrderRequest struct {
	ServiceID       string `json:"service_id" binding:"required,uuid"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	Address         string `json:"address"`
	SpecialRequests string `json:"special_requests"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

type CreatePaymentIntentRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}

// --------- Handlers ---------

// Create accepts orders from guests and signed-in customers alike; when a
// bearer token is present the order is tied to that account.
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := usecase.CreateOrderInput{
		ServiceID:       req.ServiceID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Address:         req.Address,
		SpecialRequests: req.SpecialRequests,
		Quantity:        req.Quantity,
	}
	if caller, ok := middleware.CurrentUser(c); ok {
		in.UserID = &caller.ID
	}

	o, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	orders, err := h.list.Execute(c.Request.Context(), caller, c.Query("status"), c.Query("payment_status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	o, err := h.get.Execute(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Status == nil && req.PaymentStatus == nil {
		httperr.BadRequest(c, "empty_update", "Provide a status or payment_status to update.")
		return
	}

	o, err := h.updateStatus.Execute(c.Request.Context(), caller, usecase.UpdateOrderStatusInput{
		OrderID:       c.Param("id"),
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) CreatePaymentIntent(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	intent, err := h.paymentIntent.Execute(c.Request.Context(), caller, req.OrderID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
	})
}
