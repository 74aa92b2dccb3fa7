package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/httpresp"
	"github.com/everestpress/printshop-api/internal/identity"
	"github.com/everestpress/printshop-api/internal/middleware"
	"github.com/everestpress/printshop-api/internal/models"
)

type AuthHandler struct {
	identity *identity.Service
}

func NewAuthHandler(identitySvc *identity.Service) *AuthHandler {
	return &AuthHandler{identity: identitySvc}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, token, err := h.identity.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userPayload(user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, token, err := h.identity.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userPayload(user),
		"token": token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.identity.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	// Identical response whether or not the account exists.
	httpresp.OK(c, gin.H{
		"message": "If an account with that email exists, a reset link has been sent.",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.identity.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Password has been reset."})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	httpresp.OK(c, gin.H{"user": userPayload(caller)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), caller.ID, req.Name, req.Email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": userPayload(user)})
}
