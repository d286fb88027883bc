package handlers

import (
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=50"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=customer restaurant"`
	Phone    string          `json:"phone" binding:"omitempty,phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "User registered successfully", gin.H{"token": token, "user": user})
}

// Login authenticates and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Login successful", gin.H{"token": token, "user": user})
}

// Me returns the current user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	resp.OK(c, "", gin.H{"user": middleware.CurrentUser(c)})
}
