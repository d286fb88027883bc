package handlers

import (
	"food-ordering-api/middleware"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=2,max=50"`
	Phone     *string  `json:"phone" binding:"omitempty,phone"`
	Addresses []string `json:"addresses" binding:"omitempty,dive,max=300"`
}

// List returns active users (admin)
func (h *UserHandler) List(c *gin.Context) {
	page := pageQuery(c, 10)
	users, total, err := h.users.List(c.Request.Context(), middleware.CallerFrom(c), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"users": users, "pagination": resp.NewPagination(page, total)})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"user": user})
}

// Update edits a profile (self or admin)
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), services.UserUpdate{
		Name:      req.Name,
		Phone:     req.Phone,
		Addresses: req.Addresses,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Profile updated successfully", gin.H{"user": user})
}

// Delete deactivates a user (admin)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Deactivate(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "User deactivated successfully", nil)
}
