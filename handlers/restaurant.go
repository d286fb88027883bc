package handlers

import (
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurants *services.RestaurantService
}

func NewRestaurantHandler(restaurants *services.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

type createRestaurantRequest struct {
	Name         string               `json:"name" binding:"required,min=2,max=100"`
	Address      models.Address       `json:"address"`
	Cuisine      string               `json:"cuisine" binding:"required"`
	Description  string               `json:"description" binding:"max=500"`
	OpeningHours *models.OpeningHours `json:"openingHours"`
	ImageURL     string               `json:"imageUrl" binding:"omitempty,url"`
	DeliveryFee  float64              `json:"deliveryFee" binding:"gte=0"`
	MinimumOrder float64              `json:"minimumOrder" binding:"gte=0"`
}

type updateRestaurantRequest struct {
	Name         *string              `json:"name" binding:"omitempty,min=2,max=100"`
	Address      *models.Address      `json:"address"`
	Cuisine      *string              `json:"cuisine" binding:"omitempty,min=1"`
	Description  *string              `json:"description" binding:"omitempty,max=500"`
	OpeningHours *models.OpeningHours `json:"openingHours"`
	ImageURL     *string              `json:"imageUrl" binding:"omitempty,url"`
	DeliveryFee  *float64             `json:"deliveryFee" binding:"omitempty,gte=0"`
	MinimumOrder *float64             `json:"minimumOrder" binding:"omitempty,gte=0"`
	AvgRating    *float64             `json:"avgRating" binding:"omitempty,gte=0,lte=5"`
	TotalReviews *int                 `json:"totalReviews" binding:"omitempty,gte=0"`
}

// List returns active restaurants (public)
func (h *RestaurantHandler) List(c *gin.Context) {
	page := pageQuery(c, 10)
	filter := repository.RestaurantFilter{
		Cuisine: c.Query("cuisine"),
		Search:  c.Query("search"),
		City:    c.Query("city"),
	}
	restaurants, total, err := h.restaurants.List(c.Request.Context(), filter, page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"restaurants": restaurants, "pagination": resp.NewPagination(page, total)})
}

// Get returns a restaurant with its available menu (public)
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, menu, err := h.restaurants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"restaurant": restaurant, "menuItems": menu})
}

// Mine returns the caller's restaurants
func (h *RestaurantHandler) Mine(c *gin.Context) {
	restaurants, err := h.restaurants.Mine(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"restaurants": restaurants})
}

// Create registers a restaurant owned by the caller
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req createRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	restaurant, err := h.restaurants.Create(c.Request.Context(), middleware.CallerFrom(c), services.RestaurantInput{
		Name:         req.Name,
		Address:      req.Address,
		Cuisine:      req.Cuisine,
		Description:  req.Description,
		OpeningHours: req.OpeningHours,
		ImageURL:     req.ImageURL,
		DeliveryFee:  req.DeliveryFee,
		MinimumOrder: req.MinimumOrder,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Restaurant created successfully", gin.H{"restaurant": restaurant})
}

// Update edits a restaurant (owner or admin)
func (h *RestaurantHandler) Update(c *gin.Context) {
	var req updateRestaurantRequest
	if !bindJSON(c, &req) {
		return
	}
	restaurant, err := h.restaurants.Update(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), services.RestaurantPatch{
		Name:         req.Name,
		Address:      req.Address,
		Cuisine:      req.Cuisine,
		Description:  req.Description,
		OpeningHours: req.OpeningHours,
		ImageURL:     req.ImageURL,
		DeliveryFee:  req.DeliveryFee,
		MinimumOrder: req.MinimumOrder,
		AvgRating:    req.AvgRating,
		TotalReviews: req.TotalReviews,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Restaurant updated successfully", gin.H{"restaurant": restaurant})
}

// Delete soft-deletes a restaurant (owner or admin)
func (h *RestaurantHandler) Delete(c *gin.Context) {
	if err := h.restaurants.Delete(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Restaurant deleted successfully", nil)
}
