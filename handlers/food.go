package handlers

import (
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type FoodHandler struct {
	foods *services.FoodService
}

func NewFoodHandler(foods *services.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

type createFoodRequest struct {
	RestaurantID    string            `json:"restaurantId"`
	Name            string            `json:"name" binding:"required,min=2,max=100"`
	Description     string            `json:"description" binding:"required,min=10,max=500"`
	Price           *float64          `json:"price" binding:"required,gte=0"`
	Category        string            `json:"category" binding:"required"`
	ImageURL        string            `json:"imageUrl" binding:"omitempty,url"`
	Available       *bool             `json:"available"`
	PreparationTime int               `json:"preparationTime" binding:"omitempty,min=1"`
	Ingredients     []string          `json:"ingredients"`
	IsVegetarian    bool              `json:"isVegetarian"`
	IsVegan         bool              `json:"isVegan"`
	SpiceLevel      models.SpiceLevel `json:"spiceLevel" binding:"omitempty,oneof=mild medium hot extra-hot"`
}

type updateFoodRequest struct {
	Name            *string            `json:"name" binding:"omitempty,min=2,max=100"`
	Description     *string            `json:"description" binding:"omitempty,min=10,max=500"`
	Price           *float64           `json:"price" binding:"omitempty,gte=0"`
	Category        *string            `json:"category" binding:"omitempty,min=1"`
	ImageURL        *string            `json:"imageUrl" binding:"omitempty,url"`
	Available       *bool              `json:"available"`
	PreparationTime *int               `json:"preparationTime" binding:"omitempty,min=1"`
	Ingredients     []string           `json:"ingredients"`
	IsVegetarian    *bool              `json:"isVegetarian"`
	IsVegan         *bool              `json:"isVegan"`
	SpiceLevel      *models.SpiceLevel `json:"spiceLevel" binding:"omitempty,oneof=mild medium hot extra-hot"`
}

// List searches available foods (public)
func (h *FoodHandler) List(c *gin.Context) {
	page := pageQuery(c, 20)
	foods, total, err := h.foods.List(c.Request.Context(), services.FoodQuery{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		MinPrice:     floatQuery(c, "minPrice"),
		MaxPrice:     floatQuery(c, "maxPrice"),
		RestaurantID: c.Query("restaurant"),
	}, page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"foods": foods, "pagination": resp.NewPagination(page, total)})
}

func (h *FoodHandler) Categories(c *gin.Context) {
	categories, err := h.foods.Categories(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"categories": categories})
}

// Mine lists the caller's foods across their restaurants
func (h *FoodHandler) Mine(c *gin.Context) {
	page := pageQuery(c, 10)
	foods, total, err := h.foods.Mine(c.Request.Context(), middleware.CallerFrom(c), c.Query("status"), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"foods": foods, "pagination": resp.NewPagination(page, total)})
}

func (h *FoodHandler) Get(c *gin.Context) {
	food, err := h.foods.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"food": food})
}

// Create adds a food to a restaurant the caller owns
func (h *FoodHandler) Create(c *gin.Context) {
	var req createFoodRequest
	if !bindJSON(c, &req) {
		return
	}
	food, err := h.foods.Create(c.Request.Context(), middleware.CallerFrom(c), services.FoodInput{
		RestaurantID:    req.RestaurantID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Available:       req.Available,
		PreparationTime: req.PreparationTime,
		Ingredients:     req.Ingredients,
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
		SpiceLevel:      req.SpiceLevel,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Food item created successfully", gin.H{"food": food})
}

func (h *FoodHandler) Update(c *gin.Context) {
	var req updateFoodRequest
	if !bindJSON(c, &req) {
		return
	}
	food, err := h.foods.Update(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), services.FoodPatch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Available:       req.Available,
		PreparationTime: req.PreparationTime,
		Ingredients:     req.Ingredients,
		IsVegetarian:    req.IsVegetarian,
		IsVegan:         req.IsVegan,
		SpiceLevel:      req.SpiceLevel,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Food item updated successfully", gin.H{"food": food})
}

// Toggle flips availability
func (h *FoodHandler) Toggle(c *gin.Context) {
	food, err := h.foods.Toggle(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	state := "disabled"
	if food.Available {
		state = "enabled"
	}
	resp.OK(c, "Food item "+state+" successfully", gin.H{"food": food})
}

func (h *FoodHandler) Delete(c *gin.Context) {
	if err := h.foods.Delete(c.Request.Context(), middleware.CallerFrom(c), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Food item deleted successfully", nil)
}
