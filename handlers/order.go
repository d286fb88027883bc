package handlers

import (
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

const maxPageLimit = 100

func pageQuery(c *gin.Context, defaultLimit int) repository.Page {
	p := repository.Page{
		Number: intQuery(c, "page", 0),
		Limit:  intQuery(c, "limit", 0),
	}.Normalize(defaultLimit)
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	return p
}

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	FoodID              string `json:"foodId" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"specialInstructions" binding:"max=200"`
}

type placeOrderRequest struct {
	Items           []orderItemRequest     `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod" binding:"required,oneof=cash card upi wallet"`
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
	Notes           string                 `json:"notes" binding:"max=300"`
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,orderstatus"`
}

// PlaceOrder validates the cart and creates a pending order
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, services.OrderLine{
			FoodID:              it.FoodID,
			Quantity:            it.Quantity,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), middleware.CallerFrom(c), services.PlaceOrderInput{
		Items:           lines,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Order created successfully", gin.H{"order": order})
}

// GetMyOrders returns the caller's orders, newest first
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	page := pageQuery(c, 10)
	orders, total, err := h.orders.ListMyOrders(c.Request.Context(), middleware.CallerFrom(c),
		models.OrderStatus(c.Query("status")), page)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"orders": orders, "pagination": resp.NewPagination(page, total)})
}

// GetOrder returns a single order to its owner or an admin
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "", gin.H{"order": order})
}

// UpdateStatus moves an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Order status updated successfully", gin.H{"order": order})
}
