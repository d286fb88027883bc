package handlers

import (
	"net/http"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "Food Ordering API"
	version     = "1.0.0"
)

type PublicHandler struct {
	strictStatus bool
}

func NewPublicHandler(strictStatus bool) *PublicHandler {
	return &PublicHandler{strictStatus: strictStatus}
}

// Health reports liveness
func (h *PublicHandler) Health(c *gin.Context) {
	resp.OK(c, "Server is running", gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Welcome points clients at the docs
func (h *PublicHandler) Welcome(c *gin.Context) {
	resp.OK(c, "Welcome to the "+serviceName, gin.H{
		"docs":   "/api/state-machine",
		"health": "/health",
		"roles":  []models.UserRole{models.RoleCustomer, models.RoleRestaurant, models.RoleAdmin},
	})
}

// StateMachine returns the order lifecycle for documentation
func (h *PublicHandler) StateMachine(c *gin.Context) {
	mode := "permissive"
	rule := "Any status may be set by the restaurant owner or an admin"
	if h.strictStatus {
		mode = "strict"
		rule = "Only the next step or cancelled may be set by the restaurant owner or an admin"
	}
	resp.OK(c, "", gin.H{
		"mode":        mode,
		"rule":        rule,
		"statuses":    statemachine.AllStatuses(),
		"transitions": statemachine.GetAllTransitions(),
		"terminal":    statemachine.TerminalStatuses(),
		"sideEffects": gin.H{string(models.StatusDelivered): "actualDeliveryTime is set"},
	})
}

func (h *PublicHandler) NotFound(c *gin.Context) {
	resp.Fail(c, http.StatusNotFound, "Route "+c.Request.Method+" "+c.Request.URL.Path+" not found")
}
