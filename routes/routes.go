package routes

import (
	"log/slog"

	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/policy"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	Store        *repository.Store
	Tokens       *middleware.JWT
	Logger       *slog.Logger
	StrictStatus bool
	ClientURL    string
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	authSvc := services.NewAuthService(d.Store.Users, d.Tokens, log)
	h := Handlers{
		Auth:        handlers.NewAuthHandler(authSvc),
		Users:       handlers.NewUserHandler(services.NewUserService(d.Store.Users, log)),
		Restaurants: handlers.NewRestaurantHandler(services.NewRestaurantService(d.Store, log)),
		Foods:       handlers.NewFoodHandler(services.NewFoodService(d.Store, log)),
		Orders:      handlers.NewOrderHandler(services.NewOrderService(d.Store, d.StrictStatus, log)),
		Public:      handlers.NewPublicHandler(d.StrictStatus),
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		gin.Recovery(),
		middleware.CORS(d.ClientURL),
	)
	SetupRoutes(r, h, middleware.AuthRequired(d.Tokens, authSvc))
	return r, nil
}

type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UserHandler
	Restaurants *handlers.RestaurantHandler
	Foods       *handlers.FoodHandler
	Orders      *handlers.OrderHandler
	Public      *handlers.PublicHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	owners := middleware.RoleRequired(policy.Owners...)
	admins := middleware.RoleRequired(models.RoleAdmin)

	r.GET("/", h.Public.Welcome)
	r.GET("/health", h.Public.Health)
	r.NoRoute(h.Public.NotFound)

	api := r.Group("/api")
	{
		api.GET("/health", h.Public.Health)
		api.GET("/state-machine", h.Public.StateMachine)
	}

	// ── Auth ───────────────────────────────────────────────────────
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", auth, h.Auth.Me)
	}

	// ── Users ──────────────────────────────────────────────────────
	users := api.Group("/users", auth)
	{
		users.GET("", admins, h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", admins, h.Users.Delete)
	}

	// ── Restaurants ────────────────────────────────────────────────
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("", h.Restaurants.List)
		restaurants.GET("/my-restaurants", auth, owners, h.Restaurants.Mine)
		restaurants.GET("/:id", h.Restaurants.Get)
		restaurants.POST("", auth, owners, h.Restaurants.Create)
		restaurants.PUT("/:id", auth, h.Restaurants.Update)
		restaurants.DELETE("/:id", auth, h.Restaurants.Delete)
	}

	// ── Foods ──────────────────────────────────────────────────────
	foods := api.Group("/foods")
	{
		foods.GET("", h.Foods.List)
		foods.GET("/categories", h.Foods.Categories)
		foods.GET("/my-foods", auth, owners, h.Foods.Mine)
		foods.GET("/:id", h.Foods.Get)
		foods.POST("", auth, owners, h.Foods.Create)
		foods.PUT("/:id", auth, owners, h.Foods.Update)
		foods.PUT("/:id/toggle", auth, owners, h.Foods.Toggle)
		foods.DELETE("/:id", auth, owners, h.Foods.Delete)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := api.Group("/order", auth)
	{
		orders.POST("", h.Orders.PlaceOrder)
		orders.GET("/my", h.Orders.GetMyOrders)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.PUT("/:id/status", owners, h.Orders.UpdateStatus)
	}
}
