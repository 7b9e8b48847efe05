package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jaguar8340/crm-KS/internal/config"
	"github.com/jaguar8340/crm-KS/internal/handler"
	"github.com/jaguar8340/crm-KS/internal/middleware"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Customers  *handler.CustomerHandler
	Vehicles   *handler.VehicleHandler
	Employees  *handler.EmployeeHandler
	Tasks      *handler.TaskHandler
	Experience *handler.ExperienceHandler
	Upload     *handler.UploadHandler
}

// Register wires the complete route table. Everything lives under /api and
// sits behind the auth gate except the health endpoints and login; user
// creation and deletion additionally require the admin role.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, users middleware.UserSource, h Handlers) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")
	api.GET("/", handler.Root)
	api.POST("/auth/login", h.Auth.Login,
		middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	// Everything below requires a valid bearer token resolved to a live
	// user record.
	auth := api.Group("", middleware.Authenticate(cfg.SecretKey, users))
	auth.GET("/auth/me", h.Auth.Me)

	admin := middleware.RequireAdmin()
	auth.POST("/users", h.Users.Create, admin)
	auth.GET("/users", h.Users.List)
	auth.DELETE("/users/:id", h.Users.Delete, admin)

	auth.POST("/customers", h.Customers.Create)
	auth.GET("/customers", h.Customers.List)
	auth.POST("/customers/upload-csv", h.Customers.ImportCustomers)
	auth.GET("/customers/:id", h.Customers.Get)
	auth.PUT("/customers/:id", h.Customers.Update)
	auth.DELETE("/customers/:id", h.Customers.Delete)
	auth.POST("/customers/:id/remarks", h.Customers.AddRemark)
	auth.POST("/customers/:id/correspondence", h.Customers.AddCorrespondence)

	auth.POST("/vehicles", h.Vehicles.Create)
	auth.GET("/vehicles", h.Vehicles.List)
	auth.POST("/vehicles/upload-csv", h.Vehicles.ImportVehicles)
	auth.GET("/vehicles/:id", h.Vehicles.Get)
	auth.PUT("/vehicles/:id", h.Vehicles.Update)
	auth.DELETE("/vehicles/:id", h.Vehicles.Delete)

	auth.POST("/employees", h.Employees.Create)
	auth.GET("/employees", h.Employees.List)
	auth.GET("/employees/:id", h.Employees.Get)
	auth.PUT("/employees/:id", h.Employees.Update)
	auth.DELETE("/employees/:id", h.Employees.Delete)

	auth.POST("/tasks", h.Tasks.Create)
	auth.GET("/tasks", h.Tasks.List)
	auth.GET("/tasks/my", h.Tasks.My)
	auth.GET("/tasks/:id", h.Tasks.Get)
	auth.PUT("/tasks/:id", h.Tasks.Update)
	auth.PUT("/tasks/:id/status", h.Tasks.UpdateStatus)
	auth.DELETE("/tasks/:id", h.Tasks.Delete)

	auth.POST("/client-experience", h.Experience.Create)
	auth.GET("/client-experience", h.Experience.List)
	auth.GET("/client-experience/:id", h.Experience.Get)
	auth.PUT("/client-experience/:id", h.Experience.Update)
	auth.POST("/client-experience/:id/solution", h.Experience.AddSolution)
	auth.PUT("/client-experience/:id/status", h.Experience.UpdateStatus)
	auth.DELETE("/client-experience/:id", h.Experience.Delete)

	auth.POST("/upload", h.Upload.Upload)
}
