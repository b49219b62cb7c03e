package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/server/middleware"
	"github.com/mamadbah2/dairy/internal/service/records"
	"github.com/mamadbah2/dairy/internal/validation"
)

const banner = "Dairy Farmers Management System API"

// Deps groups everything the router needs to serve the API.
type Deps struct {
	Auth           *handlers.AuthHandler
	Authenticator  middleware.Authenticator
	Admin          *handlers.AdminHandler
	Milk           *records.MilkService
	Feeds          *records.FeedService
	Breeds         *records.BreedService
	Health         *records.HealthService
	AllowedOrigins []string
}

func init() {
	binding.Validator = validation.GinValidator()
	binding.EnableDecoderDisallowUnknownFields = true
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Deps, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticate := middleware.Authenticate(deps.Authenticator, logger)
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", deps.Auth.Register)
	auth.POST("/login", deps.Auth.Login)
	auth.GET("/me", authenticate, deps.Auth.Me)

	handlers.NewRecordHandler(deps.Milk, logger).Mount(api.Group("/milk", authenticate))
	handlers.NewRecordHandler(deps.Feeds, logger).Mount(api.Group("/feeds", authenticate))
	handlers.NewRecordHandler(deps.Breeds, logger).Mount(api.Group("/breeds", authenticate))
	handlers.NewRecordHandler(deps.Health, logger).Mount(api.Group("/health", authenticate))

	admin := api.Group("/admin", authenticate, middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard", deps.Admin.Dashboard)
	admin.GET("/farmers", deps.Admin.Farmers)
	admin.PATCH("/farmers/:id/block", deps.Admin.ToggleBlock)
	admin.DELETE("/farmers/:id", deps.Admin.DeleteFarmer)
	admin.GET("/snapshots", deps.Admin.Snapshots)
	admin.POST("/snapshots", deps.Admin.TakeSnapshot)

	logger.Info("router initialized")

	return r
}
