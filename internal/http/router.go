package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/config"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/http/handlers"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/http/middleware"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/services"
)

type Dependencies struct {
	Config         *config.Config
	Users          services.UserStore
	AuthService    *services.AuthService
	AccountService *services.AccountService
	Logger         *slog.Logger
	RateLimiter    *middleware.RateLimiter
}

// NewRouter declares which routes are public and which sit behind the
// authorization gate through explicit groups; protection never depends
// on registration order.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Config.Env == "prod")
	accountHandler := handlers.NewAccountHandler(deps.AccountService)
	meHandler := handlers.NewMeHandler(deps.Users)

	gate := middleware.JWTAuth(middleware.AuthConfig{Secret: deps.Config.JWTSecret})

	router.GET("/healthz", handlers.Health)

	api := router.Group("/api")

	// Public: credential entry points only, rate limited.
	auth := api.Group("/auth")
	auth.Use(deps.RateLimiter.Middleware())
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/signout", authHandler.SignOut)
		auth.POST("/verify-identity", authHandler.VerifyIdentity)
		auth.PUT("/reset-password", authHandler.ResetPassword)
	}

	// Account administration, behind the gate.
	accounts := api.Group("/auth")
	accounts.Use(gate)
	{
		accounts.POST("/create", accountHandler.Create)
		accounts.GET("/accounts", accountHandler.List)
		accounts.GET("/form-data", accountHandler.FormData)
		accounts.PUT("/update/:id", accountHandler.Update)
		accounts.DELETE("/delete/:id", accountHandler.Delete)
		accounts.POST("/admin-reset-password", accountHandler.AdminResetPassword)
		accounts.PUT("/change-password", authHandler.ChangePassword)
	}

	users := api.Group("/users")
	users.Use(gate)
	{
		users.GET("/authme", meHandler.AuthMe)
	}

	return router
}
