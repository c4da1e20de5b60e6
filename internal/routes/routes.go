package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/loadshare-sa/loadshare-backend/internal/config"
	"github.com/loadshare-sa/loadshare-backend/internal/handlers"
	"github.com/loadshare-sa/loadshare-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	businessHandler *handlers.BusinessHandler,
	adminHandler *handlers.AdminHandler,
	eskomHandler *handlers.EskomHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public directory
	api.Get("/businesses", businessHandler.Search)
	api.Get("/businesses/mine", middleware.JWTProtected(cfg), businessHandler.Mine)
	api.Get("/businesses/:id", businessHandler.Get)

	// Owner endpoints (JWT required)
	api.Post("/businesses/register", middleware.JWTProtected(cfg), businessHandler.Register)
	api.Patch("/businesses/:id/power", middleware.JWTProtected(cfg), businessHandler.UpdatePower)

	// Outage status (public; provider failures masked by fallback data)
	api.Get("/eskom/areas", eskomHandler.SearchAreas)
	api.Get("/eskom/status", eskomHandler.Status)
	api.Get("/eskom/area-businesses", eskomHandler.AreaBusinesses)

	// Profile image upload
	api.Post("/users/me/avatar", middleware.JWTProtected(cfg), uploadHandler.UploadAvatar)

	// Admin verification panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/businesses/verify", adminHandler.ListPendingBusinesses)
	admin.Patch("/businesses/verify", adminHandler.ReviewBusiness)
}
