// Package http contains the HTTP server components of the rentx service.
package http

import (
	"github.com/gofiber/fiber/v3"

	"rentx/internal/rentx/adapters/http/auth"
	"rentx/internal/rentx/adapters/http/middleware"
	"rentx/internal/rentx/adapters/http/products"
	"rentx/internal/rentx/adapters/http/user"
	"rentx/internal/rentx/ports/api"
	"rentx/internal/rentx/ports/services"
	"rentx/internal/rentx/ports/storage"
)

// SetupRouter wires the HTTP routes of the service.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	catalogUseCase api.CatalogUseCase,
	profileUseCase api.ProfileUseCase,
	wishlistUseCase api.WishlistUseCase,
	tokenService services.TokenService,
	imageStorage storage.ImageStorage,
) {
	authHandler := auth.NewHandler(authUseCase)
	productHandler := products.NewHandler(catalogUseCase, imageStorage)
	userHandler := user.NewHandler(profileUseCase, wishlistUseCase)

	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")
	requireAuth := middleware.NewAuthMiddleware(tokenService)

	// Auth routes (public).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)

	// Catalog routes. Reads are public, mutations require authentication.
	productRoutes := apiV1.Group("/products")
	productRoutes.Get("/", productHandler.Browse)
	productRoutes.Get("/user/:userId", productHandler.BySeller)
	productRoutes.Get("/:id", productHandler.Get)
	productRoutes.Post("/", productHandler.Create, requireAuth)
	productRoutes.Put("/:id", productHandler.Update, requireAuth)
	productRoutes.Patch("/:id/availability", productHandler.SetAvailability, requireAuth)
	productRoutes.Post("/images/presign", productHandler.PresignUpload, requireAuth)

	// User routes (protected).
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(requireAuth)
	userRoutes.Get("/profile", userHandler.GetProfile)
	userRoutes.Put("/profile", userHandler.UpdateProfile)
	userRoutes.Get("/wishlist", userHandler.Wishlist)
	userRoutes.Get("/wishlist/count", userHandler.WishlistCount)
	userRoutes.Post("/wishlist/:productId", userHandler.WishlistAdd)
	userRoutes.Get("/wishlist/:productId", userHandler.WishlistCheck)
	userRoutes.Delete("/wishlist/:productId", userHandler.WishlistRemove)

	// Fallback for unknown routes.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
