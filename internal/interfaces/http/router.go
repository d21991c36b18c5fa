package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	SaleUC    *sales.SaleUseCase
	ProductUC *usecase.ProductUseCase
	ClientUC  *usecase.ClientUseCase
	JWTSecret string
}

// Router registra el guard y las rutas de la API. Las rutas públicas se
// declaran en el guard; todo lo demás exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	guard := NewAuthGuard(deps.JWTSecret).
		Public(fiber.MethodPost, "/auth").
		Public(fiber.MethodPost, "/auth/login").
		Public(fiber.MethodPost, "/auth/forgot-password").
		Public(fiber.MethodPost, "/auth/reset-password").
		Public(fiber.MethodGet, "/health").
		PublicPrefix("/docs")
	app.Use(guard.Middleware())

	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", authHandler.Profile)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	saleHandler := NewSaleHandler(deps.SaleUC)
	saleGroup := app.Group("/sales")
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/:id", saleHandler.GetByID)
	saleGroup.Patch("/:id", saleHandler.Update)
	saleGroup.Delete("/:id", saleHandler.Remove)

	productHandler := NewProductHandler(deps.ProductUC)
	productGroup := app.Group("/products")
	productGroup.Post("/", productHandler.Create)
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/:id", productHandler.GetByID)
	productGroup.Patch("/:id", productHandler.Update)
	productGroup.Delete("/:id", productHandler.Delete)

	clientHandler := NewClientHandler(deps.ClientUC)
	clientGroup := app.Group("/clients")
	clientGroup.Post("/", clientHandler.Create)
	clientGroup.Get("/", clientHandler.List)
	clientGroup.Get("/:id", clientHandler.GetByID)
	clientGroup.Patch("/:id", clientHandler.Update)
	clientGroup.Delete("/:id", clientHandler.Delete)
}
