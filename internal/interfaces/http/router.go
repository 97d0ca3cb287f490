package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/issuetrack-api/internal/application/auth"
	"github.com/jhoicas/issuetrack-api/internal/application/issues"
	"github.com/jhoicas/issuetrack-api/internal/application/products"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *products.ProductUseCase
	IssueUC   *issues.IssueUseCase
}

// Router registers the API routes. Protected groups declare the scope
// they require; the wired policy currently grants every scope to every
// active identity.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/token", authHandler.Login)

	// Products (protected)
	productHandler := NewProductHandler(deps.ProductUC)
	productGroup := api.Group("/products", AuthMiddleware(deps.AuthUC, "products"))
	productGroup.Post("/", productHandler.Create)
	productGroup.Get("/", productHandler.List)

	// Issues (protected)
	issueHandler := NewIssueHandler(deps.IssueUC)
	issueGroup := api.Group("/issues", AuthMiddleware(deps.AuthUC, "issues"))
	issueGroup.Post("/", issueHandler.Create)
	issueGroup.Get("/", issueHandler.List)
	issueGroup.Get("/:id", issueHandler.GetByID)
	issueGroup.Patch("/:id", issueHandler.Patch)
}
