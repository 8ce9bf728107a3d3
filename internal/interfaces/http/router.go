// Package http wires the Fiber routes to the application layer.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizza-service/internal/application/auth"
	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/domain/entity"
	"github.com/jhoicas/pizza-service/internal/metrics"
)

// RouterDeps everything the route table needs.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	FranchiseUC *usecase.FranchiseUseCase
	OrderUC     *usecase.OrderUseCase
	Metrics     *metrics.Registry
}

// Router registers all API routes on the app.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.AuthUC)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/", authHandler.Register)
	authGroup.Put("/", authHandler.Login)
	authGroup.Delete("/", authn, authHandler.Logout)
	authGroup.Put("/:userId", authn, authHandler.Update)

	franchiseHandler := NewFranchiseHandler(deps.FranchiseUC)
	api.Get("/franchise", franchiseHandler.List)
	api.Get("/franchise/:userId", authn, franchiseHandler.ListForUser)
	api.Post("/franchise", authn,
		RequireRole(entity.RoleAdmin, "unable to create a franchise"),
		franchiseHandler.Create)
	api.Delete("/franchise/:franchiseId", authn,
		RequireRole(entity.RoleAdmin, "unable to delete a franchise"),
		franchiseHandler.Delete)
	api.Post("/franchise/:franchiseId/store", authn, franchiseHandler.CreateStore)
	api.Delete("/franchise/:franchiseId/store/:storeId", authn, franchiseHandler.DeleteStore)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.Metrics)
	api.Get("/order/menu", orderHandler.Menu)
	api.Put("/order/menu", authn,
		RequireRole(entity.RoleAdmin, "unable to add menu item"),
		orderHandler.AddMenuItem)
	api.Post("/order", authn, orderHandler.Create)
	api.Get("/order", authn, orderHandler.List)
	api.Get("/order/:orderId/receipt", authn, orderHandler.Receipt)
}
