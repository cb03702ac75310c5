// Package router maps the HTTP surface onto handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/opergia/energia-backend/internal/auth"
	"github.com/opergia/energia-backend/internal/config"
	"github.com/opergia/energia-backend/internal/handler"
	"github.com/opergia/energia-backend/internal/middleware"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	People   *handler.PersonHandler
	Units    *handler.ConsumptionUnitHandler
	Plants   *handler.PowerPlantHandler
	Dists    *handler.DistributorHandler
	Operator *handler.OperatorHandler
	Invoices *handler.InvoiceHandler
}

// Register wires every route. The health probe stays outside /api and outside
// all middleware; everything else lives under /api with CORS and the rate
// limiter applied, and every entity route sits behind RequireSession.
func Register(e *echo.Echo, h Handlers, authSvc *auth.Service, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	e.GET("/health", handler.Health)

	api := e.Group("/api")
	api.Use(echomw.CORS())
	api.Use(middleware.NewTokenBucket(rlCfg, rdb))

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	sessions := middleware.RequireSession(authSvc)
	api.GET("/auth/me", h.Auth.Me, sessions)
	api.POST("/auth/logout", h.Auth.Logout, sessions)

	protected := api.Group("", sessions)

	protected.GET("/people", h.People.List)
	protected.GET("/people/:id", h.People.Get)
	protected.POST("/people", h.People.Create)
	protected.PUT("/people/:id", h.People.Update)
	protected.DELETE("/people/:id", h.People.Delete)

	protected.GET("/consumption-units", h.Units.List)
	protected.GET("/consumption-units/:id", h.Units.Get)
	protected.POST("/consumption-units", h.Units.Create)
	protected.PUT("/consumption-units/:id", h.Units.Update)
	protected.DELETE("/consumption-units/:id", h.Units.Delete)

	protected.GET("/power-plants", h.Plants.List)
	protected.GET("/power-plants/:id", h.Plants.Get)
	protected.POST("/power-plants", h.Plants.Create)
	protected.PUT("/power-plants/:id", h.Plants.Update)
	protected.DELETE("/power-plants/:id", h.Plants.Delete)
	protected.GET("/power-plants/:id/distribution", h.Plants.GetDistribution)
	protected.PUT("/power-plants/:id/distribution", h.Plants.PutDistribution)

	protected.GET("/distributors", h.Dists.List)
	protected.GET("/distributors/:id", h.Dists.Get)

	protected.GET("/operador-energetico/me", h.Operator.Get)
	protected.POST("/operador-energetico", h.Operator.Save)

	protected.GET("/invoices", h.Invoices.List)
	protected.GET("/invoices/:id", h.Invoices.Get)
	protected.POST("/invoices", h.Invoices.Create)
	protected.PUT("/invoices/:id", h.Invoices.Update)
	protected.PATCH("/invoices/:id/status", h.Invoices.UpdateStatus)
	protected.DELETE("/invoices/:id", h.Invoices.Delete)
}
