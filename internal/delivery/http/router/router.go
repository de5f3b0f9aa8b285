// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"agenda/internal/delivery/http/middleware"
	"agenda/internal/delivery/http/router/handler"
	"agenda/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	SessionHandler   *handler.SessionHandler
	ContactHandler   *handler.ContactHandler
	AuxiliaryHandler *handler.AuxiliaryHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler      *handler.UserHandler
	sessionHandler   *handler.SessionHandler
	contactHandler   *handler.ContactHandler
	auxiliaryHandler *handler.AuxiliaryHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:      params.UserHandler,
		sessionHandler:   params.SessionHandler,
		contactHandler:   params.ContactHandler,
		auxiliaryHandler: params.AuxiliaryHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.sessionHandler.Login)
		authGroup.POST("/refresh", r.sessionHandler.Refresh)
	}

	// Session routes that require authentication
	sessionGroup := e.Group("/auth")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.POST("/logout", r.sessionHandler.Logout)
		sessionGroup.POST("/logout-all", r.sessionHandler.LogoutAll)
	}

	// User routes that require authentication
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/:id", r.userHandler.Get)
		userGroup.PATCH("/:id", r.userHandler.Update)
		userGroup.POST("/:id/set-password", r.userHandler.SetPassword)
		userGroup.DELETE("/:id", r.userHandler.Delete)
	}

	// User routes that additionally require the "staff" role
	staffGroup := e.Group("/users")
	staffGroup.Use(r.authMiddleware.Authenticate)
	staffGroup.Use(r.authMiddleware.RequireRole("staff"))
	{
		staffGroup.GET("", r.userHandler.List)
		staffGroup.POST("", r.userHandler.Create)
		staffGroup.POST("/:id/restore", r.userHandler.Restore)
	}

	// Contact routes, always scoped to the authenticated owner
	contactGroup := e.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.POST("", r.contactHandler.Create)
		contactGroup.GET("", r.contactHandler.List)
		contactGroup.GET("/:id", r.contactHandler.Get)
		contactGroup.PATCH("/:id", r.contactHandler.Update)
		contactGroup.DELETE("/:id", r.contactHandler.Delete)
		contactGroup.POST("/:id/restore", r.contactHandler.Restore)
		contactGroup.GET("/:id/qr", r.contactHandler.VCardQR)
	}

	// One uniform CRUD group per auxiliary collection
	collections := []string{
		usecase.CollectionPhones,
		usecase.CollectionEmails,
		usecase.CollectionAddresses,
		usecase.CollectionImportantDates,
		usecase.CollectionRelatedPersons,
		usecase.CollectionTags,
	}
	for _, collection := range collections {
		group := e.Group("/" + collection)
		group.Use(r.authMiddleware.Authenticate)
		{
			group.POST("", r.auxiliaryHandler.Create(collection))
			group.GET("", r.auxiliaryHandler.List(collection))
			group.GET("/:id", r.auxiliaryHandler.Get(collection))
			group.PATCH("/:id", r.auxiliaryHandler.Update(collection))
			group.DELETE("/:id", r.auxiliaryHandler.Delete(collection))
			group.POST("/:id/restore", r.auxiliaryHandler.Restore(collection))
		}
	}
}
