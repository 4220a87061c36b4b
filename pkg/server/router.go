package server

import (
	"github.com/gin-gonic/gin"

	"customers-api/internal/handlers"
	"customers-api/internal/middleware"
)

// NewRouter builds the gin engine serving every route of the container
func NewRouter(c *Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(c.Logger))
	router.Use(middleware.StructuredLogger(c.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(c.Config.MaxBodyBytes))

	handlers.SetupRoutes(router, &handlers.RouterConfig{
		CustomerService: c.CustomerService,
		ErrorPolicy: handlers.ErrorPolicy{
			ExposeDetails: c.Config.ExposeErrorDetails,
			Logger:        c.Logger,
		},
	})

	return router
}
