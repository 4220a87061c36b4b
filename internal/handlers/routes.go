package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "customers-api/docs"
	"customers-api/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	CustomerService services.CustomerService
	ErrorPolicy     ErrorPolicy
}

// SetupRoutes configures all routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	customerHandler := NewCustomerHandler(config.CustomerService, config.ErrorPolicy)
	systemHandler := NewSystemHandler(config.CustomerService, config.ErrorPolicy, Version)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", systemHandler.Welcome)
	router.POST("/", systemHandler.PostRoot)
	router.GET("/health", systemHandler.Health)

	customers := router.Group("/api/customers")
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.GET("/:id/", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.ReplaceCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}
}
