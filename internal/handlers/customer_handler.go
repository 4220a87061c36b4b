package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"customers-api/internal/models"
	"customers-api/internal/repositories"
	"customers-api/internal/services"
)

// Fixed messages for failed requests
const (
	MsgNotFound       = "User not found"
	MsgGetFailed      = "Something went error"
	MsgInternalFailed = "Something went wrong"
)

// CustomerListResponse wraps the customer list
type CustomerListResponse struct {
	Customers []*models.Customer `json:"Customers"`
}

// CustomerResponse wraps a single customer
type CustomerResponse struct {
	Customer *models.Customer `json:"customer"`
}

// UpdatedCountResponse reports how many documents a replace modified
type UpdatedCountResponse struct {
	UpdatedCount int64 `json:"updatedCount"`
}

// DeletedCountResponse reports how many documents a delete removed
type DeletedCountResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService services.CustomerService
	errors          ErrorPolicy
	logger          *logrus.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService services.CustomerService, policy ErrorPolicy) *CustomerHandler {
	logger := policy.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &CustomerHandler{
		customerService: customerService,
		errors:          policy,
		logger:          logger,
	}
}

// @Summary List customers
// @Description Get every stored customer
// @Tags customers
// @Produce json
// @Success 200 {object} CustomerListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		h.errors.Abort(c, http.StatusInternalServerError, MsgInternalFailed, err)
		return
	}

	c.JSON(http.StatusOK, CustomerListResponse{Customers: customers})
}

// @Summary Get a customer
// @Description Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")

	h.logger.WithFields(logrus.Fields{
		"params": c.Params,
		"query":  c.Request.URL.Query(),
	}).Debug("Get customer")

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		if repositories.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: MsgNotFound})
			return
		}
		h.errors.Abort(c, http.StatusInternalServerError, MsgGetFailed, err)
		return
	}

	c.JSON(http.StatusOK, CustomerResponse{Customer: customer})
}

// @Summary Create a customer
// @Description Create a new customer; the store assigns its ID
// @Tags customers
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param customer body models.CustomerInput true "Customer data"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.WithField("body", input).Debug("Create customer")

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		h.logger.WithError(err).Warn("Customer creation rejected")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CustomerResponse{Customer: customer})
}

// @Summary Replace a customer
// @Description Overwrite every field of an existing customer
// @Tags customers
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body models.CustomerInput true "Customer data"
// @Success 200 {object} UpdatedCountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/customers/{id} [put]
func (h *CustomerHandler) ReplaceCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	modified, err := h.customerService.ReplaceCustomer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		if services.IsInvalidInput(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.errors.Abort(c, http.StatusInternalServerError, MsgInternalFailed, err)
		return
	}

	c.JSON(http.StatusOK, UpdatedCountResponse{UpdatedCount: modified})
}

// @Summary Delete a customer
// @Description Delete a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} DeletedCountResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	deleted, err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errors.Abort(c, http.StatusInternalServerError, MsgInternalFailed, err)
		return
	}

	c.JSON(http.StatusOK, DeletedCountResponse{DeletedCount: deleted})
}
