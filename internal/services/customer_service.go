package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"customers-api/internal/models"
	"customers-api/internal/repositories"
)

// customerService implements the CustomerService interface
type customerService struct {
	store     repositories.CustomerStore
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(store repositories.CustomerStore, logger *logrus.Logger) CustomerService {
	if logger == nil {
		logger = logrus.New()
	}

	return &customerService{
		store:     store,
		validator: newValidator(),
		logger:    logger,
	}
}

// ListCustomers retrieves every customer
func (s *customerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	return customers, nil
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.Get(ctx, id)
}

// CreateCustomer creates a new customer
func (s *customerService) CreateCustomer(ctx context.Context, input *models.CustomerInput) (*models.Customer, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	customer := input.ToCustomer()
	if err := s.store.Insert(ctx, customer); err != nil {
		return nil, &CreateError{Err: err}
	}

	s.logger.WithField("customer_id", customer.ID).Debug("Customer created")
	return customer, nil
}

// ReplaceCustomer overwrites every field of an existing customer
func (s *customerService) ReplaceCustomer(ctx context.Context, id string, input *models.CustomerInput) (int64, error) {
	if err := s.validate(input); err != nil {
		return 0, err
	}

	return s.store.Replace(ctx, id, input.ToCustomer())
}

// DeleteCustomer removes a customer by ID
func (s *customerService) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	return s.store.Delete(ctx, id)
}

// Ping checks the store connection
func (s *customerService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *customerService) validate(input *models.CustomerInput) error {
	if input == nil {
		return &ValidationError{Fields: []string{"request body is required"}}
	}

	input.Normalize()
	if err := s.validator.Struct(input); err != nil {
		return validationError(err)
	}
	return nil
}
