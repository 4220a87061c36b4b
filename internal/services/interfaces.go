package services

import (
	"context"

	"customers-api/internal/models"
)

// CustomerService defines the customer operations exposed over HTTP
type CustomerService interface {
	// ListCustomers returns every stored customer; the slice is never nil
	ListCustomers(ctx context.Context) ([]*models.Customer, error)

	// GetCustomer returns one customer. A missing record yields an error
	// matching repositories.ErrNotFound.
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)

	// CreateCustomer validates the input and stores a new customer
	CreateCustomer(ctx context.Context, input *models.CustomerInput) (*models.Customer, error)

	// ReplaceCustomer validates the input and overwrites the whole record,
	// returning the modified count
	ReplaceCustomer(ctx context.Context, id string, input *models.CustomerInput) (int64, error)

	// DeleteCustomer removes a customer and returns the deleted count
	DeleteCustomer(ctx context.Context, id string) (int64, error)

	// Ping checks the backing store
	Ping(ctx context.Context) error
}
