package repositories

import (
	"context"

	"customers-api/internal/models"
)

// Driver names accepted by the store factory
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// CustomerStore is the capability set the service needs from a customer store.
// Implementations must be safe for concurrent use.
type CustomerStore interface {
	// List returns every customer in store-native order. The slice is never nil.
	List(ctx context.Context) ([]*models.Customer, error)

	// Get returns the customer with the given ID, or an error matching ErrNotFound
	Get(ctx context.Context, id string) (*models.Customer, error)

	// Insert persists a new customer and sets its ID
	Insert(ctx context.Context, customer *models.Customer) error

	// Replace overwrites every field of the customer with the given ID and
	// returns the number of documents actually modified (0 or 1)
	Replace(ctx context.Context, id string, customer *models.Customer) (int64, error)

	// Delete removes the customer with the given ID and returns the number
	// of documents deleted (0 or 1)
	Delete(ctx context.Context, id string) (int64, error)

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close(ctx context.Context) error
}
