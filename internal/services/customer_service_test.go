package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customers-api/internal/models"
	"customers-api/internal/repositories"
	"customers-api/internal/repositories/memory"
)

func newTestService(t *testing.T) CustomerService {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	store, err := memory.NewCustomerStore(logger)
	require.NoError(t, err)

	return NewCustomerService(store, logger)
}

// failingStore rejects every call with the same error
type failingStore struct {
	err error
}

func (f *failingStore) List(ctx context.Context) ([]*models.Customer, error) { return nil, f.err }
func (f *failingStore) Get(ctx context.Context, id string) (*models.Customer, error) {
	return nil, f.err
}
func (f *failingStore) Insert(ctx context.Context, customer *models.Customer) error { return f.err }
func (f *failingStore) Replace(ctx context.Context, id string, customer *models.Customer) (int64, error) {
	return 0, f.err
}
func (f *failingStore) Delete(ctx context.Context, id string) (int64, error) { return 0, f.err }
func (f *failingStore) Ping(ctx context.Context) error                       { return f.err }
func (f *failingStore) Close(ctx context.Context) error                      { return nil }

func TestCustomerService_CreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, &models.CustomerInput{Name: "  John ", Industry: "Music"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "John", created.Name, "name should be trimmed")

	fetched, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCustomerService_CreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   *models.CustomerInput
		message string
	}{
		{"nil body", nil, "request body is required"},
		{"missing name", &models.CustomerInput{Industry: "Music"}, "name is required"},
		{"blank name", &models.CustomerInput{Name: "   "}, "name is required"},
		{"long industry", &models.CustomerInput{Name: "John", Industry: strings.Repeat("x", 257)}, "industry must be at most 256 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCustomer(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	customers, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers, "rejected input must not be stored")
}

func TestCustomerService_CreateStoreFailure(t *testing.T) {
	storeErr := errors.New("E11000 duplicate key error")
	svc := NewCustomerService(&failingStore{err: storeErr}, nil)

	_, err := svc.CreateCustomer(context.Background(), &models.CustomerInput{Name: "John"})
	require.Error(t, err)
	assert.True(t, IsCreateFailed(err))
	assert.False(t, IsInvalidInput(err))
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, storeErr.Error(), err.Error())
}

func TestCustomerService_Replace(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, &models.CustomerInput{Name: "John", Industry: "Music"})
	require.NoError(t, err)

	modified, err := svc.ReplaceCustomer(ctx, created.ID, &models.CustomerInput{Name: "Johnny"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	fetched, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", fetched.Name)
	assert.Empty(t, fetched.Industry, "replace discards fields absent from the body")

	modified, err = svc.ReplaceCustomer(ctx, repositories.NewID(), &models.CustomerInput{Name: "Nobody"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), modified)

	_, err = svc.ReplaceCustomer(ctx, created.ID, &models.CustomerInput{})
	assert.True(t, IsInvalidInput(err))
}

func TestCustomerService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, &models.CustomerInput{Name: "Doe", Industry: "Networking"})
	require.NoError(t, err)

	deleted, err := svc.DeleteCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = svc.GetCustomer(ctx, created.ID)
	assert.True(t, repositories.IsNotFound(err))

	deleted, err = svc.DeleteCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestCustomerService_ListNeverNil(t *testing.T) {
	svc := newTestService(t)

	customers, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
}

func TestCustomerService_StoreFailuresPassThrough(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewCustomerService(&failingStore{err: storeErr}, nil)
	ctx := context.Background()

	_, err := svc.ListCustomers(ctx)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.GetCustomer(ctx, repositories.NewID())
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, repositories.IsNotFound(err))

	_, err = svc.DeleteCustomer(ctx, repositories.NewID())
	assert.ErrorIs(t, err, storeErr)

	assert.ErrorIs(t, svc.Ping(ctx), storeErr)
}
