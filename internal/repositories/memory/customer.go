// Package memory provides an in-process customer store backed by go-memdb.
// It is used by tests and by local runs with DB_DRIVER=memory.
package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/sirupsen/logrus"

	"customers-api/internal/models"
	"customers-api/internal/repositories"
)

const (
	customersTable = "customers"
	idIndex        = "id"
	seqIndex       = "seq"
)

// record is the stored row. Seq is the insertion sequence and gives List
// its creation order.
type record struct {
	ID       string
	Seq      uint64
	Name     string
	Industry string
}

func (r *record) toModel() *models.Customer {
	return &models.Customer{ID: r.ID, Name: r.Name, Industry: r.Industry}
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			customersTable: {
				Name: customersTable,
				Indexes: map[string]*memdb.IndexSchema{
					idIndex: {
						Name:    idIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					seqIndex: {
						Name:    seqIndex,
						Unique:  true,
						Indexer: &memdb.UintFieldIndex{Field: "Seq"},
					},
				},
			},
		},
	}
}

// CustomerStore implements repositories.CustomerStore in memory
type CustomerStore struct {
	db     *memdb.MemDB
	logger *logrus.Logger

	// guarded by the memdb writer lock
	nextSeq uint64
}

// NewCustomerStore creates an empty in-memory customer store
func NewCustomerStore(logger *logrus.Logger) (*CustomerStore, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("failed to create memdb: %w", err)
	}

	return &CustomerStore{db: db, logger: logger}, nil
}

// List returns all customers in insertion order
func (s *CustomerStore) List(ctx context.Context) ([]*models.Customer, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(customersTable, seqIndex)
	if err != nil {
		return nil, repositories.NewRepositoryError("list", "customer", "", err)
	}

	customers := make([]*models.Customer, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		customers = append(customers, obj.(*record).toModel())
	}

	s.logger.WithField("count", len(customers)).Debug("Listed customers")
	return customers, nil
}

// Get retrieves a customer by ID
func (s *CustomerStore) Get(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := repositories.ParseID("get", "customer", id)
	if err != nil {
		return nil, err
	}

	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(customersTable, idIndex, oid.Hex())
	if err != nil {
		return nil, repositories.NewRepositoryError("get", "customer", id, err)
	}
	if raw == nil {
		return nil, repositories.NotFoundError("customer", id)
	}

	return raw.(*record).toModel(), nil
}

// Insert stores a new customer under a freshly assigned ID
func (s *CustomerStore) Insert(ctx context.Context, customer *models.Customer) error {
	customer.ID = repositories.NewID()

	txn := s.db.Txn(true)
	defer txn.Abort()

	s.nextSeq++
	row := &record{ID: customer.ID, Seq: s.nextSeq, Name: customer.Name, Industry: customer.Industry}
	if err := txn.Insert(customersTable, row); err != nil {
		return repositories.NewRepositoryError("insert", "customer", customer.ID, err)
	}
	txn.Commit()

	s.logger.WithField("customer_id", customer.ID).Debug("Inserted customer")
	return nil
}

// Replace overwrites the customer with the given ID
func (s *CustomerStore) Replace(ctx context.Context, id string, customer *models.Customer) (int64, error) {
	oid, err := repositories.ParseID("replace", "customer", id)
	if err != nil {
		return 0, err
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(customersTable, idIndex, oid.Hex())
	if err != nil {
		return 0, repositories.NewRepositoryError("replace", "customer", id, err)
	}
	if raw == nil {
		return 0, nil
	}

	existing := raw.(*record)
	if existing.toModel().SameContent(customer) {
		return 0, nil
	}

	replacement := &record{ID: existing.ID, Seq: existing.Seq, Name: customer.Name, Industry: customer.Industry}
	if err := txn.Insert(customersTable, replacement); err != nil {
		return 0, repositories.NewRepositoryError("replace", "customer", id, err)
	}
	txn.Commit()

	s.logger.WithField("customer_id", id).Debug("Replaced customer")
	return 1, nil
}

// Delete removes the customer with the given ID
func (s *CustomerStore) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := repositories.ParseID("delete", "customer", id)
	if err != nil {
		return 0, err
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(customersTable, idIndex, oid.Hex())
	if err != nil {
		return 0, repositories.NewRepositoryError("delete", "customer", id, err)
	}
	txn.Commit()

	s.logger.WithFields(logrus.Fields{
		"customer_id":   id,
		"deleted_count": n,
	}).Debug("Deleted customer")
	return int64(n), nil
}

// Ping always succeeds for the in-memory store
func (s *CustomerStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (s *CustomerStore) Close(ctx context.Context) error {
	return nil
}
