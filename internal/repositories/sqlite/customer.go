package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"customers-api/internal/models"
	"customers-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Schema creates the customers table. Rows are listed in rowid order,
// which is insertion order.
const Schema = `
	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT ''
	)`

// CustomerStore implements repositories.CustomerStore for SQLite
type CustomerStore struct {
	*baseRepository
}

// NewCustomerStore creates the customers table if needed and returns a store on db
func NewCustomerStore(ctx context.Context, db *sql.DB, logger *logrus.Logger) (*CustomerStore, error) {
	store := &CustomerStore{
		baseRepository: newBaseRepository(db, "customers", logger),
	}

	if _, err := store.executeExec(ctx, "create_schema", "", Schema); err != nil {
		return nil, err
	}

	return store, nil
}

// List retrieves all customers in insertion order
func (r *CustomerStore) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.executeQuery(ctx, "list", `SELECT id, name, industry FROM customers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Industry); err != nil {
			return nil, repositories.NewRepositoryError("list", "customer", "", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "customer", "", err)
	}

	return customers, nil
}

// Get retrieves a customer by ID
func (r *CustomerStore) Get(ctx context.Context, id string) (*models.Customer, error) {
	oid, err := repositories.ParseID("get", "customer", id)
	if err != nil {
		return nil, err
	}

	row := r.executeQueryRow(ctx, "get_by_id", `SELECT id, name, industry FROM customers WHERE id = ?`, oid.Hex())

	customer := &models.Customer{}
	if err := row.Scan(&customer.ID, &customer.Name, &customer.Industry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("customer", id)
		}
		r.logger.WithFields(logrus.Fields{
			"operation":   "get_by_id",
			"table":       r.table,
			"customer_id": id,
			"error":       err.Error(),
		}).Error("Query failed")
		return nil, repositories.NewRepositoryError("get_by_id", "customer", id, err)
	}

	return customer, nil
}

// Insert creates a new customer under a freshly assigned ID
func (r *CustomerStore) Insert(ctx context.Context, customer *models.Customer) error {
	id := repositories.NewID()

	_, err := r.executeExec(ctx, "insert", id,
		`INSERT INTO customers (id, name, industry) VALUES (?, ?, ?)`,
		id, customer.Name, customer.Industry,
	)
	if err != nil {
		return err
	}

	customer.ID = id
	return nil
}

// Replace overwrites every column of the customer. Rows whose content is
// unchanged are not counted as modified.
func (r *CustomerStore) Replace(ctx context.Context, id string, customer *models.Customer) (int64, error) {
	oid, err := repositories.ParseID("replace", "customer", id)
	if err != nil {
		return 0, err
	}

	return r.executeExec(ctx, "replace", id,
		`UPDATE customers SET name = ?, industry = ?
		 WHERE id = ? AND (name <> ? OR industry <> ?)`,
		customer.Name, customer.Industry, oid.Hex(), customer.Name, customer.Industry,
	)
}

// Delete removes a customer by ID
func (r *CustomerStore) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := repositories.ParseID("delete", "customer", id)
	if err != nil {
		return 0, err
	}

	return r.executeExec(ctx, "delete", id, `DELETE FROM customers WHERE id = ?`, oid.Hex())
}

// Ping checks the database connection
func (r *CustomerStore) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return repositories.ConnectionError(err)
	}
	return nil
}

// Close closes the database handle
func (r *CustomerStore) Close(ctx context.Context) error {
	return r.db.Close()
}
