// Package mongodb implements the customer store on a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"customers-api/internal/models"
	"customers-api/internal/repositories"
)

// customerDocument is the stored shape of a customer. Empty fields are not
// written, so a whole-document replace drops fields missing from the body.
type customerDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name,omitempty"`
	Industry string             `bson:"industry,omitempty"`
}

func toDocument(customer *models.Customer) customerDocument {
	return customerDocument{
		Name:     customer.Name,
		Industry: customer.Industry,
	}
}

func (d customerDocument) toModel() *models.Customer {
	return &models.Customer{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Industry: d.Industry,
	}
}

// CustomerStore implements repositories.CustomerStore on a mongo collection
type CustomerStore struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

// NewCustomerStore returns a store on the given collection
func NewCustomerStore(collection *mongo.Collection, logger *logrus.Logger) *CustomerStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &CustomerStore{
		collection: collection,
		logger:     logger,
	}
}

func (s *CustomerStore) logOperation(operation, id string, start time.Time, err error) {
	fields := logrus.Fields{
		"operation":  operation,
		"collection": s.collection.Name(),
		"duration":   time.Since(start),
	}
	if id != "" {
		fields["customer_id"] = id
	}

	if err != nil && !repositories.IsNotFound(err) {
		fields["error"] = err.Error()
		s.logger.WithFields(fields).Error("Mongo operation failed")
	} else {
		s.logger.WithFields(fields).Debug("Mongo operation executed")
	}
}

// List returns every customer in natural order
func (s *CustomerStore) List(ctx context.Context) (customers []*models.Customer, err error) {
	start := time.Now()
	defer func() { s.logOperation("list", "", start, err) }()

	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, repositories.NewRepositoryError("list", "customer", "", err)
	}

	var docs []customerDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, repositories.NewRepositoryError("list", "customer", "", err)
	}

	customers = make([]*models.Customer, 0, len(docs))
	for _, doc := range docs {
		customers = append(customers, doc.toModel())
	}
	return customers, nil
}

// Get returns the customer with the given ID
func (s *CustomerStore) Get(ctx context.Context, id string) (customer *models.Customer, err error) {
	start := time.Now()
	defer func() { s.logOperation("get", id, start, err) }()

	oid, err := repositories.ParseID("get", "customer", id)
	if err != nil {
		return nil, err
	}

	var doc customerDocument
	if err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.NotFoundError("customer", id)
		}
		return nil, repositories.NewRepositoryError("get", "customer", id, err)
	}

	return doc.toModel(), nil
}

// Insert stores the customer under a new ObjectID and sets customer.ID
func (s *CustomerStore) Insert(ctx context.Context, customer *models.Customer) (err error) {
	start := time.Now()
	doc := toDocument(customer)
	doc.ID = primitive.NewObjectID()
	defer func() { s.logOperation("insert", doc.ID.Hex(), start, err) }()

	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return repositories.NewRepositoryErrorWithMessage("insert", "customer", doc.ID.Hex(), insertFailureMessage(err), err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		customer.ID = oid.Hex()
	} else {
		customer.ID = doc.ID.Hex()
	}
	return nil
}

// Replace performs a whole-document replace by ID
func (s *CustomerStore) Replace(ctx context.Context, id string, customer *models.Customer) (modified int64, err error) {
	start := time.Now()
	defer func() { s.logOperation("replace", id, start, err) }()

	oid, err := repositories.ParseID("replace", "customer", id)
	if err != nil {
		return 0, err
	}

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": oid}, toDocument(customer))
	if err != nil {
		return 0, repositories.NewRepositoryError("replace", "customer", id, err)
	}
	return res.ModifiedCount, nil
}

// Delete removes the customer with the given ID
func (s *CustomerStore) Delete(ctx context.Context, id string) (deleted int64, err error) {
	start := time.Now()
	defer func() { s.logOperation("delete", id, start, err) }()

	oid, err := repositories.ParseID("delete", "customer", id)
	if err != nil {
		return 0, err
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, repositories.NewRepositoryError("delete", "customer", id, err)
	}
	return res.DeletedCount, nil
}

// Ping checks that the primary is reachable
func (s *CustomerStore) Ping(ctx context.Context) error {
	if err := s.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return repositories.ConnectionError(err)
	}
	return nil
}

// Close disconnects the underlying client
func (s *CustomerStore) Close(ctx context.Context) error {
	return s.collection.Database().Client().Disconnect(ctx)
}

// insertFailureMessage returns the driver's message for write errors so that
// callers can show it to the client.
func insertFailureMessage(err error) string {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && len(writeErr.WriteErrors) > 0 {
		return writeErr.WriteErrors[0].Message
	}
	return err.Error()
}
