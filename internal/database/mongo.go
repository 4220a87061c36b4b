package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabaseName is used when neither the config nor the URI names a database
const DefaultDatabaseName = "test"

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI         string
	Database    string
	Collection  string
	Timeout     time.Duration
	MinPoolSize uint64
	MaxPoolSize uint64
}

// MongoConnection is an established client plus the collection customers live in
type MongoConnection struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Collection *mongo.Collection
}

// DatabaseName resolves the database to use: the configured name, then the
// path segment of the URI, then DefaultDatabaseName.
func (c MongoConfig) DatabaseName() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}

	cs, err := connstring.ParseAndValidate(c.URI)
	if err != nil {
		return "", errors.Wrap(err, "invalid mongo connection string")
	}
	if cs.Database != "" {
		return cs.Database, nil
	}

	return DefaultDatabaseName, nil
}

// ClientOptions builds the driver options for c
func (c MongoConfig) ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(c.URI)

	if c.Timeout > 0 {
		opts.SetConnectTimeout(c.Timeout)
		opts.SetServerSelectionTimeout(c.Timeout)
		opts.SetSocketTimeout(c.Timeout)
	}
	if c.MinPoolSize > 0 {
		opts.SetMinPoolSize(c.MinPoolSize)
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}

	return opts
}

// ConnectMongo connects to MongoDB and pings the primary before returning
func ConnectMongo(ctx context.Context, cfg MongoConfig, logger *logrus.Logger) (*MongoConnection, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo connection string is empty")
	}

	dbName, err := cfg.DatabaseName()
	if err != nil {
		return nil, err
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "customers"
	}

	client, err := mongo.Connect(ctx, cfg.ClientOptions())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	pingCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongo primary")
	}

	db := client.Database(dbName)

	logger.WithFields(logrus.Fields{
		"database":   dbName,
		"collection": collection,
	}).Info("Connected to MongoDB")

	return &MongoConnection{
		Client:     client,
		Database:   db,
		Collection: db.Collection(collection),
	}, nil
}
