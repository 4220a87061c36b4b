package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidID is returned when an identifier is not a valid object id
	ErrInvalidID = errors.New("invalid ID")

	// ErrConnection is returned when the store cannot be reached
	ErrConnection = errors.New("store connection error")

	// ErrUnsupportedDriver is returned for an unknown store driver name
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      string // Entity ID (if applicable)
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// NewRepositoryErrorWithMessage creates a new repository error with a custom message
func NewRepositoryErrorWithMessage(op, entity, id, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		ID:      id,
		Err:     err,
		Message: message,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// InvalidIDError creates an "invalid ID" repository error
func InvalidIDError(op, entity, id string, cause error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		ID:      id,
		Err:     fmt.Errorf("%w: %v", ErrInvalidID, cause),
		Message: fmt.Sprintf("cast to ObjectId failed for value %q (%s %s)", id, entity, op),
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(err error) *RepositoryError {
	return &RepositoryError{
		Op:      "connect",
		Entity:  "store",
		Err:     fmt.Errorf("%w: %v", ErrConnection, err),
		Message: fmt.Sprintf("store connection failed: %v", err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidID checks if an error is an "invalid ID" error
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

// ParseID converts a hex identifier into an object id. Every driver uses it
// so that all stores accept and reject the same identifiers.
func ParseID(op, entity, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, InvalidIDError(op, entity, id, err)
	}
	return oid, nil
}

// NewID returns a fresh identifier in the same format the document store assigns
func NewID() string {
	return primitive.NewObjectID().Hex()
}
