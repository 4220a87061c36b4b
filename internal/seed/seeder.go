package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"customers-api/internal/models"
	"customers-api/internal/services"
)

// DefaultCustomers are inserted when no seed file is given
func DefaultCustomers() []models.CustomerInput {
	return []models.CustomerInput{
		{Name: "John", Industry: "Music"},
		{Name: "Doe", Industry: "Networking"},
		{Name: "Marvellous", Industry: "Sports"},
	}
}

// Result summarises a seed run
type Result struct {
	Processed int
	Created   []*models.Customer
	Errors    []string
}

// Seeder inserts customers through the service so seeded records pass
// the same validation as API requests
type Seeder struct {
	service services.CustomerService
	logger  *logrus.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(service services.CustomerService, logger *logrus.Logger) *Seeder {
	return &Seeder{service: service, logger: logger}
}

// LoadFile reads a JSON array of {name, industry} objects
func LoadFile(path string) ([]models.CustomerInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var customers []models.CustomerInput
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	return customers, nil
}

// Seed inserts every input. Invalid entries are recorded and skipped.
// With dryRun set nothing is written.
func (s *Seeder) Seed(ctx context.Context, inputs []models.CustomerInput, dryRun bool) (*Result, error) {
	result := &Result{
		Created: make([]*models.Customer, 0, len(inputs)),
		Errors:  make([]string, 0),
	}

	for i := range inputs {
		input := inputs[i]
		result.Processed++

		if dryRun {
			s.logger.WithFields(logrus.Fields{
				"name":     input.Name,
				"industry": input.Industry,
			}).Info("Would create customer")
			continue
		}

		customer, err := s.service.CreateCustomer(ctx, &input)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			msg := fmt.Sprintf("customer %d (%q): %v", i, input.Name, err)
			s.logger.Warn(msg)
			result.Errors = append(result.Errors, msg)
			continue
		}

		s.logger.WithField("customer_id", customer.ID).Debug("Customer seeded")
		result.Created = append(result.Created, customer)
	}

	return result, nil
}
