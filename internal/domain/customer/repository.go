package customer

import (
	"context"
	"fmt"

	"customers-api/internal/pkg/apperrors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = fmt.Errorf("customer not found: %w", apperrors.ErrNotFound)
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll returns customers in the order they were created.
	FindAll(ctx context.Context) ([]*Customer, error)

	Update(ctx context.Context, customer *Customer) error

	Delete(ctx context.Context, id uuid.UUID) error
}
