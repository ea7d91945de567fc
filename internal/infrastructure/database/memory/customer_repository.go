// Package memory keeps customers in process memory. It backs the "memory"
// database driver for local runs and HTTP scenario tests.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"customers-api/internal/domain/customer"
	"customers-api/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]customer.Customer
	order     []uuid.UUID
	logger    *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(logger *slog.Logger) *CustomerRepository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to memory.NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		customers: make(map[uuid.UUID]customer.Customer),
		logger:    logger.With("component", "MemoryCustomerRepository"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[cust.ID]; exists {
		return fmt.Errorf("%w: customer %s", apperrors.ErrAlreadyExists, cust.ID)
	}
	r.customers[cust.ID] = *cust
	r.order = append(r.order, cust.ID)

	r.logger.DebugContext(ctx, "Customer stored", slog.String("customerID", cust.ID.String()))
	return nil
}

func (r *CustomerRepository) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &stored, nil
}

func (r *CustomerRepository) FindAll(_ context.Context) ([]*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*customer.Customer, 0, len(r.order))
	for _, id := range r.order {
		stored := r.customers[id]
		customers = append(customers, &stored)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.customers[cust.ID]
	if !ok {
		return customer.ErrNotFound
	}
	updated := *cust
	updated.CreatedAt = stored.CreatedAt
	r.customers[cust.ID] = updated

	r.logger.DebugContext(ctx, "Customer replaced", slog.String("customerID", cust.ID.String()))
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return customer.ErrNotFound
	}
	delete(r.customers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.DebugContext(ctx, "Customer removed", slog.String("customerID", id.String()))
	return nil
}

func (r *CustomerRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}
