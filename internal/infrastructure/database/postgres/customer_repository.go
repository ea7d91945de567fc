package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customers-api/internal/domain/customer"
	"customers-api/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	createCustomersTableSQL = `
        CREATE TABLE IF NOT EXISTS customers (
            id              UUID PRIMARY KEY,
            github_username TEXT NOT NULL,
            full_name       TEXT NOT NULL,
            email           TEXT NOT NULL,
            date_of_birth   DATE NOT NULL,
            created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`

	insertCustomerSQL = `
        INSERT INTO customers (id, github_username, full_name, email, date_of_birth, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	selectCustomerByIDSQL = `
        SELECT id, github_username, full_name, email, date_of_birth, created_at
        FROM customers
        WHERE id = $1`

	selectAllCustomersSQL = `
        SELECT id, github_username, full_name, email, date_of_birth, created_at
        FROM customers
        ORDER BY created_at ASC, id ASC`

	updateCustomerSQL = `
        UPDATE customers
        SET github_username = $1,
            full_name = $2,
            email = $3,
            date_of_birth = $4
        WHERE id = $5`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`

	countCustomersSQL = `SELECT COUNT(*) FROM customers`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

// EnsureSchema creates the customers table when it does not exist yet.
func (r *CustomerRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createCustomersTableSQL); err != nil {
		r.logger.ErrorContext(ctx, "Failed to ensure customers schema", slog.Any("error", err))
		return fmt.Errorf("%w: failed to create customers table: %w", apperrors.ErrDatabase, err)
	}
	r.logger.InfoContext(ctx, "Customers schema ready")
	return nil
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("customerID", cust.ID.String()))

	_, err := r.db.Exec(ctx, insertCustomerSQL,
		cust.ID,
		cust.GitHubUsername,
		cust.FullName,
		cust.Email,
		cust.DateOfBirth,
		cust.CreatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			return translatedErr
		}
		logCtx.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	logCtx.DebugContext(ctx, "Customer inserted successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var cust customer.Customer
	err := r.db.QueryRow(ctx, selectCustomerByIDSQL, id).Scan(
		&cust.ID,
		&cust.GitHubUsername,
		&cust.FullName,
		&cust.Email,
		&cust.DateOfBirth,
		&cust.CreatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrNotFound) {
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	return &cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, selectAllCustomersSQL)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		if err := rows.Scan(
			&cust.ID,
			&cust.GitHubUsername,
			&cust.FullName,
			&cust.Email,
			&cust.DateOfBirth,
			&cust.CreatedAt,
		); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("customerID", cust.ID.String()))

	cmdTag, err := r.db.Exec(ctx, updateCustomerSQL,
		cust.GitHubUsername,
		cust.FullName,
		cust.Email,
		cust.DateOfBirth,
		cust.ID,
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	logCtx.DebugContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logCtx := r.logger.With(slog.String("customerID", id.String()))

	cmdTag, err := r.db.Exec(ctx, deleteCustomerSQL, id)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	logCtx.DebugContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countCustomersSQL).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
	}
	return count, nil
}
