package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customers-api/internal/event"
	"customers-api/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	customerNotFound = "Customer not found by repository"
	dateLayout       = "2006-01-02"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req Request) (*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetAllCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req Request) (*Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo      CustomerRepository
	validator Validator
	pub       event.EventPublisher
	logger    *slog.Logger
}

func NewCustomerService(repo CustomerRepository, validator Validator, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if validator == nil {
		panic("customer validator cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		eventPublisher = event.NopPublisher{}
	}

	return &customerService{
		repo:      repo,
		validator: validator,
		pub:       eventPublisher,
		logger:    logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:     cust.ID.String(),
		GitHubUsername: cust.GitHubUsername,
		FullName:       cust.FullName,
		Email:          cust.Email,
		DateOfBirth:    cust.DateOfBirth.Format(dateLayout),
	}
}

// publish never fails the caller; the mutation is already committed.
func (s *customerService) publish(ctx context.Context, routingKey string, payload event.CustomerEventPayload) {
	logCtx := s.logger.With(slog.String("customerID", payload.CustomerID), slog.String("event", routingKey))
	if err := s.pub.PublishCustomerEvent(ctx, event.NewCustomerEvent(routingKey, payload)); err != nil {
		logCtx.ErrorContext(ctx, "Customer persisted, but FAILED to publish event", slog.Any("error", err))
		return
	}
	logCtx.DebugContext(ctx, "Published customer event")
}

func (s *customerService) CreateCustomer(ctx context.Context, req Request) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	if err := s.validator.Validate(ctx, req); err != nil {
		return nil, s.validationFailure(ctx, err)
	}
	req = req.Normalized()

	customer := NewCustomer(req)
	logCtx := s.logger.With(slog.String("customerID", customer.ID.String()))

	if err := s.repo.Create(ctx, customer); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	s.publish(ctx, event.RoutingKeyCustomerCreated, NewCustomerEventPayload(customer))
	logCtx.InfoContext(ctx, "Successfully created new customer")
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerID", id.String()))

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", id, err)
	}

	logCtx.DebugContext(ctx, "Successfully retrieved customer")
	return customer, nil
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]*Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []*Customer{}
	}

	s.logger.DebugContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req Request) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerID", id.String()))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	if err := s.validator.Validate(ctx, req); err != nil {
		return nil, s.validationFailure(ctx, err)
	}
	req = req.Normalized()

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by repository for update")
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %s to update: %w", id, err)
	}

	customer.Apply(req)

	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.ErrorContext(ctx, "Customer disappeared before update completed")
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %s: %w", id, err)
	}

	s.publish(ctx, event.RoutingKeyCustomerUpdated, NewCustomerEventPayload(customer))
	logCtx.InfoContext(ctx, "Successfully updated customer")
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	logCtx := s.logger.With(slog.String("customerID", id.String()))
	logCtx.InfoContext(ctx, "Attempting to delete customer")

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}

	s.publish(ctx, event.RoutingKeyCustomerDeleted, event.CustomerEventPayload{CustomerID: id.String()})
	logCtx.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

func (s *customerService) validationFailure(ctx context.Context, err error) error {
	if errors.Is(err, apperrors.ErrValidation) {
		s.logger.WarnContext(ctx, "Customer request rejected", slog.Any("error", err))
		return err
	}
	s.logger.ErrorContext(ctx, "Customer request could not be validated", slog.Any("error", err))
	return err
}
