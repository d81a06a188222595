package customer

import (
	"context"
	"credit-engine/internal/event"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"
)

const (
	maxNameLength        = 100
	maxPhoneNumberLength = 10
	minAge               = 18
	maxAge               = 120
)

type CustomerService interface {
	RegisterCustomer(ctx context.Context, params NewCustomerParams) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomerIDs(ctx context.Context) ([]int64, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, publisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	if publisher == nil {
		publisher = event.NewNoopPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    publisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, params NewCustomerParams) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to register new customer")

	params.FirstName = strings.TrimSpace(params.FirstName)
	params.LastName = strings.TrimSpace(params.LastName)
	params.PhoneNumber = strings.TrimSpace(params.PhoneNumber)
	if err := validateNewCustomer(params); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		return nil, err
	}

	cust := NewCustomer(params)
	logger := s.logger.With(slog.Int64("approvedLimit", cust.ApprovedLimit))

	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrDuplicatePhoneNumber) {
			logger.WarnContext(ctx, "Phone number already registered")
			return nil, ErrDuplicatePhoneNumber
		}
		logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger = logger.With(slog.Int64("customerID", cust.ID))
	logger.InfoContext(ctx, "Successfully registered customer, publishing event")

	registered := event.CustomerRegisteredEvent{
		Timestamp: time.Now(),
		Payload: event.CustomerPayload{
			CustomerID:    cust.ID,
			FirstName:     cust.FirstName,
			LastName:      cust.LastName,
			PhoneNumber:   cust.PhoneNumber,
			MonthlySalary: cust.MonthlySalary,
			ApprovedLimit: cust.ApprovedLimit,
			CreatedAt:     cust.CreatedAt,
		},
	}
	if pubErr := s.pub.PublishCustomerRegistered(ctx, registered); pubErr != nil {
		logger.ErrorContext(ctx, "Customer registered, but FAILED to publish event", slog.Any("error", pubErr))
	}

	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, "Customer not found by repository")
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) ListCustomerIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.repo.FindAllIDs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customer IDs", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customer IDs: %w", err)
	}

	s.logger.DebugContext(ctx, "Listed customer IDs", slog.Int("count", len(ids)))
	return ids, nil
}

func validateNewCustomer(p NewCustomerParams) error {
	if p.FirstName == "" {
		return apperrors.NewValidationError("first_name", "must not be empty")
	}
	if len(p.FirstName) > maxNameLength {
		return apperrors.NewValidationError("first_name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if p.LastName == "" {
		return apperrors.NewValidationError("last_name", "must not be empty")
	}
	if len(p.LastName) > maxNameLength {
		return apperrors.NewValidationError("last_name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if p.Age < minAge || p.Age > maxAge {
		return apperrors.NewValidationError("age", fmt.Sprintf("must be between %d and %d", minAge, maxAge))
	}
	if p.MonthlySalary <= 0 {
		return apperrors.NewValidationError("monthly_salary", "must be positive")
	}
	if p.PhoneNumber == "" || len(p.PhoneNumber) > maxPhoneNumberLength {
		return apperrors.NewValidationError("phone_number", fmt.Sprintf("must be 1 to %d digits", maxPhoneNumberLength))
	}
	for _, r := range p.PhoneNumber {
		if !unicode.IsDigit(r) {
			return apperrors.NewValidationError("phone_number", "must contain digits only")
		}
	}
	return nil
}
