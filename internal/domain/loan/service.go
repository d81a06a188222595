package loan

import (
	"context"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const maxOriginationAttempts = 2

type LoanService interface {
	CheckEligibility(ctx context.Context, customerID int64, amount, interestRate decimal.Decimal, tenure int) (*EligibilityResult, error)

	CreateLoan(ctx context.Context, customerID, amount int64, tenure int) (*Loan, error)

	GetLoan(ctx context.Context, loanID int64) (*LoanDetail, error)

	ListCustomerLoans(ctx context.Context, customerID int64) ([]Loan, error)
}

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	engine          *credit.Engine
	pub             event.EventPublisher
	clock           credit.Clock
	logger          *slog.Logger
}

func NewLoanService(r Repository, cs customer.CustomerService, engine *credit.Engine, pub event.EventPublisher, clock credit.Clock, logger *slog.Logger) LoanService {
	if clock == nil {
		clock = credit.SystemClock{}
	}
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		engine:          engine,
		pub:             pub,
		clock:           clock,
		logger:          logger.With(slog.String("component", "loanService")),
	}
}

func (s *loanServiceImpl) CheckEligibility(ctx context.Context, customerID int64, amount, interestRate decimal.Decimal, tenure int) (*EligibilityResult, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Checking loan eligibility")

	cust, err := s.customerService.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load loan history", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load loans of customer %d: %w", customerID, err)
	}

	result, err := s.engine.Evaluate(cust.Applicant(), Records(history), credit.EligibilityRequest{
		LoanAmount:   amount,
		InterestRate: interestRate,
		Tenure:       tenure,
	})
	if err != nil {
		logger.WarnContext(ctx, "Eligibility request rejected as malformed", slog.Any("error", err))
		return nil, err
	}

	monitoring.RecordEligibilityCheck(result.Approved)
	monitoring.ObserveCreditScore(monitoring.ScoreSourceEligibility, result.Score)
	logger.InfoContext(ctx, "Eligibility evaluated",
		slog.Int("score", result.Score),
		slog.Bool("approved", result.Approved),
		slog.String("correctedRate", result.CorrectedInterestRate.String()),
	)

	return &EligibilityResult{
		CustomerID:            customerID,
		Approval:              result.Approved,
		CreditScore:           result.Score,
		InterestRate:          result.InterestRate,
		CorrectedInterestRate: result.CorrectedInterestRate,
		Tenure:                result.Tenure,
		MonthlyInstallment:    result.MonthlyInstallment,
	}, nil
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, customerID, amount int64, tenure int) (*Loan, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID), slog.Int64("amount", amount), slog.Int("tenure", tenure))
	logger.InfoContext(ctx, "Creating new loan")

	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}

	var (
		created *Loan
		terms   credit.Terms
		err     error
	)
	for attempt := 1; attempt <= maxOriginationAttempts; attempt++ {
		created, terms, err = s.originate(ctx, customerID, amount, tenure)
		if !errors.Is(err, apperrors.ErrConflict) {
			break
		}
		logger.WarnContext(ctx, "Origination conflicted with a concurrent transaction", slog.Int("attempt", attempt))
	}

	if err != nil {
		var rejection *credit.RejectionError
		if errors.As(err, &rejection) {
			monitoring.RecordLoanDecision(string(rejection.Reason))
			monitoring.ObserveCreditScore(monitoring.ScoreSourceOrigination, rejection.Score)
			logger.InfoContext(ctx, "Loan rejected", slog.String("reason", string(rejection.Reason)), slog.Int("score", rejection.Score))
			return nil, err
		}
		monitoring.RecordLoanDecision("error")
		logger.ErrorContext(ctx, "Loan origination failed", slog.Any("error", err))
		return nil, err
	}

	monitoring.RecordLoanDecision("approved")
	monitoring.ObserveCreditScore(monitoring.ScoreSourceOrigination, terms.Score)
	logger = logger.With(slog.Int64("loanID", created.ID))
	logger.InfoContext(ctx, "Loan created successfully", slog.String("rate", terms.InterestRate.String()), slog.String("emi", terms.EMI.StringFixed(2)))

	s.publishLoanOriginated(ctx, created, terms.Score)
	return created, nil
}

// originate runs one read-decide-write unit under the customer's row lock.
// Any error, including a business rejection, rolls the transaction back.
func (s *loanServiceImpl) originate(ctx context.Context, customerID, amount int64, tenure int) (created *Loan, terms credit.Terms, err error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, terms, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			if rbErr := s.repo.RollbackTx(ctx, tx); rbErr != nil {
				s.logger.ErrorContext(ctx, "Failed to roll back origination", slog.Any("error", rbErr))
			}
		}
	}()

	cust, err := s.repo.FindCustomerForUpdateInTx(ctx, tx, customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, terms, customer.ErrNotFound
		}
		return nil, terms, fmt.Errorf("failed to lock customer %d: %w", customerID, err)
	}

	history, err := s.repo.ListByCustomerIDInTx(ctx, tx, customerID)
	if err != nil {
		return nil, terms, fmt.Errorf("failed to load loans of customer %d: %w", customerID, err)
	}

	terms, err = s.engine.Decide(cust.Applicant(), Records(history), amount, tenure)
	if err != nil {
		return nil, terms, err
	}

	created, err = s.repo.CreateLoanAndUpdateDebtInTx(ctx, tx, NewLoan(customerID, amount, tenure, terms, s.clock.Now()), amount)
	if err != nil {
		return nil, terms, fmt.Errorf("failed to persist loan: %w", err)
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		return nil, terms, fmt.Errorf("could not commit transaction: %w", err)
	}
	return created, terms, nil
}

func (s *loanServiceImpl) publishLoanOriginated(ctx context.Context, l *Loan, score int) {
	originated := event.LoanOriginatedEvent{
		Timestamp: time.Now(),
		Payload: event.LoanPayload{
			LoanID:             l.ID,
			CustomerID:         l.CustomerID,
			LoanAmount:         l.LoanAmount,
			Tenure:             l.Tenure,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: l.EMI,
			CreditScore:        score,
			StartDate:          l.StartDate,
			EndDate:            l.EndDate,
		},
	}
	if err := s.pub.PublishLoanOriginated(ctx, originated); err != nil {
		s.logger.ErrorContext(ctx, "Loan created, but FAILED to publish event", slog.Int64("loanID", l.ID), slog.Any("error", err))
	}
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*LoanDetail, error) {
	logger := s.logger.With(slog.Int64("loanID", loanID))
	logger.InfoContext(ctx, "Getting loan details")

	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, "Loan not found")
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to get loan", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}

	cust, err := s.customerService.GetCustomer(ctx, l.CustomerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get customer of loan", slog.Int64("customerID", l.CustomerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer of loan %d: %w", loanID, err)
	}

	return &LoanDetail{Loan: l, Customer: cust}, nil
}

func (s *loanServiceImpl) ListCustomerLoans(ctx context.Context, customerID int64) ([]Loan, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))

	if _, err := s.customerService.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	loans, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list loans", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans of customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Listed customer loans", slog.Int("count", len(loans)))
	return loans, nil
}
