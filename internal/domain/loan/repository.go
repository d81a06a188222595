package loan

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = fmt.Errorf("loan %w", apperrors.ErrNotFound)

type Repository interface {
	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	ListByCustomerID(ctx context.Context, customerID int64) ([]Loan, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// FindCustomerForUpdateInTx reads the customer and holds its row lock
	// until tx ends.
	FindCustomerForUpdateInTx(ctx context.Context, tx pgx.Tx, customerID int64) (*customer.Customer, error)

	ListByCustomerIDInTx(ctx context.Context, tx pgx.Tx, customerID int64) ([]Loan, error)

	// CreateLoanAndUpdateDebtInTx inserts the loan and adds debtDelta to the
	// customer's current debt.
	CreateLoanAndUpdateDebtInTx(ctx context.Context, tx pgx.Tx, loan *Loan, debtDelta int64) (*Loan, error)
}
