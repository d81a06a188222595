package postgres

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `id, customer_id, loan_amount, tenure, interest_rate, emi, emis_paid_on_time, start_date, date_of_approval, end_date, created_at, updated_at`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := beginTx(ctx, r.db)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, err
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := commitTx(ctx, tx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return err
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	if err := rollbackTx(ctx, tx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return err
	}
	return nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	start := time.Now()
	l, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	observeQuery("GetLoanByID", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, loan.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, translateDBError(err)
	}
	return l, nil
}

func (r *LoanRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]loan.Loan, error) {
	return r.listByCustomerID(ctx, r.db, "ListLoansByCustomerID", customerID)
}

func (r *LoanRepository) ListByCustomerIDInTx(ctx context.Context, tx pgx.Tx, customerID int64) ([]loan.Loan, error) {
	return r.listByCustomerID(ctx, tx, "ListLoansByCustomerIDInTx", customerID)
}

func (r *LoanRepository) listByCustomerID(ctx context.Context, q querier, queryName string, customerID int64) ([]loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY id ASC`

	start := time.Now()
	rows, err := q.Query(ctx, query, customerID)
	if err != nil {
		observeQuery(queryName, start, err)
		r.logger.ErrorContext(ctx, "Failed to query loans of customer", "customer_id", customerID, "error", err)
		return nil, translateDBError(err)
	}
	defer rows.Close()

	loans := make([]loan.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "customer_id", customerID, "error", err)
			return nil, translateDBError(err)
		}
		loans = append(loans, *l)
	}
	err = rows.Err()
	observeQuery(queryName, start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", "customer_id", customerID, "error", err)
		return nil, translateDBError(err)
	}

	return loans, nil
}

func (r *LoanRepository) FindCustomerForUpdateInTx(ctx context.Context, tx pgx.Tx, customerID int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`

	start := time.Now()
	cust, err := scanCustomer(tx.QueryRow(ctx, query, customerID))
	observeQuery("FindCustomerForUpdate", start, err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found for update", "customer_id", customerID)
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to lock customer row", "customer_id", customerID, "error", err)
		return nil, translateDBError(err)
	}
	return cust, nil
}

func (r *LoanRepository) CreateLoanAndUpdateDebtInTx(ctx context.Context, tx pgx.Tx, newLoan *loan.Loan, debtDelta int64) (*loan.Loan, error) {
	insertSQL := `
        INSERT INTO loans (customer_id, loan_amount, tenure, interest_rate, emi, emis_paid_on_time, start_date, date_of_approval, end_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING ` + loanColumns

	start := time.Now()
	created, err := scanLoan(tx.QueryRow(ctx, insertSQL,
		newLoan.CustomerID, newLoan.LoanAmount, newLoan.Tenure, newLoan.InterestRate, newLoan.EMI,
		newLoan.EMIsPaidOnTime, newLoan.StartDate, newLoan.DateOfApproval, newLoan.EndDate,
	))
	observeQuery("InsertLoan", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "customer_id", newLoan.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to insert loan: %w", translateDBError(err))
	}

	updateSQL := `
        UPDATE customers
        SET current_debt = current_debt + $1, updated_at = NOW()
        WHERE id = $2`

	start = time.Now()
	cmdTag, err := tx.Exec(ctx, updateSQL, debtDelta, newLoan.CustomerID)
	observeQuery("AddCustomerDebt", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer debt", "customer_id", newLoan.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to update customer debt: %w", translateDBError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.ErrorContext(ctx, "Customer vanished while updating debt", "customer_id", newLoan.CustomerID)
		return nil, customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.ID, "customer_id", created.CustomerID, "debt_delta", debtDelta)
	return created, nil
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.LoanAmount, &l.Tenure, &l.InterestRate, &l.EMI,
		&l.EMIsPaidOnTime, &l.StartDate, &l.DateOfApproval, &l.EndDate,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
