package credit

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"

	"github.com/shopspring/decimal"
)

type RejectionReason string

const (
	ReasonNotApproved   RejectionReason = "NOT_APPROVED"
	ReasonLimitExceeded RejectionReason = "LIMIT_EXCEEDED"
	ReasonEmiTooHigh    RejectionReason = "EMI_TOO_HIGH"
)

var maxInstallmentShare = decimal.RequireFromString("0.5")

// RejectionError is a business-rule rejection of an origination request. It
// matches apperrors.ErrLoanRejected and is never retryable.
type RejectionError struct {
	Reason  RejectionReason
	Message string
	Score   int
	EMI     decimal.Decimal
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return apperrors.ErrLoanRejected
}

// Terms are the engine-assigned conditions of an approved loan.
type Terms struct {
	Score        int
	InterestRate decimal.Decimal
	EMI          decimal.Decimal
}

// Decide applies the origination rules in order and stops at the first
// failing one: score gate, approved limit, installment cap.
func (e *Engine) Decide(applicant Applicant, history []LoanRecord, amount int64, tenure int) (Terms, error) {
	if amount <= 0 {
		return Terms{}, ErrInvalidAmount
	}
	if tenure < 1 {
		return Terms{}, ErrInvalidTenure
	}

	score := e.Score(applicant, history)
	rate, err := rateForScore(score)
	if err != nil {
		return Terms{}, err
	}

	if err := checkLimit(applicant, amount, score); err != nil {
		return Terms{}, err
	}

	emi, err := CalculateEMI(decimal.NewFromInt(amount), rate, tenure)
	if err != nil {
		return Terms{}, err
	}

	if err := checkAffordability(emi, applicant.MonthlySalary, score); err != nil {
		return Terms{}, err
	}

	return Terms{Score: score, InterestRate: rate, EMI: emi}, nil
}

// rateForScore is the score gate. A score without a rate tier (10 or below)
// is rejected.
func rateForScore(score int) (decimal.Decimal, error) {
	rate, err := ResolveRate(score)
	if err != nil {
		return decimal.Zero, &RejectionError{
			Reason:  ReasonNotApproved,
			Message: fmt.Sprintf("credit score %d is too low", score),
			Score:   score,
		}
	}
	return rate, nil
}

func checkLimit(applicant Applicant, amount int64, score int) error {
	if applicant.CurrentDebt+amount > applicant.ApprovedLimit {
		msg := fmt.Sprintf("current debt %d plus requested %d exceeds approved limit %d",
			applicant.CurrentDebt, amount, applicant.ApprovedLimit)
		return &RejectionError{Reason: ReasonLimitExceeded, Message: msg, Score: score}
	}
	return nil
}

func checkAffordability(emi decimal.Decimal, monthlySalary int64, score int) error {
	ceiling := decimal.NewFromInt(monthlySalary).Mul(maxInstallmentShare)
	if emi.GreaterThan(ceiling) {
		return &RejectionError{
			Reason:  ReasonEmiTooHigh,
			Message: fmt.Sprintf("installment %s exceeds 50%% of monthly salary %d", emi.StringFixed(2), monthlySalary),
			Score:   score,
			EMI:     emi,
		}
	}
	return nil
}
