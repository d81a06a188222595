package loan

import (
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"time"

	"github.com/shopspring/decimal"
)

type Loan struct {
	ID             int64
	CustomerID     int64
	LoanAmount     int64
	Tenure         int
	InterestRate   decimal.Decimal
	EMI            decimal.Decimal
	EMIsPaidOnTime int
	StartDate      time.Time
	DateOfApproval time.Time
	EndDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LoanDetail is a loan together with the customer who holds it.
type LoanDetail struct {
	Loan     *Loan
	Customer *customer.Customer
}

type EligibilityResult struct {
	CustomerID            int64
	Approval              bool
	CreditScore           int
	InterestRate          decimal.Decimal
	CorrectedInterestRate decimal.Decimal
	Tenure                int
	MonthlyInstallment    decimal.Decimal
}

// NewLoan builds an unsaved loan from approved terms. The loan starts and is
// approved on the calendar day of now and ends tenure months later.
func NewLoan(customerID, amount int64, tenure int, terms credit.Terms, now time.Time) *Loan {
	today := calendarDate(now)
	return &Loan{
		CustomerID:     customerID,
		LoanAmount:     amount,
		Tenure:         tenure,
		InterestRate:   terms.InterestRate,
		EMI:            terms.EMI,
		EMIsPaidOnTime: 0,
		StartDate:      today,
		DateOfApproval: today,
		EndDate:        today.AddDate(0, tenure, 0),
	}
}

func (l *Loan) RepaymentsLeft() int {
	return max(l.Tenure-l.EMIsPaidOnTime, 0)
}

func (l *Loan) Record() credit.LoanRecord {
	return credit.LoanRecord{
		LoanAmount:     l.LoanAmount,
		Tenure:         l.Tenure,
		EMIsPaidOnTime: l.EMIsPaidOnTime,
		StartDate:      l.StartDate,
	}
}

func Records(loans []Loan) []credit.LoanRecord {
	records := make([]credit.LoanRecord, len(loans))
	for i := range loans {
		records[i] = loans[i].Record()
	}
	return records
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
