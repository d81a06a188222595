package customer

import (
	"credit-engine/internal/domain/credit"
	"time"

	"github.com/shopspring/decimal"
)

const (
	limitSalaryMultiple = 36
	limitRoundingUnit   = 100_000
)

type Customer struct {
	ID            int64
	FirstName     string
	LastName      string
	Age           int
	PhoneNumber   string
	MonthlySalary int64
	ApprovedLimit int64
	CurrentDebt   int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NewCustomerParams struct {
	FirstName     string
	LastName      string
	Age           int
	PhoneNumber   string
	MonthlySalary int64
}

func NewCustomer(p NewCustomerParams) *Customer {
	now := time.Now()
	return &Customer{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Age:           p.Age,
		PhoneNumber:   p.PhoneNumber,
		MonthlySalary: p.MonthlySalary,
		ApprovedLimit: ApprovedLimitFor(p.MonthlySalary),
		CurrentDebt:   0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApprovedLimitFor returns 36 monthly salaries rounded to the nearest lakh.
// Exact halves round to the even multiple.
func ApprovedLimitFor(monthlySalary int64) int64 {
	lakhs := decimal.NewFromInt(monthlySalary).
		Mul(decimal.NewFromInt(limitSalaryMultiple)).
		Div(decimal.NewFromInt(limitRoundingUnit)).
		RoundBank(0)
	return lakhs.IntPart() * limitRoundingUnit
}

func (c *Customer) Applicant() credit.Applicant {
	return credit.Applicant{
		MonthlySalary: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		CurrentDebt:   c.CurrentDebt,
	}
}
