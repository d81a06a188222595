package credit

import (
	"errors"

	"github.com/shopspring/decimal"
)

type EligibilityRequest struct {
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
}

type Eligibility struct {
	Score                 int
	Approved              bool
	InterestRate          decimal.Decimal
	CorrectedInterestRate decimal.Decimal
	Tenure                int
	MonthlyInstallment    decimal.Decimal
}

// Evaluate previews whether a loan would be approved and at what terms. It
// only applies the score-to-rate rule; the approved limit and the
// installment-to-salary cap are enforced by Decide at origination.
//
// An ineligible applicant is a normal result, not an error: the requested
// rate is reported as the corrected rate and the installment is computed from
// it. Errors are returned only for malformed requests.
func (e *Engine) Evaluate(applicant Applicant, history []LoanRecord, req EligibilityRequest) (Eligibility, error) {
	if !req.LoanAmount.IsPositive() {
		return Eligibility{}, ErrInvalidAmount
	}
	if !req.InterestRate.IsPositive() {
		return Eligibility{}, ErrInvalidRate
	}
	if req.Tenure < 1 {
		return Eligibility{}, ErrInvalidTenure
	}

	score := e.Score(applicant, history)
	result := Eligibility{
		Score:        score,
		InterestRate: req.InterestRate,
		Tenure:       req.Tenure,
	}

	rate, err := ResolveRate(score)
	switch {
	case errors.Is(err, ErrNotEligible):
		result.CorrectedInterestRate = req.InterestRate
	case err != nil:
		return Eligibility{}, err
	default:
		result.Approved = true
		result.CorrectedInterestRate = rate
	}

	emi, err := CalculateEMI(req.LoanAmount, result.CorrectedInterestRate, req.Tenure)
	if err != nil {
		return Eligibility{}, err
	}
	result.MonthlyInstallment = emi

	return result, nil
}
