package credit

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = fmt.Errorf("%w: loan amount must be greater than zero", apperrors.ErrInvalidArgument)

	ErrInvalidRate = fmt.Errorf("%w: interest rate must be greater than zero", apperrors.ErrInvalidArgument)

	ErrInvalidTenure = fmt.Errorf("%w: tenure must be at least one month", apperrors.ErrInvalidArgument)
)

// CalculateEMI returns the fixed monthly installment that amortizes principal
// over tenure months at annualRate percent:
//
//	r   = annualRate / 1200
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The power is evaluated in float64 and the result is rounded to two decimal
// places, half away from zero, from its shortest decimal representation.
// Rounding down can leave EMI * tenure short of the principal by at most half
// a paisa per installment, which only shows for very small principals
// (1 at 1% over 3 months is 0.33, repaying 0.99).
func CalculateEMI(principal, annualRate decimal.Decimal, tenure int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if !annualRate.IsPositive() {
		return decimal.Zero, ErrInvalidRate
	}
	if tenure < 1 {
		return decimal.Zero, ErrInvalidTenure
	}

	p := principal.InexactFloat64()
	r := annualRate.InexactFloat64() / 1200
	factor := math.Pow(1+r, float64(tenure))

	var emi float64
	switch {
	case math.IsInf(factor, 1):
		emi = p * r
	case factor-1 <= 0:
		// rate too small to register in float64
		emi = p / float64(tenure)
	default:
		emi = p * r * factor / (factor - 1)
	}

	return decimal.NewFromFloat(emi).Round(2), nil
}
