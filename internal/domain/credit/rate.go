package credit

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotEligible = errors.New("credit score too low for any rate tier")

var (
	RatePrime    = decimal.NewFromInt(10)
	RateStandard = decimal.NewFromInt(12)
	RateSubprime = decimal.NewFromInt(16)
)

// ResolveRate maps a credit score to the annual interest rate in percent.
// Scores of 10 or below have no rate and return ErrNotEligible.
func ResolveRate(score int) (decimal.Decimal, error) {
	switch {
	case score > 50:
		return RatePrime, nil
	case score > 30:
		return RateStandard, nil
	case score > 10:
		return RateSubprime, nil
	default:
		return decimal.Zero, ErrNotEligible
	}
}

// RateTier labels the tier a score falls into.
func RateTier(score int) string {
	rate, err := ResolveRate(score)
	if err != nil {
		return "not_eligible"
	}
	return rate.String()
}
