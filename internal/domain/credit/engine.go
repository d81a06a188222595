// Package credit holds the loan decision engine: credit scoring, rate
// resolution, installment computation and the approval rules applied when a
// loan is previewed or originated. Nothing in this package touches storage.
package credit

import "time"

// Clock supplies the current time to scoring.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Applicant is the part of a customer the engine reads.
type Applicant struct {
	MonthlySalary int64
	ApprovedLimit int64
	CurrentDebt   int64
}

// LoanRecord is one historical loan of the applicant.
type LoanRecord struct {
	LoanAmount     int64
	Tenure         int
	EMIsPaidOnTime int
	StartDate      time.Time
}

type Engine struct {
	clock Clock
}

func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{clock: clock}
}
