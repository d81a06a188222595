package credit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(ClockFunc(func() time.Time { return fixedNow }))
}

func loanStartedOn(start time.Time, amount int64, tenure, paidOnTime int) LoanRecord {
	return LoanRecord{LoanAmount: amount, Tenure: tenure, EMIsPaidOnTime: paidOnTime, StartDate: start}
}

func TestScore(t *testing.T) {
	longAgo := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	thisYear := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		applicant Applicant
		history   []LoanRecord
		expected  int
	}{
		{
			name:      "no history within limit",
			applicant: Applicant{MonthlySalary: 60_000, ApprovedLimit: 200_000},
			expected:  10 + 15 + 15 + 20,
		},
		{
			name:      "no history with zero limit",
			applicant: Applicant{MonthlySalary: 0, ApprovedLimit: 0},
			expected:  10 + 15 + 15 + 5,
		},
		{
			name:      "debt above limit scores zero",
			applicant: Applicant{MonthlySalary: 100_000, ApprovedLimit: 300_000, CurrentDebt: 300_001},
			history: []LoanRecord{
				loanStartedOn(longAgo, 10_000, 12, 12),
			},
			expected: 0,
		},
		{
			name:      "debt equal to limit is still scored",
			applicant: Applicant{MonthlySalary: 100_000, ApprovedLimit: 300_000, CurrentDebt: 300_000},
			expected:  60,
		},
		{
			name:      "reliable payer with old loans",
			applicant: Applicant{MonthlySalary: 50_000, ApprovedLimit: 500_000},
			history: []LoanRecord{
				loanStartedOn(longAgo, 50_000, 12, 12),
				loanStartedOn(longAgo, 50_000, 12, 11),
			},
			expected: 35 + 15 + 15 + 20,
		},
		{
			name:      "irregular payer with old loans",
			applicant: Applicant{MonthlySalary: 50_000, ApprovedLimit: 500_000},
			history: []LoanRecord{
				loanStartedOn(longAgo, 50_000, 12, 10),
				loanStartedOn(longAgo, 50_000, 12, 10),
			},
			expected: 20 + 15 + 15 + 20,
		},
		{
			name:      "on-time ratio of exactly 0.9 is irregular",
			applicant: Applicant{MonthlySalary: 50_000, ApprovedLimit: 500_000},
			history: []LoanRecord{
				loanStartedOn(longAgo, 10_000, 10, 9),
			},
			expected: 20 + 15 + 15 + 20,
		},
		{
			name:      "many loans in a busy year above limit",
			applicant: Applicant{MonthlySalary: 50_000, ApprovedLimit: 100_000},
			history: []LoanRecord{
				loanStartedOn(thisYear, 25_000, 10, 9),
				loanStartedOn(thisYear, 25_000, 10, 9),
				loanStartedOn(thisYear, 25_000, 10, 9),
				loanStartedOn(thisYear, 25_000, 10, 9),
			},
			expected: 20 + 5 + 5 + 5,
		},
		{
			name:      "three loans and two this year stay in the favourable bands",
			applicant: Applicant{MonthlySalary: 50_000, ApprovedLimit: 100_000},
			history: []LoanRecord{
				loanStartedOn(thisYear, 20_000, 12, 12),
				loanStartedOn(thisYear, 20_000, 12, 12),
				loanStartedOn(longAgo, 20_000, 12, 12),
			},
			expected: 35 + 15 + 15 + 20,
		},
		{
			name:      "zero tenure history does not divide by zero",
			applicant: Applicant{MonthlySalary: 50_000, ApprovedLimit: 500_000},
			history: []LoanRecord{
				loanStartedOn(longAgo, 10_000, 0, 0),
			},
			expected: 20 + 15 + 15 + 20,
		},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := engine.Score(tt.applicant, tt.history)
			assert.Equal(t, tt.expected, score)
			assert.GreaterOrEqual(t, score, MinScore)
			assert.LessOrEqual(t, score, MaxScore)
		})
	}
}

func TestScoreIsPure(t *testing.T) {
	engine := newTestEngine()
	applicant := Applicant{MonthlySalary: 40_000, ApprovedLimit: 1_400_000, CurrentDebt: 200_000}
	history := []LoanRecord{
		loanStartedOn(fixedNow.AddDate(0, -2, 0), 300_000, 24, 2),
		loanStartedOn(fixedNow.AddDate(-3, 0, 0), 100_000, 12, 12),
	}
	snapshot := append([]LoanRecord(nil), history...)

	first := engine.Score(applicant, history)
	second := engine.Score(applicant, history)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, history)
}

func TestScoreUsesInjectedClockForCurrentYear(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	history := []LoanRecord{
		loanStartedOn(start, 1_000, 12, 12),
		loanStartedOn(start, 1_000, 12, 12),
		loanStartedOn(start, 1_000, 12, 12),
	}
	applicant := Applicant{MonthlySalary: 50_000, ApprovedLimit: 1_000_000}

	in2025 := NewEngine(ClockFunc(func() time.Time { return start.AddDate(0, 3, 0) }))
	in2026 := newTestEngine()

	assert.Equal(t, 35+15+5+20, in2025.Score(applicant, history))
	assert.Equal(t, 35+15+15+20, in2026.Score(applicant, history))
}
