package dto

import (
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/loan"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validRequest = "Valid request"
)

func TestCheckEligibilityRequestValidate(t *testing.T) {
	amount := decimal.NewFromInt(100_000)
	rate := decimal.NewFromInt(12)

	tests := []struct {
		name    string
		request CheckEligibilityRequest
		wantErr string
	}{
		{validRequest, CheckEligibilityRequest{CustomerID: 1, LoanAmount: amount, InterestRate: rate, Tenure: 12}, ""},
		{"Fractional amount and rate", CheckEligibilityRequest{CustomerID: 1, LoanAmount: decimal.RequireFromString("1500.50"), InterestRate: decimal.RequireFromString("7.25"), Tenure: 1}, ""},
		{"Zero customer ID", CheckEligibilityRequest{CustomerID: 0, LoanAmount: amount, InterestRate: rate, Tenure: 12}, "customer_id"},
		{"Negative customer ID", CheckEligibilityRequest{CustomerID: -3, LoanAmount: amount, InterestRate: rate, Tenure: 12}, "customer_id"},
		{"Zero amount", CheckEligibilityRequest{CustomerID: 1, LoanAmount: decimal.Zero, InterestRate: rate, Tenure: 12}, "loan_amount"},
		{"Negative amount", CheckEligibilityRequest{CustomerID: 1, LoanAmount: decimal.NewFromInt(-1), InterestRate: rate, Tenure: 12}, "loan_amount"},
		{"Zero rate", CheckEligibilityRequest{CustomerID: 1, LoanAmount: amount, InterestRate: decimal.Zero, Tenure: 12}, "interest_rate"},
		{"Zero tenure", CheckEligibilityRequest{CustomerID: 1, LoanAmount: amount, InterestRate: rate, Tenure: 0}, "tenure"},
		{"Negative tenure", CheckEligibilityRequest{CustomerID: 1, LoanAmount: amount, InterestRate: rate, Tenure: -6}, "tenure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateLoanRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateLoanRequest
		wantErr string
	}{
		{validRequest, CreateLoanRequest{CustomerID: 1, LoanAmount: 100_000, Tenure: 12}, ""},
		{"Zero customer ID", CreateLoanRequest{CustomerID: 0, LoanAmount: 100_000, Tenure: 12}, "customer_id"},
		{"Zero amount", CreateLoanRequest{CustomerID: 1, LoanAmount: 0, Tenure: 12}, "loan_amount"},
		{"Negative amount", CreateLoanRequest{CustomerID: 1, LoanAmount: -100, Tenure: 12}, "loan_amount"},
		{"Zero tenure", CreateLoanRequest{CustomerID: 1, LoanAmount: 100_000, Tenure: 0}, "tenure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLoanRejectedResponse(t *testing.T) {
	t.Run("Rejection without installment", func(t *testing.T) {
		rej := &credit.RejectionError{Reason: credit.ReasonLimitExceeded, Message: "limit exceeded", Score: 40}

		response := NewLoanRejectedResponse(7, rej)

		assert.Nil(t, response.LoanID)
		assert.Equal(t, int64(7), response.CustomerID)
		assert.False(t, response.LoanApproved)
		assert.Equal(t, "LIMIT_EXCEEDED", response.Reason)
		assert.Equal(t, "limit exceeded", response.Message)
		assert.Nil(t, response.MonthlyInstallment)

		body, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"loan_id": null,
			"customer_id": 7,
			"loan_approved": false,
			"reason": "LIMIT_EXCEEDED",
			"message": "limit exceeded",
			"monthly_installment": null
		}`, string(body))
	})

	t.Run("Rejection with installment", func(t *testing.T) {
		rej := &credit.RejectionError{
			Reason:  credit.ReasonEmiTooHigh,
			Message: "installment too high",
			Score:   60,
			EMI:     decimal.RequireFromString("30000.5"),
		}

		response := NewLoanRejectedResponse(7, rej)

		assert.Nil(t, response.LoanID)
		assert.Equal(t, "EMI_TOO_HIGH", response.Reason)
		require.NotNil(t, response.MonthlyInstallment)
		assert.Equal(t, "30000.50", *response.MonthlyInstallment)
	})
}

func TestNewLoanApprovedResponse(t *testing.T) {
	l := &loan.Loan{ID: 42, CustomerID: 7, EMI: decimal.RequireFromString("8884.9")}

	response := NewLoanApprovedResponse(l)

	require.NotNil(t, response.LoanID)
	assert.Equal(t, int64(42), *response.LoanID)
	assert.True(t, response.LoanApproved)
	assert.Empty(t, response.Reason)
	require.NotNil(t, response.MonthlyInstallment)
	assert.Equal(t, "8884.90", *response.MonthlyInstallment)
}

func TestNewLoanSummaryResponses(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	loans := []loan.Loan{
		{ID: 1, LoanAmount: 100_000, Tenure: 12, EMIsPaidOnTime: 4, InterestRate: decimal.NewFromInt(12), EMI: decimal.RequireFromString("8884.88"), StartDate: start},
		{ID: 2, LoanAmount: 50_000, Tenure: 6, EMIsPaidOnTime: 9, InterestRate: decimal.RequireFromString("16.5"), EMI: decimal.NewFromInt(8700), StartDate: start},
	}

	responses := NewLoanSummaryResponses(loans)

	require.Len(t, responses, 2)
	assert.Equal(t, 8, responses[0].RepaymentsLeft)
	assert.Equal(t, "12", responses[0].InterestRate)
	assert.Equal(t, "8884.88", responses[0].MonthlyInstallment)
	assert.Equal(t, 0, responses[1].RepaymentsLeft, "overpaid loans report no repayments left")
	assert.Equal(t, "16.5", responses[1].InterestRate)
	assert.Equal(t, "8700.00", responses[1].MonthlyInstallment)

	assert.Empty(t, NewLoanSummaryResponses(nil))
	assert.NotNil(t, NewLoanSummaryResponses(nil))
}
