package dto

import (
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/loan"
	"fmt"

	"github.com/shopspring/decimal"
)

type CheckEligibilityRequest struct {
	CustomerID   int64           `json:"customer_id"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Tenure       int             `json:"tenure"`
}

func (r *CheckEligibilityRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customer_id must be a positive number")
	}
	if !r.LoanAmount.IsPositive() {
		return fmt.Errorf("loan_amount must be greater than zero")
	}
	if !r.InterestRate.IsPositive() {
		return fmt.Errorf("interest_rate must be greater than zero")
	}
	if r.Tenure <= 0 {
		return fmt.Errorf("tenure must be a positive number of months")
	}
	return nil
}

type EligibilityResponse struct {
	CustomerID            int64  `json:"customer_id"`
	Approval              bool   `json:"approval"`
	InterestRate          string `json:"interest_rate"`
	CorrectedInterestRate string `json:"corrected_interest_rate"`
	Tenure                int    `json:"tenure"`
	MonthlyInstallment    string `json:"monthly_installment"`
}

func NewEligibilityResponse(r *loan.EligibilityResult) EligibilityResponse {
	return EligibilityResponse{
		CustomerID:            r.CustomerID,
		Approval:              r.Approval,
		InterestRate:          r.InterestRate.String(),
		CorrectedInterestRate: r.CorrectedInterestRate.String(),
		Tenure:                r.Tenure,
		MonthlyInstallment:    r.MonthlyInstallment.StringFixed(2),
	}
}

type CreateLoanRequest struct {
	CustomerID int64 `json:"customer_id"`
	LoanAmount int64 `json:"loan_amount"`
	Tenure     int   `json:"tenure"`
}

func (r *CreateLoanRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customer_id must be a positive number")
	}
	if r.LoanAmount <= 0 {
		return fmt.Errorf("loan_amount must be greater than zero")
	}
	if r.Tenure <= 0 {
		return fmt.Errorf("tenure must be a positive number of months")
	}
	return nil
}

// CreateLoanResponse carries both outcomes of an origination request. LoanID
// is null and Reason is set when the loan was rejected.
type CreateLoanResponse struct {
	LoanID             *int64  `json:"loan_id"`
	CustomerID         int64   `json:"customer_id"`
	LoanApproved       bool    `json:"loan_approved"`
	Reason             string  `json:"reason,omitempty"`
	Message            string  `json:"message"`
	MonthlyInstallment *string `json:"monthly_installment"`
}

func NewLoanApprovedResponse(l *loan.Loan) CreateLoanResponse {
	id := l.ID
	emi := l.EMI.StringFixed(2)
	return CreateLoanResponse{
		LoanID:             &id,
		CustomerID:         l.CustomerID,
		LoanApproved:       true,
		Message:            "Loan approved",
		MonthlyInstallment: &emi,
	}
}

func NewLoanRejectedResponse(customerID int64, rej *credit.RejectionError) CreateLoanResponse {
	resp := CreateLoanResponse{
		CustomerID:   customerID,
		LoanApproved: false,
		Reason:       string(rej.Reason),
		Message:      rej.Message,
	}
	if rej.EMI.IsPositive() {
		emi := rej.EMI.StringFixed(2)
		resp.MonthlyInstallment = &emi
	}
	return resp
}

type LoanDetailResponse struct {
	LoanID             int64           `json:"loan_id"`
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         int64           `json:"loan_amount"`
	InterestRate       string          `json:"interest_rate"`
	MonthlyInstallment string          `json:"monthly_installment"`
	Tenure             int             `json:"tenure"`
}

func NewLoanDetailResponse(d *loan.LoanDetail) LoanDetailResponse {
	return LoanDetailResponse{
		LoanID:             d.Loan.ID,
		Customer:           NewCustomerSummary(d.Customer),
		LoanAmount:         d.Loan.LoanAmount,
		InterestRate:       d.Loan.InterestRate.String(),
		MonthlyInstallment: d.Loan.EMI.StringFixed(2),
		Tenure:             d.Loan.Tenure,
	}
}

type LoanSummaryResponse struct {
	LoanID             int64  `json:"loan_id"`
	LoanAmount         int64  `json:"loan_amount"`
	InterestRate       string `json:"interest_rate"`
	MonthlyInstallment string `json:"monthly_installment"`
	RepaymentsLeft     int    `json:"repayments_left"`
}

func NewLoanSummaryResponses(loans []loan.Loan) []LoanSummaryResponse {
	out := make([]LoanSummaryResponse, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		out = append(out, LoanSummaryResponse{
			LoanID:             l.ID,
			LoanAmount:         l.LoanAmount,
			InterestRate:       l.InterestRate.String(),
			MonthlyInstallment: l.EMI.StringFixed(2),
			RepaymentsLeft:     l.RepaymentsLeft(),
		})
	}
	return out
}
