package dto

import (
	"credit-engine/internal/domain/customer"
	"fmt"
	"strings"
)

type RegisterCustomerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Age           int    `json:"age"`
	MonthlySalary int64  `json:"monthly_salary"`
	PhoneNumber   string `json:"phone_number"`
}

// Validate checks presence only; value rules live in the customer service.
func (r *RegisterCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return fmt.Errorf("phone_number is required")
	}
	return nil
}

func (r *RegisterCustomerRequest) Params() customer.NewCustomerParams {
	return customer.NewCustomerParams{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Age:           r.Age,
		PhoneNumber:   r.PhoneNumber,
		MonthlySalary: r.MonthlySalary,
	}
}

type CustomerResponse struct {
	CustomerID    int64  `json:"customer_id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	MonthlyIncome int64  `json:"monthly_income"`
	ApprovedLimit int64  `json:"approved_limit"`
	PhoneNumber   string `json:"phone_number"`
	CurrentDebt   int64  `json:"current_debt"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.ID,
		Name:          strings.TrimSpace(c.FirstName + " " + c.LastName),
		Age:           c.Age,
		MonthlyIncome: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
		CurrentDebt:   c.CurrentDebt,
	}
}

// CustomerSummary is the customer as embedded in a loan detail.
type CustomerSummary struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
}

func NewCustomerSummary(c *customer.Customer) CustomerSummary {
	return CustomerSummary{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Age:         c.Age,
	}
}
