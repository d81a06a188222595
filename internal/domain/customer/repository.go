package customer

import (
	"context"
	"credit-engine/internal/pkg/apperrors"
	"fmt"
)

var (
	ErrNotFound = fmt.Errorf("customer %w", apperrors.ErrNotFound)

	ErrDuplicatePhoneNumber = fmt.Errorf("phone number %w", apperrors.ErrAlreadyExists)
)

type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindAllIDs(ctx context.Context) ([]int64, error)
}
