package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
)

// CustomerRepository hides the two historical customer addressing schemes.
// New records are keyed by their generated id; older ones by bare phone number.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// FindByPhone resolves a customer by phone: first among id-keyed records,
	// then the legacy record keyed by the phone itself.
	FindByPhone(ctx context.Context, phone string) (*customer.Customer, error)

	// LockByPhone is FindByPhone taking a row lock for the current transaction.
	LockByPhone(ctx context.Context, phone string) (*customer.Customer, error)
}
