package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained before
// Begin, or after Commit/Rollback, run outside any transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// BeginSerializable starts a SERIALIZABLE transaction.
	BeginSerializable(ctx context.Context) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CustomerRepository() CustomerRepository
	CouponRepository() CouponRepository
	CombinationRepository() CombinationRepository
	SettingsRepository() SettingsRepository
}
