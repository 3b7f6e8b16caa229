// Package commands contains the write-side use cases of the fulfillment core.
// Each use case is a command value built by its constructor plus a handler
// that owns the transaction boundary.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SerializableTxManager is a TxManager that can also open a SERIALIZABLE transaction.
	SerializableTxManager interface {
		TxManager
		BeginSerializable(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	CombinationRepoFactory interface {
		CombinationRepository() ports.CombinationRepository
	}

	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	CombinationUoW interface {
		TxManager
		CombinationRepoFactory
	}

	CombinationUoWFactory interface {
		Create() CombinationUoW
	}

	// CouponUoW backs coupon redemption and coupon administration.
	CouponUoW interface {
		SerializableTxManager
		CouponRepoFactory
		OrderRepoFactory
	}

	CouponUoWFactory interface {
		Create() CouponUoW
	}

	// CustomerUoW backs the customer intelligence update and auto-approval.
	CustomerUoW interface {
		TxManager
		OrderRepoFactory
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	SettingsUoW interface {
		TxManager
		SettingsRepoFactory
	}

	SettingsUoWFactory interface {
		Create() SettingsUoW
	}

	// UoW spans every aggregate. Order creation and operator approval use it.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.BeginSerializable(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   orders := uow.OrderRepository()
	//   coupons := uow.CouponRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		SerializableTxManager
		OrderRepoFactory
		CustomerRepoFactory
		CouponRepoFactory
		CombinationRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
