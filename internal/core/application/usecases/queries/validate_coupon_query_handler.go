package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type ValidateCouponQueryHandler struct {
	coupons ports.CouponRepository
	orders  ports.OrderRepository
	clock   ports.Clock
}

func NewValidateCouponQueryHandler(
	coupons ports.CouponRepository,
	orders ports.OrderRepository,
	clock ports.Clock,
) ValidateCouponQueryHandler {
	return ValidateCouponQueryHandler{coupons: coupons, orders: orders, clock: clock}
}

func (h ValidateCouponQueryHandler) Handle(ctx context.Context, query ValidateCouponQuery) (ValidationResult, error) {
	if err := query.Validate(); err != nil {
		return ValidationResult{}, err
	}

	c, err := h.coupons.FindActiveByCode(ctx, query.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return rejected(query.Code(), coupon.Reject(coupon.ReasonNotFound, "coupon not found")), nil
	}
	if err != nil {
		return ValidationResult{}, err
	}

	var prior, used int64
	if query.CustomerID() != "" || query.Phone() != "" {
		prior, err = h.orders.CountByCustomer(ctx, query.CustomerID(), query.Phone(), kernel.UUID{})
		if err != nil {
			return ValidationResult{}, err
		}
		if used, err = h.coupons.CountUsages(ctx, c.ID(), query.CustomerID(), query.Phone()); err != nil {
			return ValidationResult{}, err
		}
	}

	if rejection := services.NewCouponPolicy().Check(c, services.Redemption{
		CustomerID:             query.CustomerID(),
		Phone:                  query.Phone(),
		OrderValue:             query.OrderValue(),
		Lines:                  query.Lines(),
		CustomerHasPriorOrders: prior > 0,
		CustomerUsageCount:     int(used),
		Now:                    h.clock.Now(),
	}); rejection != nil {
		return rejected(c.Code(), rejection), nil
	}

	result := ValidationResult{Valid: true, Code: c.Code(), DiscountType: c.DiscountType()}
	if value := query.OrderValue(); value != nil {
		result.Discount = services.NewDiscountCalculator().Calculate(c, *value, query.Lines())
	}
	return result, nil
}

func rejected(code string, r *coupon.Rejection) ValidationResult {
	return ValidationResult{Code: code, Reason: r.Reason, Message: r.Message}
}
