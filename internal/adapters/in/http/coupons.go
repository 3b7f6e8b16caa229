package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateCoupon handles POST /api/v1/coupons.
func (s *Server) CreateCoupon(c echo.Context) error {
	var req NewCoupon
	if ok, err := bind(c, &req); !ok {
		return err
	}

	def := coupon.Definition{
		Code:                  req.Code,
		DiscountType:          coupon.DiscountType(req.DiscountType),
		Value:                 req.Value,
		UsageType:             coupon.UsageType(req.UsageType),
		MaxUsageCount:         req.MaxUsageCount,
		MaxUsagePerUser:       req.MaxUsagePerUser,
		Eligibility:           coupon.Eligibility(req.Eligibility),
		EligibleUserIDs:       req.EligibleUserIDs,
		EligiblePhones:        req.EligiblePhones,
		ApplicableProducts:    req.ApplicableProducts,
		ExcludedProducts:      req.ExcludedProducts,
		MinimumOrderValue:     req.MinimumOrderValue,
		MaximumDiscountAmount: req.MaximumDiscountAmount,
		ValidFrom:             req.ValidFrom,
	}
	if def.ValidFrom.IsZero() {
		def.ValidFrom = time.Now().UTC()
	}
	if req.ValidUntil != nil {
		def.ValidUntil = *req.ValidUntil
	}

	cmd, err := commands.NewCreateCouponCommand(def)
	if err != nil {
		return badRequest(c, "Invalid coupon", err)
	}

	id, err := s.h.CreateCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err, "Failed to create coupon")
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id.String(), "code": coupon.NormalizeCode(req.Code)})
}

// ValidateCoupon handles POST /api/v1/coupons/validate. A refused coupon is
// still a 200; the body says why.
func (s *Server) ValidateCoupon(c echo.Context) error {
	var req CouponCheck
	if ok, err := bind(c, &req); !ok {
		return err
	}

	lines := make([]coupon.Line, len(req.Items))
	for i, it := range req.Items {
		lines[i] = coupon.Line(it)
	}

	query, err := queries.NewValidateCouponQuery(req.Code, req.CustomerID, req.Phone, req.OrderValue, lines)
	if err != nil {
		return badRequest(c, "Invalid coupon check", err)
	}

	result, err := s.h.ValidateCoupon.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err, "Failed to validate coupon")
	}

	return c.JSON(http.StatusOK, CouponCheckResult{
		Valid:        result.Valid,
		Code:         result.Code,
		DiscountType: string(result.DiscountType),
		Discount:     result.Discount,
		Reason:       string(result.Reason),
		Message:      result.Message,
	})
}

// RedeemCoupon handles POST /api/v1/coupons/redeem for an order that was
// created without a coupon. A refused coupon is a 422 with the reason.
func (s *Server) RedeemCoupon(c echo.Context) error {
	var req CouponRedemption
	if ok, err := bind(c, &req); !ok {
		return err
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(c, "Invalid order id", err)
	}

	lines := make([]coupon.Line, len(req.Items))
	for i, it := range req.Items {
		lines[i] = coupon.Line(it)
	}

	cmd, err := commands.NewRedeemCouponCommand(req.Code, orderID, req.CustomerID, req.Phone, req.OrderValue, lines)
	if err != nil {
		return badRequest(c, "Invalid coupon redemption", err)
	}

	result, err := s.h.RedeemCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err, "Failed to redeem coupon")
	}

	status := http.StatusOK
	if !result.Applied {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, CouponRedemptionResult{
		Applied:      result.Applied,
		Code:         result.Code,
		DiscountType: string(result.DiscountType),
		Discount:     result.Discount,
		Reason:       string(result.Reason),
		Message:      result.Message,
	})
}
