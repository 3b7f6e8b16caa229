package couponrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CouponDTO allows one active coupon per code; deactivated codes may be reused.
type CouponDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code                  string          `gorm:"not null;index:idx_coupons_active_code,unique,where:is_active"`
	DiscountType          string          `gorm:"not null"`
	Value                 decimal.Decimal `gorm:"type:numeric(12,2)"`
	UsageType             string          `gorm:"not null"`
	MaxUsageCount         *int
	MaxUsagePerUser       *int
	Eligibility           string
	EligibleUserIDs       datatypes.JSONSlice[string]
	EligiblePhones        datatypes.JSONSlice[string]
	ApplicableProducts    datatypes.JSONSlice[string]
	ExcludedProducts      datatypes.JSONSlice[string]
	MinimumOrderValue     decimal.Decimal     `gorm:"type:numeric(12,2)"`
	MaximumDiscountAmount decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	ValidFrom             time.Time
	ValidUntil            *time.Time
	CurrentUsageCount     int  `gorm:"not null;default:0"`
	IsActive              bool `gorm:"not null"`
}

func (CouponDTO) TableName() string {
	return "coupons"
}

// CouponUsageDTO is the append-only redemption ledger.
type CouponUsageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CouponID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CouponCode     string
	OrderID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	CustomerID     string          `gorm:"index"`
	Phone          string          `gorm:"index"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2)"`
	OrderValue     decimal.Decimal `gorm:"type:numeric(12,2)"`
	UsedAt         time.Time
}

func (CouponUsageDTO) TableName() string {
	return "coupon_usages"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	s := c.Snapshot()
	def := s.Definition

	dto := CouponDTO{
		ID:                 s.ID.Bytes(),
		Code:               def.Code,
		DiscountType:       string(def.DiscountType),
		Value:              def.Value,
		UsageType:          string(def.UsageType),
		MaxUsageCount:      def.MaxUsageCount,
		MaxUsagePerUser:    def.MaxUsagePerUser,
		Eligibility:        string(def.Eligibility),
		EligibleUserIDs:    nonNil(def.EligibleUserIDs),
		EligiblePhones:     nonNil(def.EligiblePhones),
		ApplicableProducts: nonNil(def.ApplicableProducts),
		ExcludedProducts:   nonNil(def.ExcludedProducts),
		MinimumOrderValue:  def.MinimumOrderValue,
		ValidFrom:          def.ValidFrom,
		CurrentUsageCount:  s.CurrentUsageCount,
		IsActive:           s.IsActive,
	}
	if def.MaximumDiscountAmount != nil {
		dto.MaximumDiscountAmount = decimal.NewNullDecimal(*def.MaximumDiscountAmount)
	}
	if !def.ValidUntil.IsZero() {
		until := def.ValidUntil
		dto.ValidUntil = &until
	}
	return dto
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	def := coupon.Definition{
		Code:               dto.Code,
		DiscountType:       coupon.DiscountType(dto.DiscountType),
		Value:              dto.Value,
		UsageType:          coupon.UsageType(dto.UsageType),
		MaxUsageCount:      dto.MaxUsageCount,
		MaxUsagePerUser:    dto.MaxUsagePerUser,
		Eligibility:        coupon.Eligibility(dto.Eligibility),
		EligibleUserIDs:    dto.EligibleUserIDs,
		EligiblePhones:     dto.EligiblePhones,
		ApplicableProducts: dto.ApplicableProducts,
		ExcludedProducts:   dto.ExcludedProducts,
		MinimumOrderValue:  dto.MinimumOrderValue,
		ValidFrom:          dto.ValidFrom,
	}
	if dto.MaximumDiscountAmount.Valid {
		limit := dto.MaximumDiscountAmount.Decimal
		def.MaximumDiscountAmount = &limit
	}
	if dto.ValidUntil != nil {
		def.ValidUntil = *dto.ValidUntil
	}

	return coupon.Restore(coupon.Snapshot{
		ID:                id,
		Definition:        def,
		CurrentUsageCount: dto.CurrentUsageCount,
		IsActive:          dto.IsActive,
	})
}

func usageFromDomain(u coupon.Usage) CouponUsageDTO {
	return CouponUsageDTO{
		ID:             u.ID.Bytes(),
		CouponID:       u.CouponID.Bytes(),
		CouponCode:     u.CouponCode,
		OrderID:        u.OrderID.Bytes(),
		CustomerID:     u.CustomerID,
		Phone:          u.Phone,
		DiscountAmount: u.DiscountAmount,
		OrderValue:     u.OrderValue,
		UsedAt:         u.UsedAt,
	}
}
