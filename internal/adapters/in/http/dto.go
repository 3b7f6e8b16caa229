package http

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddressDTO struct {
	Name    string `json:"name" validate:"required"`
	Line1   string `json:"line1" validate:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Pincode string `json:"pincode" validate:"required"`
	Country string `json:"country"`
}

type OrderItemDTO struct {
	ProductID string          `json:"productId" validate:"required"`
	SKU       string          `json:"sku" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type PaymentDTO struct {
	Method string `json:"method" validate:"required,oneof=COD Prepaid"`
	Status string `json:"status" validate:"required"`
}

type NewOrder struct {
	CustomerName        string          `json:"customerName"`
	Phone               string          `json:"phone" validate:"required"`
	Address             AddressDTO      `json:"address"`
	Items               []OrderItemDTO  `json:"items" validate:"required,min=1,dive"`
	Payment             PaymentDTO      `json:"payment"`
	ShippingCharges     decimal.Decimal `json:"shippingCharges"`
	CODCharges          decimal.Decimal `json:"codCharges"`
	Taxes               decimal.Decimal `json:"taxes"`
	CouponCode          string          `json:"couponCode"`
	NotificationsOptOut bool            `json:"notificationsOptOut"`
}

type CreatedOrder struct {
	ID                      string          `json:"id"`
	Status                  string          `json:"status"`
	NeedsManualVerification bool            `json:"needsManualVerification"`
	ResolutionReason        string          `json:"resolutionReason,omitempty"`
	Discount                decimal.Decimal `json:"discount"`
	GrandTotal              decimal.Decimal `json:"grandTotal"`
	AutoApproved            bool            `json:"autoApproved"`
	ApprovalReason          string          `json:"approvalReason,omitempty"`
	ApprovalWarnings        []string        `json:"approvalWarnings,omitempty"`
}

type DimensionsDTO struct {
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type ApproveOrder struct {
	ApprovedBy string         `json:"approvedBy" validate:"required"`
	Weight     *float64       `json:"weight" validate:"omitempty,gt=0"`
	Dimensions *DimensionsDTO `json:"dimensions"`
}

type NewShipment struct {
	Carrier   string `json:"carrier" validate:"required"`
	ManualAWB string `json:"manualAwb"`
}

type Shipment struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId"`
	Carrier     string `json:"carrier"`
	AWB         string `json:"awb,omitempty"`
	TrackingURL string `json:"trackingUrl,omitempty"`
	Rule        string `json:"rule,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Transition struct {
	Status string `json:"status" validate:"required"`
	Actor  string `json:"actor" validate:"required"`
}

type AwaitingOrder struct {
	ID                string          `json:"id"`
	Phone             string          `json:"phone"`
	Status            string          `json:"status"`
	PaymentMethod     string          `json:"paymentMethod"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	HasDimensions     bool            `json:"hasDimensions"`
	LastShipmentError string          `json:"lastShipmentError,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type NewCoupon struct {
	Code                  string           `json:"code" validate:"required"`
	DiscountType          string           `json:"discountType" validate:"required,oneof=percentage fixed_amount free_shipping"`
	Value                 decimal.Decimal  `json:"value"`
	UsageType             string           `json:"usageType" validate:"required,oneof=single_use multi_use"`
	MaxUsageCount         *int             `json:"maxUsageCount" validate:"omitempty,gt=0"`
	MaxUsagePerUser       *int             `json:"maxUsagePerUser" validate:"omitempty,gt=0"`
	Eligibility           string           `json:"eligibility" validate:"omitempty,oneof=all specific_users new_users"`
	EligibleUserIDs       []string         `json:"eligibleUserIds"`
	EligiblePhones        []string         `json:"eligiblePhones"`
	ApplicableProducts    []string         `json:"applicableProducts"`
	ExcludedProducts      []string         `json:"excludedProducts"`
	MinimumOrderValue     decimal.Decimal  `json:"minimumOrderValue"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximumDiscountAmount"`
	ValidFrom             time.Time        `json:"validFrom"`
	ValidUntil            *time.Time       `json:"validUntil"`
}

type CouponLineDTO struct {
	ProductID string          `json:"productId" validate:"required"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type CouponCheck struct {
	Code       string           `json:"code" validate:"required"`
	CustomerID string           `json:"customerId"`
	Phone      string           `json:"phone"`
	OrderValue *decimal.Decimal `json:"orderValue"`
	Items      []CouponLineDTO  `json:"items" validate:"dive"`
}

type CouponCheckResult struct {
	Valid        bool            `json:"valid"`
	Code         string          `json:"code"`
	DiscountType string          `json:"discountType,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	Reason       string          `json:"reason,omitempty"`
	Message      string          `json:"message,omitempty"`
}

type CouponRedemption struct {
	Code       string          `json:"code" validate:"required"`
	OrderID    string          `json:"orderId" validate:"required"`
	CustomerID string          `json:"customerId"`
	Phone      string          `json:"phone"`
	OrderValue decimal.Decimal `json:"orderValue"`
	Items      []CouponLineDTO `json:"items" validate:"dive"`
}

type CouponRedemptionResult struct {
	Applied      bool            `json:"applied"`
	Code         string          `json:"code"`
	DiscountType string          `json:"discountType,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	Reason       string          `json:"reason,omitempty"`
	Message      string          `json:"message,omitempty"`
}

type CombinationItemDTO struct {
	ProductID string `json:"productId" validate:"required"`
	SKU       string `json:"sku" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type NewCombination struct {
	Items      []CombinationItemDTO `json:"items" validate:"required,min=1,dive"`
	Weight     float64              `json:"weight" validate:"gt=0"`
	Dimensions DimensionsDTO        `json:"dimensions"`
	VerifiedBy string               `json:"verifiedBy" validate:"required"`
	Notes      string               `json:"notes"`
}

type CombinationLookup struct {
	Items []CombinationItemDTO `json:"items" validate:"required,min=1,dive"`
}

type CombinationUpdate struct {
	Weight     float64       `json:"weight" validate:"gt=0"`
	Dimensions DimensionsDTO `json:"dimensions"`
	UpdatedBy  string        `json:"updatedBy" validate:"required"`
	Notes      string        `json:"notes"`
}

type Combination struct {
	Hash          string               `json:"hash"`
	Items         []CombinationItemDTO `json:"items"`
	Weight        float64              `json:"weight"`
	Dimensions    DimensionsDTO        `json:"dimensions"`
	VerifiedBy    string               `json:"verifiedBy"`
	VerifiedAt    time.Time            `json:"verifiedAt"`
	Notes         string               `json:"notes,omitempty"`
	UsageCount    int                  `json:"usageCount"`
	LastUsedAt    *time.Time           `json:"lastUsedAt,omitempty"`
	IsActive      bool                 `json:"isActive"`
	DeactivatedBy string               `json:"deactivatedBy,omitempty"`
	DeactivatedAt *time.Time           `json:"deactivatedAt,omitempty"`
}

type CombinationStats struct {
	Total         int64  `json:"total"`
	Active        int64  `json:"active"`
	TotalUsage    int64  `json:"totalUsage"`
	MostUsedHash  string `json:"mostUsedHash,omitempty"`
	MostUsedCount int64  `json:"mostUsedCount"`
}

type ApprovalSettings struct {
	MinCustomerAgeDays        int             `json:"minCustomerAgeDays" validate:"gte=0"`
	AllowNewCustomers         bool            `json:"allowNewCustomers"`
	MaxAutoApprovalValue      decimal.Decimal `json:"maxAutoApprovalValue"`
	RequireVerifiedDimensions bool            `json:"requireVerifiedDimensions"`
}
