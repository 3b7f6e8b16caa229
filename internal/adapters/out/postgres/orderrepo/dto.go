package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID          *uuid.UUID `gorm:"type:uuid;index"`
	Phone               string     `gorm:"index;not null"`
	ShippingAddress     datatypes.JSONType[AddressDTO]
	Items               datatypes.JSONSlice[ItemDTO]
	PaymentMethod       string
	PaymentStatus       string
	Subtotal            decimal.Decimal `gorm:"type:numeric(12,2)"`
	Discount            decimal.Decimal `gorm:"type:numeric(12,2)"`
	ShippingCharges     decimal.Decimal `gorm:"type:numeric(12,2)"`
	CODCharges          decimal.Decimal `gorm:"column:cod_charges;type:numeric(12,2)"`
	Taxes               decimal.Decimal `gorm:"type:numeric(12,2)"`
	GrandTotal          decimal.Decimal `gorm:"type:numeric(12,2)"`
	ApprovalStatus      string
	ApprovedBy          string
	ApprovedAt          *time.Time
	Status              int         `gorm:"index"`
	Shipment            ShipmentDTO `gorm:"embedded;embeddedPrefix:shipment_"`
	NeedsTracking       bool
	Weight              *float64
	Length              *float64
	Width               *float64
	Height              *float64
	CouponCode          string
	NotificationsOptOut bool
	Version             int
	ShipmentClaimedAt   *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Name    string `json:"name"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

type ItemDTO struct {
	ProductID   string          `json:"product_id"`
	VariationID string          `json:"variation_id,omitempty"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Weight      *float64        `json:"weight,omitempty"`
	Dimensions  *DimensionsDTO  `json:"dimensions,omitempty"`
	TaxCode     string          `json:"tax_code,omitempty"`
}

type DimensionsDTO struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ShipmentDTO is null in every column until the first carrier attempt;
// AttemptedAt marks its presence.
type ShipmentDTO struct {
	Carrier        string
	Mode           string
	AWB            string `gorm:"index"`
	TrackingURL    string
	RawRequest     datatypes.JSON
	RawResponse    datatypes.JSON
	TrackingStatus string
	LastError      string
	AttemptedAt    *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	var customerID *uuid.UUID
	if s.CustomerID != nil {
		raw := s.CustomerID.Bytes()
		customerID = &raw
	}

	items := make([]ItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		dto := ItemDTO{
			ProductID:   it.ProductID(),
			VariationID: it.VariationID(),
			SKU:         it.SKU(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
			Weight:      it.Weight(),
			TaxCode:     it.TaxCode(),
		}
		if d := it.Dimensions(); d != nil {
			dto.Dimensions = &DimensionsDTO{Length: d.Length(), Width: d.Width(), Height: d.Height()}
		}
		items = append(items, dto)
	}

	dto := OrderDTO{
		ID:                  s.ID.Bytes(),
		CustomerID:          customerID,
		Phone:               s.Phone,
		ShippingAddress:     datatypes.NewJSONType(AddressDTO(s.ShippingAddress)),
		Items:               items,
		PaymentMethod:       string(s.Payment.Method),
		PaymentStatus:       string(s.Payment.Status),
		Subtotal:            s.Pricing.Subtotal,
		Discount:            s.Pricing.Discount,
		ShippingCharges:     s.Pricing.ShippingCharges,
		CODCharges:          s.Pricing.CODCharges,
		Taxes:               s.Pricing.Taxes,
		GrandTotal:          s.Pricing.GrandTotal,
		ApprovalStatus:      string(s.Approval.Status),
		ApprovedBy:          s.Approval.ApprovedBy,
		ApprovedAt:          s.Approval.ApprovedAt,
		Status:              int(s.Status),
		NeedsTracking:       s.NeedsTracking,
		Weight:              s.Weight,
		CouponCode:          s.CouponCode,
		NotificationsOptOut: s.NotificationsOptOut,
		Version:             s.Version,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}

	if s.Dimensions != nil {
		l, w, h := s.Dimensions.Length(), s.Dimensions.Width(), s.Dimensions.Height()
		dto.Length, dto.Width, dto.Height = &l, &w, &h
	}

	if sh := s.Shipment; sh != nil {
		at := sh.AttemptedAt
		dto.Shipment = ShipmentDTO{
			Carrier:        sh.Carrier,
			Mode:           string(sh.Mode),
			AWB:            sh.AWB,
			TrackingURL:    sh.TrackingURL,
			RawRequest:     rawJSON(sh.RawRequest),
			RawResponse:    rawJSON(sh.RawResponse),
			TrackingStatus: sh.TrackingStatus,
			LastError:      sh.LastError,
			AttemptedAt:    &at,
		}
	}

	return dto
}

// rawJSON stores a carrier payload that is not JSON as a JSON string.
func rawJSON(b []byte) datatypes.JSON {
	if len(b) == 0 {
		return nil
	}
	if json.Valid(b) {
		return datatypes.JSON(b)
	}
	quoted, _ := json.Marshal(string(b))
	return quoted
}

// fromRawJSON undoes the NULL to "null" mapping datatypes.JSON does on scan.
func fromRawJSON(j datatypes.JSON) []byte {
	if len(j) == 0 || string(j) == "null" {
		return nil
	}
	return []byte(j)
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		var dims *kernel.Dimensions
		if it.Dimensions != nil {
			d, dimErr := kernel.NewDimensions(it.Dimensions.Length, it.Dimensions.Width, it.Dimensions.Height)
			if dimErr != nil {
				return nil, dimErr
			}
			dims = &d
		}
		items = append(items, order.RestoreItem(
			it.ProductID, it.VariationID, it.SKU, it.Quantity, it.UnitPrice, it.Weight, dims, it.TaxCode,
		))
	}

	var dims *kernel.Dimensions
	if dto.Length != nil && dto.Width != nil && dto.Height != nil {
		d, dimErr := kernel.NewDimensions(*dto.Length, *dto.Width, *dto.Height)
		if dimErr != nil {
			return nil, dimErr
		}
		dims = &d
	}

	var shipment *order.ShipmentInfo
	if sh := dto.Shipment; sh.AttemptedAt != nil {
		shipment = &order.ShipmentInfo{
			Carrier:        sh.Carrier,
			Mode:           order.ShipmentMode(sh.Mode),
			AWB:            sh.AWB,
			TrackingURL:    sh.TrackingURL,
			RawRequest:     fromRawJSON(sh.RawRequest),
			RawResponse:    fromRawJSON(sh.RawResponse),
			TrackingStatus: sh.TrackingStatus,
			LastError:      sh.LastError,
			AttemptedAt:    *sh.AttemptedAt,
		}
	}

	return order.Restore(order.Snapshot{
		ID:              id,
		CustomerID:      customerID,
		Phone:           dto.Phone,
		ShippingAddress: order.Address(dto.ShippingAddress.Data()),
		Items:           items,
		Payment: order.Payment{
			Method: order.PaymentMethod(dto.PaymentMethod),
			Status: order.PaymentStatus(dto.PaymentStatus),
		},
		Pricing: order.Pricing{
			Subtotal:        dto.Subtotal,
			Discount:        dto.Discount,
			ShippingCharges: dto.ShippingCharges,
			CODCharges:      dto.CODCharges,
			Taxes:           dto.Taxes,
			GrandTotal:      dto.GrandTotal,
		},
		Approval: order.Approval{
			Status:     order.ApprovalStatus(dto.ApprovalStatus),
			ApprovedBy: dto.ApprovedBy,
			ApprovedAt: dto.ApprovedAt,
		},
		Status:              order.Status(dto.Status),
		Shipment:            shipment,
		NeedsTracking:       dto.NeedsTracking,
		Weight:              dto.Weight,
		Dimensions:          dims,
		CouponCode:          dto.CouponCode,
		NotificationsOptOut: dto.NotificationsOptOut,
		Version:             dto.Version,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	})
}
