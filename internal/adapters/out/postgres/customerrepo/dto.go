package customerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CustomerDTO is keyed by Key: the generated id for current records, the bare
// phone number for legacy ones.
type CustomerDTO struct {
	Key          string    `gorm:"primaryKey"`
	ID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Phone        string    `gorm:"index;not null"`
	Name         string
	TotalOrders  int
	TotalSpent   decimal.Decimal `gorm:"type:numeric(14,2)"`
	RefundsCount int
	TrustScore   int
	LoyaltyTier  string
	IsDubious    bool
	Addresses    datatypes.JSONSlice[AddressDTO]
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	LastOrderAt  *time.Time
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type AddressDTO struct {
	Label   string `json:"label,omitempty"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

func fromDomain(c *customer.Customer) CustomerDTO {
	s := c.Snapshot()

	addresses := make([]AddressDTO, 0, len(s.Addresses))
	for _, a := range s.Addresses {
		addresses = append(addresses, AddressDTO(a))
	}

	return CustomerDTO{
		Key:          s.Key,
		ID:           s.ID.Bytes(),
		Phone:        s.Phone,
		Name:         s.Name,
		TotalOrders:  s.TotalOrders,
		TotalSpent:   s.TotalSpent,
		RefundsCount: s.RefundsCount,
		TrustScore:   s.TrustScore,
		LoyaltyTier:  string(s.LoyaltyTier),
		IsDubious:    s.IsDubious,
		Addresses:    addresses,
		CreatedAt:    s.CreatedAt,
		LastOrderAt:  s.LastOrderAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	addresses := make([]customer.Address, 0, len(dto.Addresses))
	for _, a := range dto.Addresses {
		addresses = append(addresses, customer.Address(a))
	}

	return customer.Restore(customer.Snapshot{
		ID:           id,
		Key:          dto.Key,
		Phone:        dto.Phone,
		Name:         dto.Name,
		TotalOrders:  dto.TotalOrders,
		TotalSpent:   dto.TotalSpent,
		RefundsCount: dto.RefundsCount,
		TrustScore:   dto.TrustScore,
		LoyaltyTier:  customer.LoyaltyTier(dto.LoyaltyTier),
		IsDubious:    dto.IsDubious,
		Addresses:    addresses,
		CreatedAt:    dto.CreatedAt,
		LastOrderAt:  dto.LastOrderAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
