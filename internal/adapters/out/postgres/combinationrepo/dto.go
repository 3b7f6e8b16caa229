package combinationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/combination"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/datatypes"
)

type CombinationDTO struct {
	Hash          string `gorm:"primaryKey"`
	Items         datatypes.JSONSlice[ItemDTO]
	Weight        float64
	Length        float64
	Width         float64
	Height        float64
	VerifiedBy    string
	VerifiedAt    time.Time
	Notes         string
	UsageCount    int `gorm:"not null;default:0;index"`
	LastUsedAt    *time.Time
	IsActive      bool `gorm:"not null;index"`
	UpdatedBy     string
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	DeactivatedBy string
	DeactivatedAt *time.Time
}

func (CombinationDTO) TableName() string {
	return "verified_combinations"
}

type ItemDTO struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
}

func fromDomain(c *combination.VerifiedCombination) CombinationDTO {
	s := c.Snapshot()

	items := make([]ItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemDTO(it))
	}

	return CombinationDTO{
		Hash:          s.Hash,
		Items:         items,
		Weight:        s.Weight,
		Length:        s.Dimensions.Length(),
		Width:         s.Dimensions.Width(),
		Height:        s.Dimensions.Height(),
		VerifiedBy:    s.VerifiedBy,
		VerifiedAt:    s.VerifiedAt,
		Notes:         s.Notes,
		UsageCount:    s.UsageCount,
		LastUsedAt:    s.LastUsedAt,
		IsActive:      s.IsActive,
		UpdatedBy:     s.UpdatedBy,
		UpdatedAt:     s.UpdatedAt,
		DeactivatedBy: s.DeactivatedBy,
		DeactivatedAt: s.DeactivatedAt,
	}
}

func toDomain(dto CombinationDTO) (*combination.VerifiedCombination, error) {
	dims, err := kernel.NewDimensions(dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}

	items := make([]combination.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, combination.Item(it))
	}

	return combination.Restore(combination.Snapshot{
		Hash:          dto.Hash,
		Items:         items,
		Weight:        dto.Weight,
		Dimensions:    dims,
		VerifiedBy:    dto.VerifiedBy,
		VerifiedAt:    dto.VerifiedAt,
		Notes:         dto.Notes,
		UsageCount:    dto.UsageCount,
		LastUsedAt:    dto.LastUsedAt,
		IsActive:      dto.IsActive,
		UpdatedBy:     dto.UpdatedBy,
		UpdatedAt:     dto.UpdatedAt,
		DeactivatedBy: dto.DeactivatedBy,
		DeactivatedAt: dto.DeactivatedAt,
	})
}
