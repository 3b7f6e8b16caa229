package settingsrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// approvalSettingsRowID is the id of the single approval settings row.
const approvalSettingsRowID = 1

type ApprovalSettingsDTO struct {
	ID                        int `gorm:"primaryKey;autoIncrement:false"`
	MinCustomerAgeDays        int
	AllowNewCustomers         bool
	MaxAutoApprovalValue      decimal.Decimal `gorm:"type:numeric(12,2)"`
	RequireVerifiedDimensions bool
	UpdatedAt                 time.Time
}

func (ApprovalSettingsDTO) TableName() string {
	return "approval_settings"
}

type GormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) GetApprovalSettings(ctx context.Context) (*settings.ApprovalSettings, error) {
	var dto ApprovalSettingsDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", approvalSettingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("approval settings", approvalSettingsRowID)
		}
		return nil, err
	}

	s, err := settings.NewApprovalSettings(
		dto.MinCustomerAgeDays,
		dto.AllowNewCustomers,
		dto.MaxAutoApprovalValue,
		dto.RequireVerifiedDimensions,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSettingsRepository) SaveApprovalSettings(ctx context.Context, s settings.ApprovalSettings) error {
	dto := ApprovalSettingsDTO{
		ID:                        approvalSettingsRowID,
		MinCustomerAgeDays:        s.MinCustomerAgeDays,
		AllowNewCustomers:         s.AllowNewCustomers,
		MaxAutoApprovalValue:      s.MaxAutoApprovalValue,
		RequireVerifiedDimensions: s.RequireVerifiedDimensions,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto).Error
}
