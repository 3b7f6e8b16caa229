// Package outboxrepo stores customer notifications until the dispatch job
// sends them.
package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending     = "pending"
	StatusDispatching = "dispatching"
	StatusSent        = "sent"
	StatusFailed      = "failed"
	StatusSkipped     = "skipped"
)

type NotificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind         string    `gorm:"not null"`
	Phone        string
	Payload      datatypes.JSONType[map[string]string]
	OptedOut     bool
	Status       string `gorm:"index;not null"`
	Attempts     int
	MessageID    string
	LastError    string
	CreatedAt    time.Time `gorm:"autoCreateTime:false;index"`
	DispatchedAt *time.Time
}

func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

type GormNotificationOutbox struct {
	db *gorm.DB
}

func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

// Enqueue stores n. Opted-out notifications are stored as skipped.
func (r *GormNotificationOutbox) Enqueue(ctx context.Context, n ports.Notification) error {
	if err := n.ID.Validate(); err != nil {
		return err
	}

	status := StatusPending
	if n.OptedOut {
		status = StatusSkipped
	}

	dto := NotificationDTO{
		ID:        n.ID.Bytes(),
		OrderID:   n.OrderID.Bytes(),
		Kind:      string(n.Kind),
		Phone:     n.Phone,
		Payload:   datatypes.NewJSONType(n.Data),
		OptedOut:  n.OptedOut,
		Status:    status,
		CreatedAt: n.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormNotificationOutbox) ClaimPending(ctx context.Context, limit int) ([]ports.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).Raw(`
		UPDATE notification_outbox
		SET status = ?, attempts = attempts + 1
		WHERE id IN (
			SELECT id
			FROM notification_outbox
			WHERE status = ?
			ORDER BY created_at, id
			LIMIT ?
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *
	`, StatusDispatching, StatusPending, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, convErr := toNotification(dto)
		if convErr != nil {
			return nil, convErr
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *GormNotificationOutbox) MarkSent(ctx context.Context, id kernel.UUID, messageID string, at time.Time) error {
	return r.mark(ctx, id, map[string]any{
		"status":        StatusSent,
		"message_id":    messageID,
		"dispatched_at": at,
	})
}

func (r *GormNotificationOutbox) MarkFailed(ctx context.Context, id kernel.UUID, reason string, at time.Time) error {
	return r.mark(ctx, id, map[string]any{
		"status":        StatusFailed,
		"last_error":    reason,
		"dispatched_at": at,
	})
}

func (r *GormNotificationOutbox) mark(ctx context.Context, id kernel.UUID, columns map[string]any) error {
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), StatusDispatching).
		UpdateColumns(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toNotification(dto NotificationDTO) (ports.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Notification{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.Notification{}, err
	}

	return ports.Notification{
		ID:        id,
		OrderID:   orderID,
		Kind:      ports.NotificationKind(dto.Kind),
		Phone:     dto.Phone,
		Data:      dto.Payload.Data(),
		OptedOut:  dto.OptedOut,
		CreatedAt: dto.CreatedAt,
	}, nil
}
