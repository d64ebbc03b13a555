package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
)

// Notification is a persisted user-facing toast message.
type Notification struct {
	ID        uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID                  `gorm:"column:user_id;type:uuid;not null;index:notifications_user_id_idx"`
	Title     string                     `gorm:"column:title;not null"`
	Body      string                     `gorm:"column:body;not null"`
	Severity  enums.NotificationSeverity `gorm:"column:severity;not null"`
	ReadAt    *time.Time                 `gorm:"column:read_at"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
