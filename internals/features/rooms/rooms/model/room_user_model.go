package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomUserModel links a renter account to the room they live in.
type RoomUserModel struct {
	RoomUserID uuid.UUID `gorm:"column:room_user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"room_user_id"`
	RoomID     uuid.UUID `gorm:"column:room_id;type:uuid;not null;uniqueIndex:uq_room_users_pair" json:"room_id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_room_users_pair" json:"user_id"`
	JoinedAt   time.Time `gorm:"column:joined_at;not null;default:now()" json:"joined_at"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (RoomUserModel) TableName() string {
	return "room_users"
}

func (m *RoomUserModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomUserID == uuid.Nil {
		m.RoomUserID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
