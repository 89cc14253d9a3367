package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status.
const (
	SchedulePending   = "PENDING"
	ScheduleApproved  = "APPROVED"
	ScheduleRejected  = "REJECTED"
	ScheduleCancelled = "CANCELLED"
)

// ScheduleModel is a room-viewing appointment booked by a renter.
type ScheduleModel struct {
	ScheduleID uuid.UUID `gorm:"column:schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"schedule_id"`
	RoomID     uuid.UUID `gorm:"column:room_id;type:uuid;not null;index" json:"room_id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`

	ScheduledAt time.Time `gorm:"column:scheduled_at;not null" json:"scheduled_at" validate:"required"`
	Note        string    `gorm:"column:note;type:text" json:"note"`

	ScheduleStatus string `gorm:"column:schedule_status;type:varchar(20);not null;default:'PENDING';index" json:"schedule_status"`
	// landlord's message on approval or rejection
	ResponseNote string     `gorm:"column:response_note;type:text" json:"response_note"`
	DecidedAt    *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}

func (m *ScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ScheduleID == uuid.Nil {
		m.ScheduleID = uuid.New()
	}
	return nil
}
