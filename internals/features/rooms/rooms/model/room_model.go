package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Room statuses.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

type RoomModel struct {
	RoomID           uuid.UUID       `gorm:"column:room_id;type:uuid;default:gen_random_uuid();primaryKey" json:"room_id"`
	RoomNumber       string          `gorm:"column:room_number;type:varchar(50);not null;uniqueIndex:uq_rooms_number_floor" json:"room_number" validate:"required"`
	RoomFloor        int             `gorm:"column:room_floor;not null;default:1;uniqueIndex:uq_rooms_number_floor" json:"room_floor"`
	RoomArea         float64         `gorm:"column:room_area" json:"room_area" validate:"omitempty,gt=0"`
	RoomMaxOccupancy int             `gorm:"column:room_max_occupancy;not null;default:1" json:"room_max_occupancy" validate:"omitempty,gt=0"`
	RoomRentPrice    decimal.Decimal `gorm:"column:room_rent_price;type:decimal(20,2);not null" json:"room_rent_price"`
	RoomStatus       string          `gorm:"column:room_status;type:varchar(20);not null;default:'AVAILABLE'" json:"room_status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
	RoomDescription  string          `gorm:"column:room_description;type:text" json:"room_description"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	return nil
}
