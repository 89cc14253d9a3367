package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset conditions.
const (
	AssetGood    = "GOOD"
	AssetWorn    = "WORN"
	AssetBroken  = "BROKEN"
	AssetMissing = "MISSING"
)

// AssetModel is a furnishing item belonging to a room.
type AssetModel struct {
	AssetID        uuid.UUID       `gorm:"column:asset_id;type:uuid;default:gen_random_uuid();primaryKey" json:"asset_id"`
	RoomID         uuid.UUID       `gorm:"column:room_id;type:uuid;not null;index" json:"room_id" validate:"required"`
	AssetName      string          `gorm:"column:asset_name;type:varchar(100);not null" json:"asset_name" validate:"required"`
	AssetQuantity  int             `gorm:"column:asset_quantity;not null;default:1" json:"asset_quantity" validate:"omitempty,gt=0"`
	AssetCondition string          `gorm:"column:asset_condition;type:varchar(20);not null;default:'GOOD'" json:"asset_condition" validate:"omitempty,oneof=GOOD WORN BROKEN MISSING"`
	AssetPrice     decimal.Decimal `gorm:"column:asset_price;type:decimal(20,2)" json:"asset_price"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (AssetModel) TableName() string {
	return "assets"
}

func (m *AssetModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssetID == uuid.Nil {
		m.AssetID = uuid.New()
	}
	return nil
}
