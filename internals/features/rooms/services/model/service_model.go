package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service billing types.
const (
	ServicePerUnit   = "PER_UNIT"   // metered, e.g. electricity per kWh
	ServicePerPerson = "PER_PERSON" // e.g. water flat rate per renter
	ServicePerRoom   = "PER_ROOM"   // e.g. wifi flat rate per room
)

// ServiceModel is a chargeable utility (electricity, water, wifi, trash...).
type ServiceModel struct {
	ServiceID    uuid.UUID       `gorm:"column:service_id;type:uuid;default:gen_random_uuid();primaryKey" json:"service_id"`
	ServiceName  string          `gorm:"column:service_name;type:varchar(100);not null;unique" json:"service_name" validate:"required"`
	ServicePrice decimal.Decimal `gorm:"column:service_price;type:decimal(20,2);not null" json:"service_price"`
	ServiceUnit  string          `gorm:"column:service_unit;type:varchar(20)" json:"service_unit"` // kWh, m3, month...
	ServiceType  string          `gorm:"column:service_type;type:varchar(20);not null;default:'PER_ROOM'" json:"service_type" validate:"omitempty,oneof=PER_UNIT PER_PERSON PER_ROOM"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (m *ServiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ServiceID == uuid.Nil {
		m.ServiceID = uuid.New()
	}
	return nil
}

func (ServiceModel) TableName() string {
	return "services"
}
