package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contract status.
const (
	ContractPending    = "PENDING"    // waiting for renter acceptance
	ContractActive     = "ACTIVE"     // accepted, in force
	ContractTerminated = "TERMINATED" // ended early by agreement
	ContractExpired    = "EXPIRED"    // past end date
)

// Payment cycles map to whole month counts.
const (
	CycleMonthly   = "MONTHLY"
	CycleQuarterly = "QUARTERLY"
	CycleYearly    = "YEARLY"
)

// CycleToMonths returns the month count for a payment cycle, 0 if unknown.
func CycleToMonths(cycle string) int {
	switch cycle {
	case CycleMonthly:
		return 1
	case CycleQuarterly:
		return 3
	case CycleYearly:
		return 12
	}
	return 0
}

type ContractModel struct {
	ContractID uuid.UUID `gorm:"column:contract_id;type:uuid;default:gen_random_uuid();primaryKey" json:"contract_id"`

	RoomID     uuid.UUID `gorm:"column:room_id;type:uuid;not null;index" json:"room_id"`
	LandlordID uuid.UUID `gorm:"column:landlord_id;type:uuid;not null;index" json:"landlord_id"`

	ContractStartDate time.Time `gorm:"column:contract_start_date;type:date;not null" json:"contract_start_date"`
	ContractEndDate   time.Time `gorm:"column:contract_end_date;type:date;not null" json:"contract_end_date"`

	PaymentCycle string `gorm:"column:payment_cycle;type:varchar(20);not null;default:'MONTHLY'" json:"payment_cycle" validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`

	RentAmount    decimal.Decimal `gorm:"column:rent_amount;type:decimal(20,2);not null" json:"rent_amount"`
	DepositAmount decimal.Decimal `gorm:"column:deposit_amount;type:decimal(20,2);not null;default:0" json:"deposit_amount"`

	ContractStatus string `gorm:"column:contract_status;type:varchar(20);not null;default:'PENDING';index" json:"contract_status" validate:"omitempty,oneof=PENDING ACTIVE TERMINATED EXPIRED"`

	TerminatedAt *time.Time `gorm:"column:terminated_at" json:"terminated_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Renters []ContractRenterModel `gorm:"foreignKey:ContractID;references:ContractID" json:"renters,omitempty"`
}

func (ContractModel) TableName() string {
	return "contracts"
}

// ContractRenterModel links a contract to one renter account.
// A contract may carry several renters sharing the room.
type ContractRenterModel struct {
	ContractRenterID uuid.UUID `gorm:"column:contract_renter_id;type:uuid;default:gen_random_uuid();primaryKey" json:"contract_renter_id"`
	ContractID       uuid.UUID `gorm:"column:contract_id;type:uuid;not null;uniqueIndex:uq_contract_renters_pair" json:"contract_id"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_contract_renters_pair" json:"user_id"`

	// set when this renter accepts the pending contract
	AcceptedAt *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContractRenterModel) TableName() string {
	return "contract_renters"
}

/* =========================
   Hooks: app-side uuid defaults
   ========================= */

func (m *ContractModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContractID == uuid.Nil {
		m.ContractID = uuid.New()
	}
	return nil
}

func (m *ContractRenterModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContractRenterID == uuid.Nil {
		m.ContractRenterID = uuid.New()
	}
	return nil
}
