package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Amendment status.
const (
	AmendmentPending  = "PENDING"
	AmendmentApproved = "APPROVED"
	AmendmentRejected = "REJECTED"
)

// Amendment kinds. TERMINATION ends the contract on approval,
// the others rewrite the named term.
const (
	AmendRent        = "RENT"
	AmendEndDate     = "END_DATE"
	AmendCycle       = "PAYMENT_CYCLE"
	AmendTermination = "TERMINATION"
)

// ContractAmendmentModel is a proposed change to an active contract.
// It takes effect only after the counterparty approves it.
type ContractAmendmentModel struct {
	AmendmentID uuid.UUID `gorm:"column:amendment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"amendment_id"`
	ContractID  uuid.UUID `gorm:"column:contract_id;type:uuid;not null;index" json:"contract_id"`

	// who proposed it; approval must come from the other side
	ProposedBy   uuid.UUID `gorm:"column:proposed_by;type:uuid;not null" json:"proposed_by"`
	ProposedRole string    `gorm:"column:proposed_role;type:varchar(20);not null" json:"proposed_role"`

	AmendmentType string `gorm:"column:amendment_type;type:varchar(20);not null" json:"amendment_type" validate:"required,oneof=RENT END_DATE PAYMENT_CYCLE TERMINATION"`

	NewRentAmount   *decimal.Decimal `gorm:"column:new_rent_amount;type:decimal(20,2)" json:"new_rent_amount,omitempty"`
	NewEndDate      *time.Time       `gorm:"column:new_end_date;type:date" json:"new_end_date,omitempty"`
	NewPaymentCycle *string          `gorm:"column:new_payment_cycle;type:varchar(20)" json:"new_payment_cycle,omitempty"`

	Reason string `gorm:"column:reason;type:text" json:"reason"`

	AmendmentStatus string     `gorm:"column:amendment_status;type:varchar(20);not null;default:'PENDING';index" json:"amendment_status"`
	DecidedBy       *uuid.UUID `gorm:"column:decided_by;type:uuid" json:"decided_by,omitempty"`
	DecidedAt       *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContractAmendmentModel) TableName() string {
	return "contract_amendments"
}

func (m *ContractAmendmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AmendmentID == uuid.Nil {
		m.AmendmentID = uuid.New()
	}
	return nil
}
