package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill types.
const (
	BillService      = "SERVICE"
	BillContractFull = "CONTRACT_TOTAL"
	BillRoomRent     = "CONTRACT_ROOM_RENT"
	BillCustom       = "CUSTOM"
	BillDeposit      = "DEPOSIT"
	BillLatePenalty  = "LATE_PENALTY"
)

// Payment methods recorded on a paid bill.
const (
	PaymentCash  = "CASH"
	PaymentVNPay = "VNPAY"
)

type BillModel struct {
	BillID uuid.UUID `gorm:"column:bill_id;type:uuid;default:gen_random_uuid();primaryKey" json:"bill_id"`

	// nullable: SERVICE and CUSTOM bills may stand alone
	ContractID *uuid.UUID `gorm:"column:contract_id;type:uuid;index" json:"contract_id,omitempty"`
	LandlordID uuid.UUID  `gorm:"column:landlord_id;type:uuid;not null;index" json:"landlord_id"`
	RenterID   *uuid.UUID `gorm:"column:renter_id;type:uuid;index" json:"renter_id,omitempty"`

	BillType string `gorm:"column:bill_type;type:varchar(30);not null" json:"bill_type" validate:"required,oneof=SERVICE CONTRACT_TOTAL CONTRACT_ROOM_RENT CUSTOM DEPOSIT LATE_PENALTY"`

	FromDate time.Time `gorm:"column:from_date;type:date;not null" json:"from_date"`
	ToDate   time.Time `gorm:"column:to_date;type:date;not null" json:"to_date"`
	DueDate  time.Time `gorm:"column:due_date;type:date;not null" json:"due_date"`

	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:decimal(20,2);not null" json:"total_amount"`
	PaidAmount        decimal.Decimal `gorm:"column:paid_amount;type:decimal(20,2);not null;default:0" json:"paid_amount"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(20,2);not null;default:0" json:"outstanding_amount"`

	Paid bool `gorm:"column:paid;not null;default:false;index" json:"paid"`

	PaymentMethod *string    `gorm:"column:payment_method;type:varchar(20)" json:"payment_method,omitempty"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	// VNPay transaction reference set by the IPN handler
	PaymentRef *string `gorm:"column:payment_ref;type:varchar(100)" json:"payment_ref,omitempty"`

	Note string `gorm:"column:note;type:text" json:"note"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Details []BillDetailModel `gorm:"foreignKey:BillID;references:BillID" json:"details,omitempty"`
}

func (BillModel) TableName() string {
	return "bills"
}

// BillDetailModel is one line item on a bill, e.g. "electricity 120 kWh".
type BillDetailModel struct {
	BillDetailID uuid.UUID  `gorm:"column:bill_detail_id;type:uuid;default:gen_random_uuid();primaryKey" json:"bill_detail_id"`
	BillID       uuid.UUID  `gorm:"column:bill_id;type:uuid;not null;index" json:"bill_id"`
	ServiceID    *uuid.UUID `gorm:"column:service_id;type:uuid" json:"service_id,omitempty"`

	ItemName  string          `gorm:"column:item_name;type:varchar(100);not null" json:"item_name" validate:"required"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:decimal(20,3);not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(20,2);not null" json:"unit_price"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BillDetailModel) TableName() string {
	return "bill_details"
}

/* =========================
   Hooks: app-side uuid defaults
   ========================= */

func (m *BillModel) BeforeCreate(tx *gorm.DB) error {
	if m.BillID == uuid.Nil {
		m.BillID = uuid.New()
	}
	return nil
}

func (m *BillDetailModel) BeforeCreate(tx *gorm.DB) error {
	if m.BillDetailID == uuid.Nil {
		m.BillDetailID = uuid.New()
	}
	return nil
}
