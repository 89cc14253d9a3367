package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillDetailInput struct {
	ServiceID *uuid.UUID      `json:"service_id"`
	ItemName  string          `json:"item_name" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateBillRequest struct {
	ContractID *uuid.UUID        `json:"contract_id"`
	RenterID   *uuid.UUID        `json:"renter_id"`
	BillType   string            `json:"bill_type" validate:"required,oneof=SERVICE CONTRACT_TOTAL CONTRACT_ROOM_RENT CUSTOM DEPOSIT LATE_PENALTY"`
	FromDate   string            `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate     string            `json:"to_date" validate:"required,datetime=2006-01-02"`
	DueDate    string            `json:"due_date" validate:"required,datetime=2006-01-02"`
	Note       string            `json:"note"`
	Details    []BillDetailInput `json:"details" validate:"omitempty,dive"`
}

type ConfirmCashPaymentRequest struct {
	PaidAmount decimal.Decimal `json:"paid_amount" validate:"required"`
}
