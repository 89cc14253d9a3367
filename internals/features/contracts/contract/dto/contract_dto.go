package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nhatro_backend/internals/features/contracts/contract/model"
)

type CreateContractRequest struct {
	RoomID            uuid.UUID       `json:"room_id" validate:"required"`
	RenterIDs         []uuid.UUID     `json:"renter_ids" validate:"required,min=1,dive,required"`
	ContractStartDate string          `json:"contract_start_date" validate:"required,datetime=2006-01-02"`
	ContractEndDate   string          `json:"contract_end_date" validate:"required,datetime=2006-01-02"`
	PaymentCycle      string          `json:"payment_cycle" validate:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	RentAmount        decimal.Decimal `json:"rent_amount" validate:"required"`
	DepositAmount     decimal.Decimal `json:"deposit_amount"`
}

type UpdateContractRequest struct {
	ContractEndDate *string          `json:"contract_end_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentCycle    *string          `json:"payment_cycle" validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	RentAmount      *decimal.Decimal `json:"rent_amount"`
	DepositAmount   *decimal.Decimal `json:"deposit_amount"`
}

type ProposeAmendmentRequest struct {
	AmendmentType   string           `json:"amendment_type" validate:"required,oneof=RENT END_DATE PAYMENT_CYCLE TERMINATION"`
	NewRentAmount   *decimal.Decimal `json:"new_rent_amount"`
	NewEndDate      *string          `json:"new_end_date" validate:"omitempty,datetime=2006-01-02"`
	NewPaymentCycle *string          `json:"new_payment_cycle" validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	Reason          string           `json:"reason"`
}

type ContractResponse struct {
	ContractID        uuid.UUID       `json:"contract_id"`
	RoomID            uuid.UUID       `json:"room_id"`
	LandlordID        uuid.UUID       `json:"landlord_id"`
	ContractStartDate string          `json:"contract_start_date"`
	ContractEndDate   string          `json:"contract_end_date"`
	PaymentCycle      string          `json:"payment_cycle"`
	RentAmount        decimal.Decimal `json:"rent_amount"`
	DepositAmount     decimal.Decimal `json:"deposit_amount"`
	ContractStatus    string          `json:"contract_status"`
	TerminatedAt      *time.Time      `json:"terminated_at,omitempty"`
	RenterIDs         []uuid.UUID     `json:"renter_ids"`
	CreatedAt         time.Time       `json:"created_at"`
}

func ToContractResponse(m *model.ContractModel) ContractResponse {
	renterIDs := make([]uuid.UUID, 0, len(m.Renters))
	for _, r := range m.Renters {
		renterIDs = append(renterIDs, r.UserID)
	}
	return ContractResponse{
		ContractID:        m.ContractID,
		RoomID:            m.RoomID,
		LandlordID:        m.LandlordID,
		ContractStartDate: m.ContractStartDate.Format("2006-01-02"),
		ContractEndDate:   m.ContractEndDate.Format("2006-01-02"),
		PaymentCycle:      m.PaymentCycle,
		RentAmount:        m.RentAmount,
		DepositAmount:     m.DepositAmount,
		ContractStatus:    m.ContractStatus,
		TerminatedAt:      m.TerminatedAt,
		RenterIDs:         renterIDs,
		CreatedAt:         m.CreatedAt,
	}
}
