package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/billing/billingcycle"
	"nhatro_backend/internals/features/billing/bills/dto"
	"nhatro_backend/internals/features/billing/bills/model"
	contractModel "nhatro_backend/internals/features/contracts/contract/model"
)

var (
	ErrBillNotFound    = fiber.NewError(fiber.StatusNotFound, "Bill not found")
	ErrBillPaid        = fiber.NewError(fiber.StatusConflict, "Bill is already paid")
	ErrPeriodOverlap   = fiber.NewError(fiber.StatusConflict, "Requested period overlaps an existing bill for this contract")
	ErrContractMissing = fiber.NewError(fiber.StatusNotFound, "Contract not found")
	ErrBillDates       = fiber.NewError(fiber.StatusBadRequest, "from_date must not be after to_date")
)

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return billingcycle.Civil(t), nil
}

// CreateBill persists a bill with its line items.
//
// For contract bills the period is checked hard against the contract
// bounds; rent bills are additionally checked hard against range
// overlap with the contract's existing rent bills. The cycle-length
// deviation is advisory only and comes back as a CycleCheck for the
// caller to surface.
func CreateBill(db *gorm.DB, landlordID uuid.UUID, req *dto.CreateBillRequest) (*model.BillModel, *billingcycle.CycleCheck, error) {
	from, err := parseDate(req.FromDate)
	if err != nil {
		return nil, nil, ErrBillDates
	}
	to, err := parseDate(req.ToDate)
	if err != nil {
		return nil, nil, ErrBillDates
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid due_date")
	}
	if from.After(to) {
		return nil, nil, ErrBillDates
	}

	var cycleCheck *billingcycle.CycleCheck
	var contract *contractModel.ContractModel

	if req.ContractID != nil {
		contract = &contractModel.ContractModel{}
		if err := db.First(contract, "contract_id = ? AND landlord_id = ?", *req.ContractID, landlordID).Error; err != nil {
			return nil, nil, ErrContractMissing
		}

		if err := billingcycle.ValidateBounds(from, to, contract.ContractStartDate, contract.ContractEndDate); err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Double billing only concerns rent periods. Service or deposit
		// bills may share a period with the rent bill for the same month.
		if req.BillType == model.BillContractFull || req.BillType == model.BillRoomRent {
			var existing []model.BillModel
			if err := db.Select("from_date", "to_date").
				Where("contract_id = ? AND bill_type IN ?", *req.ContractID,
					[]string{model.BillContractFull, model.BillRoomRent}).
				Find(&existing).Error; err != nil {
				return nil, nil, err
			}
			billed := make([]billingcycle.DateRange, 0, len(existing))
			for _, b := range existing {
				billed = append(billed, billingcycle.DateRange{From: b.FromDate, To: b.ToDate})
			}
			if billingcycle.Overlaps(from, to, billed) {
				return nil, nil, ErrPeriodOverlap
			}
		}

		check := billingcycle.CheckCycle(from, to, contractModel.CycleToMonths(contract.PaymentCycle))
		cycleCheck = &check
	}

	details := make([]model.BillDetailModel, 0, len(req.Details))
	total := decimal.Zero
	for _, d := range req.Details {
		qty := d.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		amount := qty.Mul(d.UnitPrice)
		details = append(details, model.BillDetailModel{
			ServiceID: d.ServiceID,
			ItemName:  d.ItemName,
			Quantity:  qty,
			UnitPrice: d.UnitPrice,
			Amount:    amount,
		})
		total = total.Add(amount)
	}

	// rent and deposit bills default their amount from the contract
	if total.IsZero() && contract != nil {
		switch req.BillType {
		case model.BillRoomRent, model.BillContractFull:
			total = contract.RentAmount
		case model.BillDeposit:
			total = contract.DepositAmount
		}
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Bill total must be positive")
	}

	bill := &model.BillModel{
		ContractID:        req.ContractID,
		LandlordID:        landlordID,
		RenterID:          req.RenterID,
		BillType:          req.BillType,
		FromDate:          from,
		ToDate:            to,
		DueDate:           due,
		TotalAmount:       total,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: total,
		Note:              req.Note,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		if len(details) == 0 {
			return nil
		}
		for i := range details {
			details[i].BillID = bill.BillID
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		return nil, nil, err
	}
	bill.Details = details
	return bill, cycleCheck, nil
}

// SettleBill records a payment against a bill. A payment covering the
// outstanding balance marks the bill paid.
func SettleBill(db *gorm.DB, bill *model.BillModel, amount decimal.Decimal, method string, ref *string) error {
	if bill.Paid {
		return ErrBillPaid
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "paid_amount must be positive")
	}

	paid := bill.PaidAmount.Add(amount)
	outstanding := bill.TotalAmount.Sub(paid)
	now := time.Now().UTC()

	updates := map[string]any{
		"paid_amount":        paid,
		"outstanding_amount": outstanding,
		"payment_method":     method,
		"paid_at":            now,
	}
	if ref != nil {
		updates["payment_ref"] = *ref
	}
	if outstanding.LessThanOrEqual(decimal.Zero) {
		updates["paid"] = true
		updates["outstanding_amount"] = decimal.Zero
	}

	if err := db.Model(bill).Updates(updates).Error; err != nil {
		return err
	}
	bill.PaidAmount = paid
	bill.OutstandingAmount = outstanding
	if outstanding.LessThanOrEqual(decimal.Zero) {
		bill.Paid = true
		bill.OutstandingAmount = decimal.Zero
	}
	bill.PaymentMethod = &method
	bill.PaidAt = &now
	bill.PaymentRef = ref
	return nil
}
