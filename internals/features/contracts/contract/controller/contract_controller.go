package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/billing/billingcycle"
	billModel "nhatro_backend/internals/features/billing/bills/model"
	"nhatro_backend/internals/features/contracts/contract/dto"
	"nhatro_backend/internals/features/contracts/contract/model"
	"nhatro_backend/internals/features/contracts/contract/service"
	helper "nhatro_backend/internals/helpers"
)

type ContractController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{DB: db, Validate: validator.New()}
}

var contractFilterFields = map[string]string{
	"status":     "contract_status",
	"room_id":    "room_id",
	"cycle":      "payment_cycle",
	"start_date": "contract_start_date",
	"end_date":   "contract_end_date",
	"rent":       "rent_amount",
}

func httpError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// GET /api/l/contracts
func (ctl *ContractController) List(c *fiber.Ctx) error {
	landlordID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.ContractModel{}).Where("landlord_id = ?", landlordID)
	tx, err = helper.ApplyFilter(tx, c.Query("filter"), contractFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count contracts")
	}

	var rows []model.ContractModel
	if err := tx.Preload("Renters").
		Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch contracts")
	}

	out := make([]dto.ContractResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToContractResponse(&rows[i]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(out)
	return helper.JsonList(c, "OK", out, pagination)
}

// GET /api/l/contracts/:id
func (ctl *ContractController) GetByID(c *fiber.Ctx) error {
	contract, err := ctl.ownedContract(c)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToContractResponse(contract))
}

// POST /api/l/contracts
func (ctl *ContractController) Create(c *fiber.Ctx) error {
	landlordID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	contract, check, err := service.CreateContract(ctl.DB, landlordID, &req)
	if err != nil {
		return httpError(c, err)
	}

	return helper.JsonCreated(c, "Contract created", fiber.Map{
		"contract":    dto.ToContractResponse(contract),
		"cycle_check": check,
	})
}

// PUT /api/l/contracts/:id
// Direct edits are limited to PENDING contracts. Active contracts
// change through amendments only.
func (ctl *ContractController) Update(c *fiber.Ctx) error {
	contract, err := ctl.ownedContract(c)
	if err != nil {
		return httpError(c, err)
	}
	if contract.ContractStatus != model.ContractPending {
		return helper.JsonError(c, fiber.StatusConflict, "Only pending contracts can be edited directly")
	}

	var req dto.UpdateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.ContractEndDate != nil {
		end, perr := time.Parse("2006-01-02", *req.ContractEndDate)
		if perr != nil || !end.After(contract.ContractStartDate) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Contract end date must be after start date")
		}
		updates["contract_end_date"] = billingcycle.Civil(end)
	}
	if req.PaymentCycle != nil {
		updates["payment_cycle"] = *req.PaymentCycle
	}
	if req.RentAmount != nil {
		updates["rent_amount"] = *req.RentAmount
	}
	if req.DepositAmount != nil {
		updates["deposit_amount"] = *req.DepositAmount
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToContractResponse(contract))
	}

	if err := ctl.DB.Model(contract).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update contract")
	}
	if err := ctl.DB.Preload("Renters").First(contract, "contract_id = ?", contract.ContractID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload contract")
	}
	return helper.JsonUpdated(c, "Contract updated", dto.ToContractResponse(contract))
}

// DELETE /api/l/contracts/:id
// Only pending contracts are deletable. Everything later is kept for audit.
func (ctl *ContractController) Delete(c *fiber.Ctx) error {
	contract, err := ctl.ownedContract(c)
	if err != nil {
		return httpError(c, err)
	}
	if contract.ContractStatus != model.ContractPending {
		return helper.JsonError(c, fiber.StatusConflict, "Only pending contracts can be deleted")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contract.ContractID).
			Delete(&model.ContractRenterModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(contract).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete contract")
	}
	return helper.JsonDeleted(c, "Contract deleted", nil)
}

// GET /api/l/contracts/:id/billing-periods
// Walks the contract span in payment-cycle steps and flags periods an
// existing rent bill already covers. An optional ?cycle= override lets the
// form preview a different cycle without saving it.
func (ctl *ContractController) BillingPeriods(c *fiber.Ctx) error {
	contract, err := ctl.ownedContract(c)
	if err != nil {
		return httpError(c, err)
	}

	cycle := contract.PaymentCycle
	if q := c.Query("cycle"); q != "" {
		cycle = q
	}
	cycleMonths := model.CycleToMonths(cycle)
	if !billingcycle.ValidCycle(cycleMonths) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown payment cycle")
	}

	periods, err := billingcycle.Periods(contract.ContractStartDate, contract.ContractEndDate, cycleMonths)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var bills []billModel.BillModel
	if err := ctl.DB.Select("from_date", "to_date").
		Where("contract_id = ? AND bill_type IN ?", contract.ContractID,
			[]string{billModel.BillContractFull, billModel.BillRoomRent}).
		Find(&bills).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch existing bills")
	}
	billed := make([]billingcycle.DateRange, 0, len(bills))
	for _, b := range bills {
		billed = append(billed, billingcycle.DateRange{From: b.FromDate, To: b.ToDate})
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"contract_id":     contract.ContractID,
		"payment_cycle":   cycle,
		"billing_periods": billingcycle.MarkBilled(periods, billed),
	})
}

// POST /api/l/contracts/:id/export
// Fills the contract template AcroForm and streams the PDF back.
func (ctl *ContractController) ExportPDF(c *fiber.Ctx) error {
	contract, err := ctl.ownedContract(c)
	if err != nil {
		return httpError(c, err)
	}

	var templateID *uuid.UUID
	if raw := c.Query("template_id"); raw != "" {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid template id")
		}
		templateID = &id
	}

	pdf, err := service.ExportContractPDF(ctl.DB, contract, templateID)
	if err != nil {
		return httpError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="contract-`+contract.ContractID.String()+`.pdf"`)
	return c.Send(pdf)
}

// POST /api/l/contracts/process-expired
// Manual trigger mirroring what the daily scheduler does.
func (ctl *ContractController) ProcessExpired(c *fiber.Ctx) error {
	n, err := service.ProcessExpired(ctl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process expired contracts")
	}
	return helper.JsonOK(c, "Expired contracts processed", fiber.Map{"expired_count": n})
}

func (ctl *ContractController) ownedContract(c *fiber.Ctx) (*model.ContractModel, error) {
	landlordID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid contract id")
	}

	var contract model.ContractModel
	if err := ctl.DB.Preload("Renters").
		First(&contract, "contract_id = ? AND landlord_id = ?", id, landlordID).Error; err != nil {
		return nil, service.ErrContractNotFound
	}
	return &contract, nil
}
