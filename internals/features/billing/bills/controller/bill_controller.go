package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/billing/bills/dto"
	"nhatro_backend/internals/features/billing/bills/model"
	"nhatro_backend/internals/features/billing/bills/service"
	helper "nhatro_backend/internals/helpers"
)

type BillController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{DB: db, Validate: validator.New()}
}

var billFilterFields = map[string]string{
	"type":        "bill_type",
	"paid":        "paid",
	"contract_id": "contract_id",
	"from_date":   "from_date",
	"to_date":     "to_date",
	"due_date":    "due_date",
	"total":       "total_amount",
}

func httpError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// GET /api/l/bills
func (ctl *BillController) List(c *fiber.Ctx) error {
	landlordID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.BillModel{}).Where("landlord_id = ?", landlordID)
	tx, err = helper.ApplyFilter(tx, c.Query("filter"), billFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count bills")
	}

	var rows []model.BillModel
	if err := tx.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bills")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(rows)
	return helper.JsonList(c, "OK", rows, pagination)
}

// GET /api/l/bills/:id
func (ctl *BillController) GetByID(c *fiber.Ctx) error {
	bill, err := ctl.ownedBill(c)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "OK", bill)
}

// POST /api/l/bills
func (ctl *BillController) Create(c *fiber.Ctx) error {
	landlordID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	bill, check, err := service.CreateBill(ctl.DB, landlordID, &req)
	if err != nil {
		return httpError(c, err)
	}

	return helper.JsonCreated(c, "Bill created", fiber.Map{
		"bill":        bill,
		"cycle_check": check,
	})
}

// DELETE /api/l/bills/:id
// Paid bills are never deletable.
func (ctl *BillController) Delete(c *fiber.Ctx) error {
	bill, err := ctl.ownedBill(c)
	if err != nil {
		return httpError(c, err)
	}
	if bill.Paid {
		return httpError(c, service.ErrBillPaid)
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.BillID).Delete(&model.BillDetailModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(bill).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete bill")
	}
	return helper.JsonDeleted(c, "Bill deleted", nil)
}

// POST /api/l/bills/:id/confirm-cash
func (ctl *BillController) ConfirmCash(c *fiber.Ctx) error {
	bill, err := ctl.ownedBill(c)
	if err != nil {
		return httpError(c, err)
	}

	var req dto.ConfirmCashPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := service.SettleBill(ctl.DB, bill, req.PaidAmount, model.PaymentCash, nil); err != nil {
		return httpError(c, err)
	}
	return helper.JsonUpdated(c, "Payment recorded", bill)
}

func (ctl *BillController) ownedBill(c *fiber.Ctx) (*model.BillModel, error) {
	landlordID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid bill id")
	}

	var bill model.BillModel
	if err := ctl.DB.Preload("Details").
		First(&bill, "bill_id = ? AND landlord_id = ?", id, landlordID).Error; err != nil {
		return nil, service.ErrBillNotFound
	}
	return &bill, nil
}
