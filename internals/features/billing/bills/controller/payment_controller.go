package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nhatro_backend/internals/features/billing/bills/model"
	"nhatro_backend/internals/features/billing/bills/service"
	helper "nhatro_backend/internals/helpers"
)

// GET /api/u/bills
// Renters see bills addressed to them or attached to their contracts.
func (ctl *BillController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.Model(&model.BillModel{}).
		Where("renter_id = ? OR contract_id IN (SELECT contract_id FROM contract_renters WHERE user_id = ?)", userID, userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count bills")
	}

	var rows []model.BillModel
	if err := base.Preload("Details").
		Order("due_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bills")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(rows)
	return helper.JsonList(c, "OK", rows, pagination)
}

// POST /api/u/bills/:id/vnpay
// Returns the signed gateway redirect URL for an unpaid bill.
func (ctl *BillController) CreateVNPayURL(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bill id")
	}

	var bill model.BillModel
	if err := ctl.DB.
		Where("bill_id = ? AND (renter_id = ? OR contract_id IN (SELECT contract_id FROM contract_renters WHERE user_id = ?))", id, userID, userID).
		First(&bill).Error; err != nil {
		return httpError(c, service.ErrBillNotFound)
	}
	if bill.Paid {
		return httpError(c, service.ErrBillPaid)
	}

	payURL, err := service.BuildPaymentURL(
		service.VNPayConfigFromEnv(),
		bill.BillID.String(),
		bill.OutstandingAmount,
		"Thanh toan hoa don "+bill.BillID.String(),
		c.IP(),
		time.Now(),
	)
	if err != nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Payment gateway is not available")
	}
	return helper.JsonOK(c, "OK", fiber.Map{"payment_url": payURL})
}

// GET /api/bills/vnpay/ipn
// Gateway-facing callback, unauthenticated. Responds in the gateway's
// own {RspCode, Message} format rather than the API envelope.
func (ctl *BillController) VNPayIPN(c *fiber.Ctx) error {
	params := map[string]string{}
	for k, v := range c.Queries() {
		params[k] = v
	}

	cfg := service.VNPayConfigFromEnv()
	if !service.VerifySignature(cfg, params) {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid signature"})
	}

	billID, err := uuid.Parse(params["vnp_TxnRef"])
	if err != nil {
		return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
	}

	var bill model.BillModel
	if err := ctl.DB.First(&bill, "bill_id = ?", billID).Error; err != nil {
		return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
	}
	if bill.Paid {
		return c.JSON(fiber.Map{"RspCode": "02", "Message": "Order already confirmed"})
	}

	amount, err := service.ParseIPNAmount(params["vnp_Amount"])
	if err != nil || !amount.Equal(bill.OutstandingAmount) {
		return c.JSON(fiber.Map{"RspCode": "04", "Message": "Invalid amount"})
	}

	if !service.PaymentSucceeded(params) {
		log.Printf("[VNPAY] payment failed for bill %s: code=%s", billID, params["vnp_ResponseCode"])
		return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm Success"})
	}

	ref := params["vnp_TransactionNo"]
	if err := service.SettleBill(ctl.DB, &bill, amount, model.PaymentVNPay, &ref); err != nil {
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
	}
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm Success"})
}
