package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nhatro_backend/internals/features/contracts/contract/dto"
	"nhatro_backend/internals/features/contracts/contract/model"
	"nhatro_backend/internals/features/contracts/contract/service"
	helper "nhatro_backend/internals/helpers"
)

// GET /api/u/contracts
// Renters see only contracts they are a party to.
func (ctl *ContractController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.Model(&model.ContractModel{}).
		Joins("JOIN contract_renters cr ON cr.contract_id = contracts.contract_id").
		Where("cr.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count contracts")
	}

	var rows []model.ContractModel
	if err := base.Preload("Renters").
		Order("contracts.created_at DESC").
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

// GET /api/u/contracts/:id
func (ctl *ContractController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid contract id")
	}

	var contract model.ContractModel
	if err := ctl.DB.Preload("Renters").
		Joins("JOIN contract_renters cr ON cr.contract_id = contracts.contract_id").
		Where("cr.user_id = ? AND contracts.contract_id = ?", userID, id).
		First(&contract).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Contract not found")
	}
	return helper.JsonOK(c, "OK", dto.ToContractResponse(&contract))
}

// POST /api/u/contracts/:id/accept
func (ctl *ContractController) Accept(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid contract id")
	}

	contract, err := service.AcceptContract(ctl.DB, id, userID)
	if err != nil {
		return httpError(c, err)
	}

	msg := "Contract accepted"
	if contract.ContractStatus == model.ContractActive {
		msg = "Contract accepted and now active"
	}
	return helper.JsonUpdated(c, msg, dto.ToContractResponse(contract))
}
