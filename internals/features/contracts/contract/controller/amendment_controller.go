package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nhatro_backend/internals/features/contracts/contract/dto"
	"nhatro_backend/internals/features/contracts/contract/service"
	helper "nhatro_backend/internals/helpers"
)

// POST /api/l/contracts/:id/amendments
// POST /api/u/contracts/:id/amendments
func (ctl *ContractController) ProposeAmendment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role, err := helper.GetRoleFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Unknown role")
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid contract id")
	}

	var req dto.ProposeAmendmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	amendment, err := service.ProposeAmendment(ctl.DB, contractID, userID, role, &req)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "Amendment proposed", amendment)
}

// GET /api/l/contracts/:id/amendments
// GET /api/u/contracts/:id/amendments
func (ctl *ContractController) ListAmendments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role, err := helper.GetRoleFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Unknown role")
	}
	contractID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid contract id")
	}

	rows, err := service.ListAmendments(ctl.DB, contractID, userID, role)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/l/amendments/:id/approve  (and reject, renter variants)
func (ctl *ContractController) ApproveAmendment(c *fiber.Ctx) error {
	return ctl.decideAmendment(c, true)
}

func (ctl *ContractController) RejectAmendment(c *fiber.Ctx) error {
	return ctl.decideAmendment(c, false)
}

func (ctl *ContractController) decideAmendment(c *fiber.Ctx, approve bool) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	role, err := helper.GetRoleFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Unknown role")
	}
	amendmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid amendment id")
	}

	amendment, err := service.DecideAmendment(ctl.DB, amendmentID, userID, role, approve)
	if err != nil {
		return httpError(c, err)
	}

	msg := "Amendment rejected"
	if approve {
		msg = "Amendment approved"
	}
	return helper.JsonUpdated(c, msg, amendment)
}
