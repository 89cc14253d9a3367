package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/contracts/contract/model"
	helper "nhatro_backend/internals/helpers"
)

// GET /api/l/contract-templates
func (ctl *ContractController) ListTemplates(c *fiber.Ctx) error {
	var rows []model.ContractTemplateModel
	if err := ctl.DB.Order("template_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch templates")
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/l/contract-templates
func (ctl *ContractController) CreateTemplate(c *fiber.Ctx) error {
	var m model.ContractTemplateModel
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	m.TemplateID = uuid.Nil
	if err := ctl.Validate.Struct(&m); err != nil {
		return helper.JsonValidationError(c, err)
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if m.IsDefault {
			if err := tx.Model(&model.ContractTemplateModel{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Template name already exists")
	}
	return helper.JsonCreated(c, "Template created", m)
}

// DELETE /api/l/contract-templates/:id
func (ctl *ContractController) DeleteTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid template id")
	}

	res := ctl.DB.Delete(&model.ContractTemplateModel{}, "template_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete template")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Template not found")
	}
	return helper.JsonDeleted(c, "Template deleted", nil)
}
